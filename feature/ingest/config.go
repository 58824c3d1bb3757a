package ingest

import "time"

// Config holds configuration for ingest cycles.
type Config struct {
	// Account keys the continuation token and the single-flight guard.
	Account string `mapstructure:"account" default:"default"`
	// Schedule is a standard five-field cron expression.
	Schedule string `mapstructure:"schedule" default:"*/15 * * * *"`
	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string `mapstructure:"timezone" default:"UTC"`
	// CycleTimeoutSeconds bounds one scheduled or API-triggered cycle.
	CycleTimeoutSeconds int `mapstructure:"cycle_timeout_seconds" default:"300"`
	// Archive enables copying raw pages to object storage.
	Archive bool `mapstructure:"archive" default:"false"`
	// ArchivePrefix is the object key prefix for archived pages.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"feeds"`
}

// CycleTimeout returns the per-cycle bound, five minutes when unset.
func (c Config) CycleTimeout() time.Duration {
	if c.CycleTimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CycleTimeoutSeconds) * time.Second
}
