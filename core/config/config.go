package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"feedme/core/database"
	"feedme/core/logger"
	"feedme/core/reader"
	"feedme/core/server"
	"feedme/core/storage"
	"feedme/feature/ingest"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the entry store connection.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the raw page archive.
	Storage storage.Config `mapstructure:"storage"`
	// Reader holds configuration for the reading-list endpoint.
	Reader reader.Config `mapstructure:"reader"`
	// Ingest holds configuration for ingest cycles.
	Ingest ingest.Config `mapstructure:"ingest"`
}

// LoadConfig loads configuration from environment variables and the .env file
// in path. Variables already set in the environment are overridden by .env.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver: %w: %q", database.ErrUnsupportedDriver, c.Database.Driver))
	}

	if c.Reader.ItemsPerFetch <= 0 {
		errs = append(errs, fmt.Errorf("reader.items_per_fetch: must be positive, got %d", c.Reader.ItemsPerFetch))
	}
	if c.Ingest.Account == "" {
		errs = append(errs, errors.New("ingest.account: must not be empty"))
	}
	if _, err := cron.ParseStandard(c.Ingest.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("ingest.schedule: %w", err))
	}
	if _, err := time.LoadLocation(c.Ingest.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("ingest.timezone: %w", err))
	}
	if c.Ingest.Archive && c.Storage.Bucket == "" {
		errs = append(errs, errors.New("storage.bucket: required when ingest.archive is set"))
	}

	return errors.Join(errs...)
}

// bindValues walks the struct and registers every mapstructure key with its
// default tag value. Keys must be registered for AutomaticEnv to see them.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		v.SetDefault(key, field.Tag.Get("default"))
	}
}
