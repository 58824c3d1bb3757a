// Package config loads the feedme configuration.
//
// Settings come from environment variables, optionally seeded from a .env file,
// and fall back to the default tags of each section's Config struct. Keys map
// to variables by upper-casing and replacing dots, so ingest.schedule is read
// from INGEST_SCHEDULE.
//
// Sections:
//   - Server: listen port, API key, shutdown bound
//   - Log: level and encoding
//   - Database: mysql or sqlite connection for the entry store
//   - Storage: MinIO/S3 bucket for archived pages
//   - Reader: reading-list endpoint and credentials
//   - Ingest: account, cron schedule and cycle bounds
//
// Usage:
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
