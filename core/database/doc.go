// Package database opens the relational database that backs the entry store.
//
// It wraps GORM and selects the dialect from configuration: MySQL for shared
// deployments and SQLite for a single node or local use. The schema itself is
// owned by the store package.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
package database
