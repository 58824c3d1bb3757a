package cmd

import (
	"context"
	"fmt"

	"feedme/core/config"
	"feedme/core/database"
	"feedme/core/logger"
	"feedme/core/reader"
	"feedme/core/storage"
	"feedme/core/store"
	"feedme/feature/ingest"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds what every command needs.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  *store.Store
}

// bootstrap loads and validates the configuration, builds the logger and
// opens the migrated entry store.
func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(l)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s, err := openStore(ctx, db)
	if err != nil {
		return nil, err
	}

	l.Debug("Connected to entry store", zap.String("driver", cfg.Database.Driver))
	return &runtime{cfg: cfg, logger: l, db: db, store: s}, nil
}

// openStore migrates the schema. The pool is closed when migration fails.
func openStore(ctx context.Context, db *gorm.DB) (*store.Store, error) {
	s := store.New(db)
	if err := s.Migrate(ctx); err != nil {
		closeDB(db)
		return nil, err
	}
	return s, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// close releases the database pool and flushes the logger.
func (r *runtime) close() {
	closeDB(r.db)
	_ = r.logger.Sync()
}

// storageClient connects to the archive bucket, creating it when missing.
func (r *runtime) storageClient(ctx context.Context) (storage.Client, error) {
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	if err := storage.EnsureBucket(ctx, client, r.cfg.Storage.Bucket, r.cfg.Storage.Region); err != nil {
		return nil, err
	}
	return client, nil
}

// readerSource returns the reading-list client, wrapped by the archiver when
// archiving is enabled.
func (r *runtime) readerSource(ctx context.Context) (ingest.Source, error) {
	var src ingest.Source = reader.NewClient(r.cfg.Reader, r.logger.Named("reader"))
	if !r.cfg.Ingest.Archive {
		return src, nil
	}

	client, err := r.storageClient(ctx)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Archiving feed pages", zap.String("bucket", r.cfg.Storage.Bucket))
	return ingest.NewArchivingSource(src, client, r.cfg.Storage.Bucket, r.cfg.Ingest.ArchivePrefix, r.cfg.Ingest.Account, r.logger), nil
}
