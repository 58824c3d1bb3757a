package store

import (
	"context"
	"errors"
	"fmt"

	"feedme/core/feed"
	"feedme/core/reconcile"

	"gorm.io/gorm"
)

// ErrNotFound is returned when an entry does not exist.
var ErrNotFound = errors.New("entry not found")

// Store is the GORM backed entry and continuation store.
type Store struct {
	db *gorm.DB
}

// New creates a Store over db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the entries and continuations tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&EntryRecord{}, &Continuation{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Lookup returns the record stored under externalID, or nil when absent.
func (s *Store) Lookup(ctx context.Context, externalID string) (*reconcile.StoredRecord, error) {
	var rec EntryRecord
	err := s.db.WithContext(ctx).Where("grid = ?", externalID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up entry %s: %w", externalID, err)
	}

	stored := rec.stored()
	return &stored, nil
}

// ApplyBatch applies actions in order inside one transaction. Any failure
// rolls back the whole batch.
func (s *Store) ApplyBatch(ctx context.Context, actions []reconcile.Action) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, action := range actions {
			if err := applyAction(tx, action); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyAction(tx *gorm.DB, action reconcile.Action) error {
	switch action.Type {
	case reconcile.ActionInsert:
		rec := recordFromEntry(action.Entry)
		if err := tx.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", action.Key, err)
		}
	case reconcile.ActionUpdate:
		err := tx.Model(&EntryRecord{}).
			Where("id = ?", action.LocalID).
			Updates(entryColumns(action.Entry)).Error
		if err != nil {
			return fmt.Errorf("failed to update entry %s: %w", action.Key, err)
		}
	case reconcile.ActionMarkAllRead:
		err := tx.Model(&EntryRecord{}).
			Where("status = ?", feed.StatusUnread).
			Update("status", feed.StatusRead).Error
		if err != nil {
			return fmt.Errorf("failed to mark entries read: %w", err)
		}
	default:
		return fmt.Errorf("unknown action type %q", action.Type)
	}
	return nil
}
