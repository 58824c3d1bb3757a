package store

import (
	"context"
	"errors"
	"fmt"

	"feedme/core/feed"
	"feedme/core/reconcile"

	"gorm.io/gorm"
)

// DefaultListLimit applies when a filter does not set a limit.
const DefaultListLimit = 50

// ListFilter selects and pages entries.
type ListFilter struct {
	// Status restricts the listing when non-zero.
	Status feed.Status
	// Limit caps the number of entries. Zero means DefaultListLimit.
	Limit int
	// Offset skips entries for paging.
	Offset int
}

// List returns entries newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]reconcile.StoredRecord, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	query := s.db.WithContext(ctx).Model(&EntryRecord{})
	if filter.Status != 0 {
		query = query.Where("status = ?", filter.Status)
	}

	var rows []EntryRecord
	err := query.
		Order("published DESC").
		Order("id DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	records := make([]reconcile.StoredRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.stored())
	}
	return records, nil
}

// Get returns one entry by its local id.
func (s *Store) Get(ctx context.Context, id uint) (*reconcile.StoredRecord, error) {
	var rec EntryRecord
	err := s.db.WithContext(ctx).First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %d: %w", id, err)
	}

	stored := rec.stored()
	return &stored, nil
}

// SetStatus changes the status of one entry.
func (s *Store) SetStatus(ctx context.Context, id uint, status feed.Status) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec EntryRecord
		err := tx.Select("id").First(&rec, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get entry %d: %w", id, err)
		}

		if err := tx.Model(&rec).Update("status", status).Error; err != nil {
			return fmt.Errorf("failed to set status of entry %d: %w", id, err)
		}
		return nil
	})
}

type statusCount struct {
	Status feed.Status
	Count  int64
}

// CountByStatus returns the number of entries per status. Statuses without
// entries are absent from the map.
func (s *Store) CountByStatus(ctx context.Context) (map[feed.Status]int64, error) {
	var rows []statusCount
	err := s.db.WithContext(ctx).
		Model(&EntryRecord{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count entries: %w", err)
	}

	counts := make(map[feed.Status]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
