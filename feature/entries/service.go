package entries

import (
	"context"
	"errors"
	"fmt"

	"feedme/core/feed"
	"feedme/core/reconcile"
	"feedme/core/store"

	"go.uber.org/zap"
)

// MaxListLimit caps the page size a caller may request.
const MaxListLimit = 500

// ErrNotFound is returned when no entry has the requested id.
var ErrNotFound = store.ErrNotFound

// Store is the entry persistence the service reads and writes.
type Store interface {
	List(ctx context.Context, filter store.ListFilter) ([]reconcile.StoredRecord, error)
	Get(ctx context.Context, id uint) (*reconcile.StoredRecord, error)
	SetStatus(ctx context.Context, id uint, status feed.Status) error
	CountByStatus(ctx context.Context) (map[feed.Status]int64, error)
}

// Stats reports entry counts.
type Stats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// Service provides entry operations.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService creates a new entries service.
func NewService(s Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, logger: logger}
}

// List returns entries newest first. The limit is clamped to MaxListLimit.
func (s *Service) List(ctx context.Context, filter store.ListFilter) ([]reconcile.StoredRecord, error) {
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.store.List(ctx, filter)
}

// Get returns one entry.
func (s *Service) Get(ctx context.Context, id uint) (*reconcile.StoredRecord, error) {
	return s.store.Get(ctx, id)
}

// SetStatus changes the status of one entry and returns it.
func (s *Service) SetStatus(ctx context.Context, id uint, status feed.Status) (*reconcile.StoredRecord, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %d", status)
	}
	if err := s.store.SetStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.logger.Info("Entry status changed", zap.Uint("id", id), zap.Stringer("status", status))
	return s.store.Get(ctx, id)
}

// Stats counts entries per status. Every known status is present.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{ByStatus: make(map[string]int64, 4)}
	for _, st := range []feed.Status{feed.StatusUnread, feed.StatusRead, feed.StatusPendingDelete, feed.StatusPendingStarred} {
		stats.ByStatus[st.String()] = counts[st]
	}
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}

// IsNotFound reports whether err means the entry does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
