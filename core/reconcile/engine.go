package reconcile

import (
	"context"
	"fmt"

	"feedme/core/feed"

	"go.uber.org/zap"
)

// Engine reconciles parsed entries against a KeyedStore.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine. A nil logger disables logging.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Apply submits the actions of a plan as one atomic batch.
// An empty plan is a no-op and never reaches the store.
func (e *Engine) Apply(ctx context.Context, plan *Plan, store KeyedStore) error {
	if plan == nil || len(plan.Actions) == 0 {
		return nil
	}

	if err := store.ApplyBatch(ctx, plan.Actions); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreApply, err)
	}
	return nil
}

// Reconcile plans and applies entries in one call and returns the summary of
// what was committed.
func (e *Engine) Reconcile(ctx context.Context, entries []feed.Entry, store KeyedStore) (*Summary, error) {
	plan, err := e.Plan(ctx, entries, store)
	if err != nil {
		return nil, err
	}

	if err := e.Apply(ctx, plan, store); err != nil {
		return nil, err
	}

	e.logger.Debug("Reconciled entries",
		zap.Int("inserted", plan.Summary.Inserted),
		zap.Int("updated", plan.Summary.Updated),
		zap.Int("unread", plan.Summary.Unread),
		zap.Bool("marked_all_read", plan.Summary.MarkedAllRead),
	)

	summary := plan.Summary
	return &summary, nil
}
