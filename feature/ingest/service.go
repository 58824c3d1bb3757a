package ingest

import (
	"context"
	"fmt"
	"time"

	"feedme/core/feed"
	"feedme/core/metrics"
	"feedme/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// EntryStore is the persistence a cycle needs.
type EntryStore interface {
	reconcile.KeyedStore
	ContinuationStore
}

// CycleOptions alters a single cycle.
type CycleOptions struct {
	// DryRun plans the reconcile without writing entries or the continuation.
	DryRun bool
	// KeepContinuation leaves the stored continuation untouched, for pages
	// that do not come from the reading list itself.
	KeepContinuation bool
}

// CycleResult reports one finished cycle.
type CycleResult struct {
	Account         string             `json:"account"`
	DryRun          bool               `json:"dry_run"`
	Entries         int                `json:"entries"`
	DateFallbacks   int                `json:"date_fallbacks"`
	Continuation    string             `json:"continuation"`
	Summary         reconcile.Summary  `json:"summary"`
	Actions         []reconcile.Action `json:"actions,omitempty"`
	DurationSeconds float64            `json:"duration_seconds"`
	// Shared reports that the result came from a cycle started by another caller.
	Shared bool `json:"shared"`
}

// Service runs ingest cycles for one account.
type Service struct {
	source  Source
	store   EntryStore
	parser  *feed.Parser
	engine  *reconcile.Engine
	metrics *metrics.Ingest
	account string
	logger  *zap.Logger
	group   singleflight.Group
}

// NewService creates an ingest service. m may be nil to disable metrics.
func NewService(source Source, store EntryStore, m *metrics.Ingest, account string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source:  source,
		store:   store,
		parser:  feed.NewParser(feed.WithLogger(logger)),
		engine:  reconcile.NewEngine(logger),
		metrics: m,
		account: account,
		logger:  logger.With(zap.String("account", account)),
	}
}

// Account returns the account the service ingests for.
func (s *Service) Account() string {
	return s.account
}

// Continuation returns the stored continuation of the account.
func (s *Service) Continuation(ctx context.Context) (string, error) {
	return s.store.LoadContinuation(ctx, s.account)
}

// RunCycle runs one cycle, or joins the one already running for the account.
// Dry runs are guarded separately so they never report a committed cycle.
func (s *Service) RunCycle(ctx context.Context, opts CycleOptions) (*CycleResult, error) {
	key := s.account
	if opts.DryRun {
		key += ":dry-run"
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.runCycle(ctx, opts)
	})
	if err != nil {
		return nil, err
	}

	result := *v.(*CycleResult)
	result.Shared = shared
	return &result, nil
}

func (s *Service) runCycle(ctx context.Context, opts CycleOptions) (*CycleResult, error) {
	start := time.Now()
	result, err := s.cycle(ctx, opts)
	elapsed := time.Since(start)

	if s.metrics != nil && !opts.DryRun {
		outcome := metrics.ResultSuccess
		if err != nil {
			outcome = metrics.ResultFailure
		}
		s.metrics.ObserveCycle(outcome, elapsed)
	}

	if err != nil {
		s.logger.Error("Ingest cycle failed", zap.Duration("duration", elapsed), zap.Error(err))
		return nil, err
	}

	result.DurationSeconds = elapsed.Seconds()
	s.logger.Info("Ingest cycle finished",
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("entries", result.Entries),
		zap.Int("inserted", result.Summary.Inserted),
		zap.Int("updated", result.Summary.Updated),
		zap.Int("unread", result.Summary.Unread),
		zap.Bool("marked_all_read", result.Summary.MarkedAllRead),
		zap.Bool("has_continuation", result.Continuation != ""),
		zap.Duration("duration", elapsed),
	)
	return result, nil
}

func (s *Service) cycle(ctx context.Context, opts CycleOptions) (*CycleResult, error) {
	token, err := s.store.LoadContinuation(ctx, s.account)
	if err != nil {
		return nil, fmt.Errorf("failed to load continuation: %w", err)
	}

	page, err := s.source.Fetch(ctx, FetchRequest{Continuation: token})
	if err != nil {
		return nil, err
	}

	parsed, err := s.parser.Parse(ctx, page.Body, page.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	result := &CycleResult{
		Account:       s.account,
		DryRun:        opts.DryRun,
		Entries:       len(parsed.Entries),
		DateFallbacks: parsed.DateFallbacks,
		Continuation:  parsed.Continuation,
	}

	if opts.DryRun {
		plan, err := s.engine.Plan(ctx, parsed.Entries, s.store)
		if err != nil {
			return nil, fmt.Errorf("failed to plan reconcile: %w", err)
		}
		result.Summary = plan.Summary
		result.Actions = plan.Actions
		return result, nil
	}

	summary, err := s.engine.Reconcile(ctx, parsed.Entries, s.store)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile page: %w", err)
	}
	result.Summary = *summary

	if s.metrics != nil {
		s.metrics.ObserveReconcile(summary.Inserted, summary.Updated, summary.Unread, summary.MarkedAllRead)
		s.metrics.ObserveDateFallbacks(parsed.DateFallbacks)
	}

	if !opts.KeepContinuation {
		// Saved only after the commit; a failure here repeats the page next cycle.
		if err := s.store.SaveContinuation(ctx, s.account, parsed.Continuation); err != nil {
			return nil, fmt.Errorf("failed to save continuation: %w", err)
		}
	}

	return result, nil
}
