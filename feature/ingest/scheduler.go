package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CycleRunner runs one ingest cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context, opts CycleOptions) (*CycleResult, error)
}

// Scheduler triggers cycles on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	runner  CycleRunner
	timeout time.Duration
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewScheduler validates the schedule and time zone of cfg and registers the
// cycle job. Nothing runs until Start.
func NewScheduler(cfg Config, runner CycleRunner, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ingest timezone %q: %w", cfg.Timezone, err)
	}

	cl := cronLogger{logger.Sugar()}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:    c,
		runner:  runner,
		timeout: cfg.CycleTimeout(),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}

	if _, err := c.AddFunc(cfg.Schedule, s.tick); err != nil {
		cancel()
		return nil, fmt.Errorf("invalid ingest schedule %q: %w", cfg.Schedule, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("Ingest scheduler started", zap.Time("next_run", e.Next))
	}
}

// Stop prevents new cycles and waits for a running one. When ctx expires
// first, the running cycle is cancelled and ctx's error is returned.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		return ctx.Err()
	}
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if _, err := s.runner.RunCycle(ctx, CycleOptions{}); err != nil {
		s.logger.Warn("Scheduled ingest cycle failed", zap.Error(err))
	}
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
