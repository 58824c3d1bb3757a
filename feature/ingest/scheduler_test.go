package ingest

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}

// recordingRunner counts cycles and captures their contexts.
type recordingRunner struct {
	mu       sync.Mutex
	calls    int
	deadline bool
	err      error
}

func (r *recordingRunner) RunCycle(ctx context.Context, _ CycleOptions) (*CycleResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	_, r.deadline = ctx.Deadline()
	return &CycleResult{}, r.err
}

func (r *recordingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestNewScheduler_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "bad schedule", cfg: Config{Schedule: "every now and then", Timezone: "UTC"}, wantErr: "invalid ingest schedule"},
		{name: "bad timezone", cfg: Config{Schedule: "*/5 * * * *", Timezone: "Mars/Olympus"}, wantErr: "invalid ingest timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScheduler(tt.cfg, &recordingRunner{}, nil)
			assert.ErrorContains(t, err, tt.wantErr)
			assert.Nil(t, s)
		})
	}
}

func TestScheduler_TickBoundsCycle(t *testing.T) {
	runner := &recordingRunner{err: errors.New("upstream down")}
	s, err := NewScheduler(Config{Schedule: "*/5 * * * *", Timezone: "UTC", CycleTimeoutSeconds: 1}, runner, nil)
	require.NoError(t, err)

	s.tick()
	assert.Equal(t, 1, runner.count())
	assert.True(t, runner.deadline)
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	runner := &recordingRunner{}
	s, err := NewScheduler(Config{Schedule: "@every 1s", Timezone: "UTC"}, runner, nil)
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return runner.count() > 0 }, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}
