package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"feedme/core/feed"
	"feedme/core/metrics"
	"feedme/core/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const readingList = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:gr="http://www.google.com/schemas/reader/atom/">
  <entry>
    <id>grid1</id>
    <link rel="alternate" href="http://a"/>
    <title>A</title>
    <published>2010-03-14T09:26:53Z</published>
  </entry>
  <entry>
    <id>grid2</id>
    <category term="user/-/state/com.google/read" label="read"/>
    <title>B</title>
    <published>2010-03-15T10:00:00Z</published>
  </entry>
  <gr:continuation>tok123</gr:continuation>
</feed>`

const lastPage = `<feed><entry><id>grid3</id><title>C</title></entry></feed>`

// stubSource serves a fixed sequence of documents and records requests.
type stubSource struct {
	mu       sync.Mutex
	docs     []string
	requests []FetchRequest
	err      error
	block    chan struct{}
	entered  chan struct{}
}

func (s *stubSource) Fetch(_ context.Context, req FetchRequest) (*Page, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	entered, block := s.entered, s.block
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if s.err != nil {
		return nil, s.err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.docs[0]
	if len(s.docs) > 1 {
		s.docs = s.docs[1:]
	}
	return &Page{Body: io.NopCloser(strings.NewReader(doc))}, nil
}

func (s *stubSource) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func setupStore(t *testing.T, name string) *store.Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := store.New(db)
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestRunCycle_WalksContinuation(t *testing.T) {
	st := setupStore(t, "ingest_walk")
	src := &stubSource{docs: []string{readingList, lastPage}}
	svc := NewService(src, st, nil, "default", nil)
	ctx := context.Background()

	result, err := svc.RunCycle(ctx, CycleOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Entries)
	assert.Equal(t, 2, result.Summary.Inserted)
	assert.Equal(t, 1, result.Summary.Unread)
	assert.False(t, result.Summary.MarkedAllRead)
	assert.Equal(t, "tok123", result.Continuation)

	token, err := st.LoadContinuation(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)

	result, err = svc.RunCycle(ctx, CycleOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Inserted)
	assert.Empty(t, result.Continuation)

	token, err = st.LoadContinuation(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, token, "a page without continuation clears the stored one")

	require.Len(t, src.requests, 2)
	assert.Empty(t, src.requests[0].Continuation)
	assert.Equal(t, "tok123", src.requests[1].Continuation)
}

func TestRunCycle_FailuresLeaveStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		source  *stubSource
		wantErr error
	}{
		{name: "invalid document", source: &stubSource{docs: []string{`<feed><entry>`}}, wantErr: feed.ErrInvalidFeedFormat},
		{name: "fetch error", source: &stubSource{err: errors.New("connection refused")}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := setupStore(t, fmt.Sprintf("ingest_failure_%d", i))
			ctx := context.Background()
			require.NoError(t, st.SaveContinuation(ctx, "default", "tok1"))

			m := metrics.NewIngest(prometheus.NewRegistry())
			svc := NewService(tt.source, st, m, "default", nil)

			result, err := svc.RunCycle(ctx, CycleOptions{})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Nil(t, result)

			token, err := st.LoadContinuation(ctx, "default")
			require.NoError(t, err)
			assert.Equal(t, "tok1", token)

			records, err := st.List(ctx, store.ListFilter{})
			require.NoError(t, err)
			assert.Empty(t, records)

			assert.Equal(t, 1.0, testutil.ToFloat64(m.Cycles.WithLabelValues(metrics.ResultFailure)))
		})
	}
}

func TestRunCycle_DryRun(t *testing.T) {
	st := setupStore(t, "ingest_dry_run")
	svc := NewService(&stubSource{docs: []string{readingList}}, st, nil, "default", nil)
	ctx := context.Background()

	result, err := svc.RunCycle(ctx, CycleOptions{DryRun: true})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Summary.Inserted)
	assert.Len(t, result.Actions, 2)

	records, err := st.List(ctx, store.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)

	token, err := st.LoadContinuation(ctx, "default")
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestRunCycle_KeepContinuation(t *testing.T) {
	st := setupStore(t, "ingest_keep")
	ctx := context.Background()
	require.NoError(t, st.SaveContinuation(ctx, "default", "live"))

	svc := NewService(&stubSource{docs: []string{readingList}}, st, nil, "default", nil)
	result, err := svc.RunCycle(ctx, CycleOptions{KeepContinuation: true})
	require.NoError(t, err)
	assert.Equal(t, "tok123", result.Continuation)

	token, err := st.LoadContinuation(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, "live", token)
}

func TestRunCycle_RecordsMetrics(t *testing.T) {
	st := setupStore(t, "ingest_metrics")
	doc := `<feed><entry><id>x</id><published>yesterday-ish</published></entry></feed>`
	m := metrics.NewIngest(prometheus.NewRegistry())
	svc := NewService(&stubSource{docs: []string{doc}}, st, m, "default", nil)

	_, err := svc.RunCycle(context.Background(), CycleOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Cycles.WithLabelValues(metrics.ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Entries.WithLabelValues("insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Unread))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DateFallbacks))
}

func TestRunCycle_SharesInFlightCycle(t *testing.T) {
	st := setupStore(t, "ingest_shared")
	src := &stubSource{
		docs:    []string{readingList},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 2),
	}
	svc := NewService(src, st, nil, "default", nil)

	var (
		wg      sync.WaitGroup
		shared  int32
		results = make([]*CycleResult, 2)
	)
	run := func(i int) {
		defer wg.Done()
		r, err := svc.RunCycle(context.Background(), CycleOptions{})
		assert.NoError(t, err)
		results[i] = r
		if r != nil && r.Shared {
			atomic.AddInt32(&shared, 1)
		}
	}

	wg.Add(2)
	go run(0)
	<-src.entered
	go run(1)
	// Give the second caller time to join the in-flight cycle.
	time.Sleep(100 * time.Millisecond)
	close(src.block)
	wg.Wait()

	assert.Equal(t, 1, src.calls())
	assert.Equal(t, int32(2), atomic.LoadInt32(&shared))
	assert.Equal(t, results[0].Summary, results[1].Summary)
}
