package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"feedme/core/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memStore is an in-memory KeyedStore. ApplyBatch works on a copy and swaps it
// in only when every action succeeded.
type memStore struct {
	records  map[string]StoredRecord
	nextID   uint
	applyErr error
	batches  int
}

func newMemStore(records ...StoredRecord) *memStore {
	s := &memStore{records: map[string]StoredRecord{}, nextID: 1}
	for _, r := range records {
		s.records[r.ExternalID] = r
		if r.LocalID >= s.nextID {
			s.nextID = r.LocalID + 1
		}
	}
	return s
}

func (s *memStore) Lookup(_ context.Context, externalID string) (*StoredRecord, error) {
	r, ok := s.records[externalID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *memStore) ApplyBatch(_ context.Context, actions []Action) error {
	s.batches++
	if s.applyErr != nil {
		return s.applyErr
	}

	next := make(map[string]StoredRecord, len(s.records))
	for k, v := range s.records {
		next[k] = v
	}
	nextID := s.nextID

	for _, a := range actions {
		switch a.Type {
		case ActionInsert:
			if _, exists := next[a.Key]; exists {
				return fmt.Errorf("duplicate key %s", a.Key)
			}
			next[a.Key] = StoredRecord{LocalID: nextID, Entry: a.Entry}
			nextID++
		case ActionUpdate:
			next[a.Key] = StoredRecord{LocalID: a.LocalID, Entry: a.Entry}
		case ActionMarkAllRead:
			for k, r := range next {
				if r.Status == feed.StatusUnread {
					r.Status = feed.StatusRead
					next[k] = r
				}
			}
		}
	}

	s.records = next
	s.nextID = nextID
	return nil
}

func (s *memStore) snapshot() []StoredRecord {
	out := make([]StoredRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocalID < out[j].LocalID })
	return out
}

// mockStore is a KeyedStore driven by testify expectations.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Lookup(ctx context.Context, externalID string) (*StoredRecord, error) {
	args := m.Called(ctx, externalID)
	record, _ := args.Get(0).(*StoredRecord)
	return record, args.Error(1)
}

func (m *mockStore) ApplyBatch(ctx context.Context, actions []Action) error {
	args := m.Called(ctx, actions)
	return args.Error(0)
}

var published = time.Date(2010, 3, 14, 9, 26, 53, 0, time.UTC)

func pageEntries() []feed.Entry {
	return []feed.Entry{
		{ExternalID: "grid1", URL: "http://a", Title: "A", PublishedAt: published, Status: feed.StatusUnread},
		{ExternalID: "grid2", Title: "B", PublishedAt: published, Status: feed.StatusRead},
	}
}

func TestReconcile_EmptyStore(t *testing.T) {
	store := newMemStore()
	engine := NewEngine(zap.NewNop())

	summary, err := engine.Reconcile(context.Background(), pageEntries(), store)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 1, summary.Unread)
	assert.False(t, summary.MarkedAllRead)

	records := store.snapshot()
	require.Len(t, records, 2)
	assert.Equal(t, "grid1", records[0].ExternalID)
	assert.Equal(t, feed.StatusUnread, records[0].Status)
	assert.Equal(t, "grid2", records[1].ExternalID)
	assert.Equal(t, feed.StatusRead, records[1].Status)
}

func TestReconcile_Idempotent(t *testing.T) {
	store := newMemStore()
	engine := NewEngine(nil)

	_, err := engine.Reconcile(context.Background(), pageEntries(), store)
	require.NoError(t, err)
	once := store.snapshot()

	summary, err := engine.Reconcile(context.Background(), pageEntries(), store)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 2, summary.Updated)
	assert.Equal(t, once, store.snapshot())
}

func TestReconcile_CatchUp(t *testing.T) {
	store := newMemStore(StoredRecord{
		LocalID: 7,
		Entry:   feed.Entry{ExternalID: "grid1", Title: "A", Status: feed.StatusUnread},
	})
	engine := NewEngine(nil)

	summary, err := engine.Reconcile(context.Background(), []feed.Entry{
		{ExternalID: "grid1", Title: "A (edited)", Status: feed.StatusRead},
	}, store)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, summary.Unread)
	assert.True(t, summary.MarkedAllRead)

	records := store.snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, uint(7), records[0].LocalID)
	assert.Equal(t, "A (edited)", records[0].Title)
	assert.Equal(t, feed.StatusRead, records[0].Status)
}

func TestReconcile_AllReadMarksOlderUnread(t *testing.T) {
	// A record not present in the page is still swept by the bulk transition.
	store := newMemStore(StoredRecord{
		LocalID: 1,
		Entry:   feed.Entry{ExternalID: "old", Status: feed.StatusUnread},
	})
	engine := NewEngine(nil)

	entries := []feed.Entry{
		{ExternalID: "n1", Status: feed.StatusRead},
		{ExternalID: "n2", Status: feed.StatusRead},
		{ExternalID: "n3", Status: feed.StatusRead},
	}
	summary, err := engine.Reconcile(context.Background(), entries, store)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Unread)
	assert.True(t, summary.MarkedAllRead)
	for _, r := range store.snapshot() {
		assert.Equal(t, feed.StatusRead, r.Status, r.ExternalID)
	}
}

func TestReconcile_ApplyFailureLeavesStoreUnchanged(t *testing.T) {
	store := newMemStore(StoredRecord{
		LocalID: 1,
		Entry:   feed.Entry{ExternalID: "grid1", Title: "before", Status: feed.StatusUnread},
	})
	before := store.snapshot()
	store.applyErr = errors.New("disk full")

	summary, err := NewEngine(nil).Reconcile(context.Background(), pageEntries(), store)
	assert.ErrorIs(t, err, ErrStoreApply)
	assert.ErrorContains(t, err, "disk full")
	assert.Nil(t, summary)
	assert.Equal(t, before, store.snapshot())
	assert.Equal(t, 1, store.batches)
}

func TestReconcile_LookupFailure(t *testing.T) {
	store := new(mockStore)
	store.On("Lookup", mock.Anything, "grid1").Return(nil, nil)
	store.On("Lookup", mock.Anything, "grid2").Return(nil, errors.New("connection refused"))

	summary, err := NewEngine(nil).Reconcile(context.Background(), pageEntries(), store)
	assert.ErrorIs(t, err, ErrStoreLookup)
	assert.ErrorContains(t, err, "grid2")
	assert.Nil(t, summary)
	store.AssertNotCalled(t, "ApplyBatch", mock.Anything, mock.Anything)
}

func TestReconcile_NoEntries(t *testing.T) {
	store := new(mockStore)

	summary, err := NewEngine(nil).Reconcile(context.Background(), nil, store)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, *summary)
	store.AssertNotCalled(t, "ApplyBatch", mock.Anything, mock.Anything)
}

func TestReconcile_PassesContext(t *testing.T) {
	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "cycle-1")

	store := new(mockStore)
	store.On("Lookup", ctx, "grid1").Return(nil, nil).Once()
	store.On("ApplyBatch", ctx, mock.MatchedBy(func(actions []Action) bool {
		return len(actions) == 1 && actions[0].Type == ActionInsert
	})).Return(nil).Once()

	_, err := NewEngine(nil).Reconcile(ctx, []feed.Entry{{ExternalID: "grid1"}}, store)
	require.NoError(t, err)
	store.AssertExpectations(t)
}
