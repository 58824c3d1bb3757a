package reconcile

import (
	"context"
	"testing"

	"feedme/core/feed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestPlan_DoesNotWrite(t *testing.T) {
	store := newMemStore()

	plan, err := NewEngine(nil).Plan(context.Background(), pageEntries(), store)
	require.NoError(t, err)

	assert.Len(t, plan.Actions, 2)
	assert.Equal(t, 0, store.batches)
	assert.Empty(t, store.snapshot())
}

func TestPlan_InsertAndUpdate(t *testing.T) {
	store := newMemStore(StoredRecord{LocalID: 42, Entry: feed.Entry{ExternalID: "grid2"}})

	plan, err := NewEngine(nil).Plan(context.Background(), pageEntries(), store)
	require.NoError(t, err)
	require.Len(t, plan.Actions, 2)

	assert.Equal(t, ActionInsert, plan.Actions[0].Type)
	assert.Equal(t, "grid1", plan.Actions[0].Key)
	assert.Zero(t, plan.Actions[0].LocalID)
	assert.Equal(t, "http://a", plan.Actions[0].Entry.URL)

	assert.Equal(t, ActionUpdate, plan.Actions[1].Type)
	assert.Equal(t, "grid2", plan.Actions[1].Key)
	assert.Equal(t, uint(42), plan.Actions[1].LocalID)
	assert.Equal(t, "B", plan.Actions[1].Entry.Title)

	assert.Equal(t, Summary{Processed: 2, Inserted: 1, Updated: 1, Unread: 1}, plan.Summary)
}

func TestPlan_DefaultsStatusToUnread(t *testing.T) {
	plan, err := NewEngine(nil).Plan(context.Background(), []feed.Entry{{ExternalID: "x"}}, newMemStore())
	require.NoError(t, err)

	require.Len(t, plan.Actions, 1)
	assert.Equal(t, feed.StatusUnread, plan.Actions[0].Entry.Status)
	assert.Equal(t, 1, plan.Summary.Unread)
	assert.False(t, plan.Summary.MarkedAllRead)
}

func TestPlan_MarkAllReadIsLast(t *testing.T) {
	entries := []feed.Entry{
		{ExternalID: "a", Status: feed.StatusRead},
		{ExternalID: "b", Status: feed.StatusPendingStarred},
	}

	plan, err := NewEngine(nil).Plan(context.Background(), entries, newMemStore())
	require.NoError(t, err)

	require.Len(t, plan.Actions, 3)
	last := plan.Actions[2]
	assert.Equal(t, ActionMarkAllRead, last.Type)
	assert.Empty(t, last.Key)
	assert.True(t, plan.Summary.MarkedAllRead)
}

func TestPlan_DuplicateKeyLastWins(t *testing.T) {
	entries := []feed.Entry{
		{ExternalID: "dup", Title: "first", Status: feed.StatusUnread},
		{ExternalID: "other", Status: feed.StatusRead},
		{ExternalID: "dup", Title: "second", Status: feed.StatusRead},
	}

	plan, err := NewEngine(nil).Plan(context.Background(), entries, newMemStore())
	require.NoError(t, err)

	require.Len(t, plan.Actions, 3)
	assert.Equal(t, "dup", plan.Actions[0].Key)
	assert.Equal(t, "second", plan.Actions[0].Entry.Title)
	assert.Equal(t, "other", plan.Actions[1].Key)
	assert.Equal(t, ActionMarkAllRead, plan.Actions[2].Type)

	assert.Equal(t, 3, plan.Summary.Processed)
	assert.Equal(t, 2, plan.Summary.Inserted)
	assert.Equal(t, 0, plan.Summary.Unread)
}

func TestPlan_DuplicateKeyUnreadFollowsFinalStatus(t *testing.T) {
	tests := []struct {
		name       string
		statuses   []feed.Status
		wantUnread int
		wantMarked bool
	}{
		{name: "unread then read", statuses: []feed.Status{feed.StatusUnread, feed.StatusRead}, wantUnread: 0, wantMarked: true},
		{name: "read then unread", statuses: []feed.Status{feed.StatusRead, feed.StatusUnread}, wantUnread: 1, wantMarked: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []feed.Entry
			for _, st := range tt.statuses {
				entries = append(entries, feed.Entry{ExternalID: "dup", Status: st})
			}

			plan, err := NewEngine(nil).Plan(context.Background(), entries, newMemStore())
			require.NoError(t, err)
			assert.Equal(t, tt.wantUnread, plan.Summary.Unread)
			assert.Equal(t, tt.wantMarked, plan.Summary.MarkedAllRead)
			assert.Equal(t, 2, plan.Summary.Processed)
			assert.Equal(t, 1, plan.Summary.Inserted)
		})
	}
}

func TestPlan_SkipsEntriesWithoutID(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	engine := NewEngine(zap.New(core))

	entries := []feed.Entry{
		{Title: "orphan", Status: feed.StatusRead},
	}
	plan, err := engine.Plan(context.Background(), entries, newMemStore())
	require.NoError(t, err)

	assert.Empty(t, plan.Actions, "an all-skipped page must not trigger the bulk transition")
	assert.Equal(t, 1, plan.Summary.Skipped)
	assert.Equal(t, 0, plan.Summary.Processed)
	assert.False(t, plan.Summary.MarkedAllRead)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "orphan", logs.All()[0].ContextMap()["title"])
}
