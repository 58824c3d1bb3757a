package reconcile

import (
	"context"
	"fmt"

	"feedme/core/feed"

	"go.uber.org/zap"
)

// Plan maps entries onto insert and update actions without writing anything.
// It stages the bulk Unread to Read transition when at least one entry was
// planned and none of them is left Unread.
func (e *Engine) Plan(ctx context.Context, entries []feed.Entry, store KeyedStore) (*Plan, error) {
	var (
		summary Summary
		actions []Action
		staged  = make(map[string]int, len(entries))
	)

	for _, entry := range entries {
		if entry.ExternalID == "" {
			e.logger.Warn("Skipping entry without external id",
				zap.String("title", entry.Title),
				zap.String("url", entry.URL),
			)
			summary.Skipped++
			continue
		}
		summary.Processed++

		if entry.Status == 0 {
			entry.Status = feed.StatusUnread
		}

		// A repeated key keeps its slot and takes the later fields.
		if idx, ok := staged[entry.ExternalID]; ok {
			actions[idx].Entry = entry
			actions[idx].Reason = "repeated in page, later occurrence wins"
			continue
		}

		existing, err := store.Lookup(ctx, entry.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrStoreLookup, entry.ExternalID, err)
		}

		action := Action{Key: entry.ExternalID, Entry: entry}
		if existing == nil {
			action.Type = ActionInsert
			action.Reason = "not in store"
		} else {
			action.Type = ActionUpdate
			action.LocalID = existing.LocalID
			action.Reason = "already stored"
		}

		staged[entry.ExternalID] = len(actions)
		actions = append(actions, action)
	}

	for _, action := range actions {
		switch action.Type {
		case ActionInsert:
			summary.Inserted++
		case ActionUpdate:
			summary.Updated++
		}
		if action.Entry.Status == feed.StatusUnread {
			summary.Unread++
		}
	}

	if summary.Unread == 0 && len(actions) > 0 {
		actions = append(actions, Action{
			Type:   ActionMarkAllRead,
			Reason: "no unread entries in page",
		})
		summary.MarkedAllRead = true
	}

	return &Plan{Actions: actions, Summary: summary}, nil
}
