package reconcile

import "feedme/core/feed"

// ActionType represents the type of store mutation.
type ActionType string

const (
	// ActionInsert creates a record for an external id the store has not seen.
	ActionInsert ActionType = "insert"
	// ActionUpdate overwrites every field of an existing record.
	ActionUpdate ActionType = "update"
	// ActionMarkAllRead sets status Read on every record currently Unread.
	ActionMarkAllRead ActionType = "mark_all_read"
)

// Action represents a planned mutation operation.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the external id of the entry. Empty for ActionMarkAllRead.
	Key string `json:"key,omitempty"`

	// LocalID addresses the stored record. Only set for ActionUpdate.
	LocalID uint `json:"local_id,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`

	// Entry carries the full field set for insert and update actions.
	Entry feed.Entry `json:"entry"`
}

// StoredRecord is the persisted counterpart of an entry.
type StoredRecord struct {
	// LocalID is the store-assigned identifier.
	LocalID uint `json:"id"`

	feed.Entry
}

// Plan contains the staged actions for one page of entries.
// A plan is never modified after Plan returns it.
type Plan struct {
	// Actions are in document order of the first sighting of each key,
	// followed by the bulk status transition when one is staged.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate statistics for a reconcile pass.
type Summary struct {
	// Processed counts entries with an external id, duplicates included.
	Processed int `json:"processed"`

	// Skipped counts entries dropped for lacking an external id.
	Skipped int `json:"skipped"`

	// Inserted counts planned inserts.
	Inserted int `json:"inserted"`

	// Updated counts planned updates.
	Updated int `json:"updated"`

	// Unread counts planned entries whose resulting status is Unread.
	Unread int `json:"unread"`

	// MarkedAllRead reports whether the bulk Unread to Read transition is staged.
	MarkedAllRead bool `json:"marked_all_read"`
}
