package reconcile

import "context"

// KeyedStore is the persistence capability the engine reconciles against.
type KeyedStore interface {
	// Lookup returns the record stored under externalID, or nil when there is none.
	Lookup(ctx context.Context, externalID string) (*StoredRecord, error)

	// ApplyBatch applies every action or none of them.
	// ActionMarkAllRead is applied by selecting on the current status, after
	// the inserts and updates that precede it in the batch.
	ApplyBatch(ctx context.Context, actions []Action) error
}
