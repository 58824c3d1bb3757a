// Package reconcile maps freshly parsed feed entries onto a keyed store.
//
// The external id of an entry is the only join key: an unknown id becomes an
// insert, a known id becomes an update that overwrites every field of the
// stored record. After the page is mapped the engine counts the entries left
// Unread; when there are none it stages one bulk transition that marks every
// Unread record Read.
//
// # Plan and Apply
//
// Reconciliation is split in two steps:
//
//  1. Plan looks up each entry and stages actions. It never writes.
//  2. Apply hands the staged actions to KeyedStore.ApplyBatch, which commits
//     them atomically.
//
// Reconcile runs both. A failed commit returns ErrStoreApply and leaves the
// store as it was, so the same page can be reconciled again.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(log)
//	summary, err := engine.Reconcile(ctx, result.Entries, entryStore)
//	if errors.Is(err, reconcile.ErrStoreApply) {
//	    // nothing was written
//	}
package reconcile
