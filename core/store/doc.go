// Package store persists entries and continuation tokens with GORM.
//
// Store implements reconcile.KeyedStore over the entries table, keyed by the
// feed's external id (column grid), and the per-account continuation
// persistence used by the ingest feature. Every batch handed to ApplyBatch
// runs inside a single database transaction.
//
// # Usage
//
//	s := store.New(db)
//	if err := s.Migrate(ctx); err != nil {
//	    return err
//	}
//	summary, err := reconcile.NewEngine(log).Reconcile(ctx, entries, s)
package store
