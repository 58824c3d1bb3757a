// Package ingest runs feed ingest cycles.
//
// A cycle fetches one page of the reading list starting at the stored
// continuation, parses it, reconciles the entries against the store and then
// saves the page's continuation. A cycle that fails before the commit leaves
// both the entries and the continuation untouched, so the next cycle simply
// repeats it.
//
// Cycles for one account never overlap: concurrent triggers (the scheduler,
// POST /ingest, the sync command) share the outcome of the cycle already in
// flight.
//
// # Sources
//
//   - reader.Client: the HTTP reading-list endpoint.
//   - FileSource: a page saved on disk.
//   - ArchiveSource: a page previously archived to object storage.
//
// ArchivingSource wraps any of them and copies each raw page to object
// storage before it is parsed.
package ingest
