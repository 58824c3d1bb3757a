// Package entries exposes the stored entries over HTTP: listing, per-status
// counts and manual status changes.
package entries
