package reconcile

import "errors"

var (
	// ErrStoreLookup is returned when an existing record could not be looked up.
	ErrStoreLookup = errors.New("store lookup failed")

	// ErrStoreApply is returned when the atomic batch did not commit.
	ErrStoreApply = errors.New("store apply failed")
)
