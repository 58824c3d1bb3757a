package feed

import "errors"

// ErrInvalidFeedFormat indicates that the page is not well-formed XML or that its
// declared encoding is unknown. The XML cause is wrapped alongside it.
var ErrInvalidFeedFormat = errors.New("invalid feed format")
