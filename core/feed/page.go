package feed

import "io"

// FetchRequest asks a source for one page of the reading list.
type FetchRequest struct {
	// Continuation is the cursor returned with the previous page. Empty
	// requests the head of the list.
	Continuation string
}

// Page is one raw feed page as delivered by a source.
type Page struct {
	// Body is the undecoded document. The consumer closes it.
	Body io.ReadCloser
	// Encoding is the charset label declared by the transport, if any.
	Encoding string
}
