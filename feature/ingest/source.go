package ingest

import (
	"context"
	"fmt"
	"os"

	"feedme/core/feed"
)

// FetchRequest asks a source for one page.
type FetchRequest = feed.FetchRequest

// Page is one raw page returned by a source.
type Page = feed.Page

// Source delivers raw feed pages.
type Source interface {
	Fetch(ctx context.Context, req FetchRequest) (*Page, error)
}

// ContinuationStore persists the pagination cursor per account.
type ContinuationStore interface {
	LoadContinuation(ctx context.Context, account string) (string, error)
	SaveContinuation(ctx context.Context, account, token string) error
}

// FileSource reads a page saved on disk. It ignores the continuation.
type FileSource struct {
	// Path is the file to read.
	Path string
	// Encoding is the charset label of the file, empty to use the XML prolog.
	Encoding string
}

// Fetch opens the file.
func (f FileSource) Fetch(_ context.Context, _ FetchRequest) (*Page, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open feed file: %w", err)
	}
	return &Page{Body: file, Encoding: f.Encoding}, nil
}
