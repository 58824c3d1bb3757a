package feed

import (
	"fmt"
	"time"
)

// Status is the reading state of an entry.
// The zero value means the feed did not set it explicitly.
type Status int

const (
	// StatusUnread marks an entry that has not been read yet.
	StatusUnread Status = 1
	// StatusRead marks an entry that has been read.
	StatusRead Status = 2
	// StatusPendingDelete marks an entry scheduled for removal by store policy.
	StatusPendingDelete Status = 3
	// StatusPendingStarred marks an entry waiting to be starred remotely.
	StatusPendingStarred Status = 4
)

var statusNames = map[Status]string{
	StatusUnread:         "unread",
	StatusRead:           "read",
	StatusPendingDelete:  "pending_delete",
	StatusPendingStarred: "pending_starred",
}

// String returns the wire name of the status, or "unset" for the zero value.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	if s == 0 {
		return "unset"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseStatus converts a wire name such as "pending_delete" into a Status.
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Entry is one item parsed from a feed page.
type Entry struct {
	// ExternalID is the feed's id element and the reconciliation join key.
	ExternalID string `json:"external_id"`
	// Source is the title of the feed the entry originates from.
	Source string `json:"source,omitempty"`
	// PublishedAt is the publication time, or the parse time if it was unreadable.
	PublishedAt time.Time `json:"published_at"`
	// Title is the entry's own title.
	Title string `json:"title,omitempty"`
	// Summary is the text of the last content or summary element.
	Summary string `json:"summary,omitempty"`
	// URL is the href of the entry's alternate link.
	URL string `json:"url,omitempty"`
	// Status is StatusUnread unless a "read" category label marked the entry read.
	Status Status `json:"status" swaggertype:"string" enums:"unread,read,pending_delete,pending_starred"`
}

// ParseResult is the outcome of scanning one feed page.
type ParseResult struct {
	// Entries are in document order.
	Entries []Entry
	// Continuation is the cursor for the next page, empty when the feed had none.
	Continuation string
	// DateFallbacks counts entries whose publication date fell back to the clock.
	DateFallbacks int
}
