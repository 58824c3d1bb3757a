package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	xpp "github.com/mmcdole/goxpp"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// publishedLayout is the timestamp layout used by the reading-list feed.
const publishedLayout = "2006-01-02T15:04:05Z"

// scope is the position of the scan relative to entry elements.
type scope int

const (
	scopeOutside scope = iota
	scopeEntry
	scopeEntrySource
)

// Parser converts feed pages into entries. It holds no per-page state, so one
// Parser may be shared by concurrent callers.
type Parser struct {
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the time source used when a publication date is unreadable.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger sets the logger used for recovered field anomalies.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a Parser using the wall clock and a no-op logger unless
// overridden by options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse scans one page. The stream is always closed before Parse returns and a
// close failure is ignored. When encoding is empty the XML prolog decides the
// charset; otherwise the stream is decoded from the given charset label.
// No partial result is returned on error.
func (p *Parser) Parse(ctx context.Context, r io.ReadCloser, encoding string) (*ParseResult, error) {
	defer func() {
		_ = r.Close()
	}()

	input, charsetReader, err := decodeInput(r, encoding)
	if err != nil {
		return nil, err
	}

	s := &scan{
		parser: p,
		pull:   xpp.NewXMLPullParser(input, true, charsetReader),
	}
	return s.run(ctx)
}

// decodeInput wraps r so the XML decoder always sees UTF-8 when a charset was
// declared by the transport.
func decodeInput(r io.Reader, encoding string) (io.Reader, xpp.CharsetReader, error) {
	if encoding == "" {
		return r, charset.NewReaderLabel, nil
	}

	decoded, err := charset.NewReaderLabel(encoding, r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidFeedFormat, err)
	}
	// The body is already UTF-8, so the prolog's encoding must not apply twice.
	return decoded, func(_ string, in io.Reader) (io.Reader, error) { return in, nil }, nil
}

// scan holds the state of a single Parse call.
type scan struct {
	parser  *Parser
	pull    *xpp.XMLPullParser
	state   scope
	entry   Entry
	text    []string // character data per open element, innermost last
	sawRoot bool
	result  ParseResult
}

func (s *scan) run(ctx context.Context) (*ParseResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		event, err := s.pull.Next()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFeedFormat, err)
		}

		switch event {
		case xpp.EndDocument:
			if !s.sawRoot {
				return nil, fmt.Errorf("%w: %w", ErrInvalidFeedFormat, errors.New("document has no root element"))
			}
			result := s.result
			return &result, nil
		case xpp.StartTag:
			s.sawRoot = true
			consumed, err := s.startTag(s.pull.Name)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidFeedFormat, err)
			}
			if !consumed {
				s.text = append(s.text, "")
			}
		case xpp.EndTag:
			text := ""
			if n := len(s.text); n > 0 {
				text = strings.TrimSpace(s.text[n-1])
				s.text = s.text[:n-1]
			}
			s.endTag(s.pull.Name, text)
		case xpp.Text:
			if n := len(s.text); n > 0 {
				s.text[n-1] += s.pull.Text
			}
		}
	}
}

// startTag handles attribute-carrying elements and scope transitions. It reports
// consumed when the whole element, end tag included, was read.
func (s *scan) startTag(name string) (consumed bool, err error) {
	switch name {
	case "entry":
		s.entry = Entry{Status: StatusUnread}
		s.state = scopeEntry
	case "source":
		if s.state == scopeEntry {
			s.state = scopeEntrySource
		}
	case "link":
		if s.state == scopeEntry && s.pull.Attribute("rel") == "alternate" {
			s.entry.URL = strings.TrimSpace(s.pull.Attribute("href"))
		}
	case "category":
		if s.state != scopeOutside && s.pull.Attribute("label") == "read" {
			s.entry.Status = StatusRead
		}
	case "content", "summary":
		if s.state != scopeOutside && s.pull.Attribute("type") == "xhtml" {
			var inner struct {
				Markup string `xml:",innerxml"`
			}
			if err := s.pull.DecodeElement(&inner); err != nil {
				return false, err
			}
			s.entry.Summary = strings.TrimSpace(inner.Markup)
			return true, nil
		}
	}
	return false, nil
}

// endTag dispatches the trimmed text of the element that just closed.
func (s *scan) endTag(name, text string) {
	switch name {
	case "entry":
		if s.state != scopeOutside {
			s.result.Entries = append(s.result.Entries, s.entry)
			s.state = scopeOutside
		}
	case "source":
		if s.state == scopeEntrySource {
			s.state = scopeEntry
		}
	case "id":
		if s.state == scopeEntry {
			s.entry.ExternalID = text
		}
	case "title":
		switch s.state {
		case scopeEntrySource:
			s.entry.Source = text
		case scopeEntry:
			s.entry.Title = text
		}
	case "published":
		if s.state != scopeOutside {
			s.entry.PublishedAt = s.published(text)
		}
	case "content", "summary":
		if s.state != scopeOutside {
			s.entry.Summary = text
		}
	case "continuation":
		s.result.Continuation = text
	}
}

// published parses the feed layout first, then the same layout with
// out-of-range fields rolled forward, then any layout dateparse knows, and
// falls back to the clock.
func (s *scan) published(value string) time.Time {
	if t, err := time.Parse(publishedLayout, value); err == nil {
		return t
	}
	if t, ok := rollForward(value); ok {
		return t
	}
	if t, err := dateparse.ParseIn(value, time.UTC); err == nil {
		return t
	}

	s.result.DateFallbacks++
	s.parser.logger.Warn("Failed to parse entry publication date",
		zap.String("value", value),
		zap.String("external_id", s.entry.ExternalID),
	)
	return s.parser.now()
}

// layoutFields are the offsets of the numeric fields of publishedLayout.
var layoutFields = [6][2]int{{0, 4}, {5, 7}, {8, 10}, {11, 13}, {14, 16}, {17, 19}}

// rollForward reads value field by field in publishedLayout and lets time.Date
// normalize overflow, so 2011-02-30T10:00:00Z is March 2nd.
func rollForward(value string) (time.Time, bool) {
	if len(value) != len(publishedLayout) {
		return time.Time{}, false
	}
	for i, c := range []byte(publishedLayout) {
		if (c < '0' || c > '9') && value[i] != c {
			return time.Time{}, false
		}
	}

	var f [6]int
	for i, span := range layoutFields {
		n, err := strconv.Atoi(value[span[0]:span[1]])
		if err != nil {
			return time.Time{}, false
		}
		f[i] = n
	}
	return time.Date(f[0], time.Month(f[1]), f[2], f[3], f[4], f[5], 0, time.UTC), true
}
