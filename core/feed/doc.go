// Package feed parses Google Reader style Atom pages into entry records.
//
// A page is scanned once, front to back, with an XML pull parser. The scan keeps
// an explicit scope state (outside any entry, inside an entry, inside the nested
// source element of an entry) so that the origin feed's title and id never leak
// into the entry's own fields.
//
// # Tolerance
//
// A document that is not well-formed XML fails with ErrInvalidFeedFormat. Missing
// fields are left empty and unparsable publication dates fall back to the
// parser's clock; neither aborts the scan.
//
// # Usage
//
//	p := feed.NewParser(feed.WithLogger(log))
//	result, err := p.Parse(ctx, body, "utf-8")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(len(result.Entries), result.Continuation)
package feed
