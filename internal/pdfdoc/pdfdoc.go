// Package pdfdoc is the boundary to the PDF parsing library. The extractor
// only ever needs a page count and per-page plain text, so that is the whole
// surface; everything below it (fonts, glyph maps, stream decoding) stays
// inside the library.
package pdfdoc

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Document is a parsed PDF as seen by the extractor.
type Document interface {
	// PageCount returns the total number of pages the document declares.
	PageCount() int
	// PageText returns the plain text of the zero-based page index. ok is
	// false when the page object is missing or yields no text; callers treat
	// both the same way and skip the page.
	PageText(i int) (text string, ok bool)
}

// Opener parses raw bytes into a Document. The extractor takes an Opener so
// its page walking and validation can be tested against a fake.
type Opener func(data []byte) (Document, error)

// Open parses PDF bytes with ledongthuc/pdf. A structural parse failure
// (corrupt or non-PDF data) is returned as an error.
func Open(data []byte) (Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &document{r: r}, nil
}

type document struct {
	r *pdf.Reader
}

func (d *document) PageCount() int {
	return d.r.NumPage()
}

func (d *document) PageText(i int) (text string, ok bool) {
	// The library panics on some malformed content streams; a bad page must
	// not take down the whole extraction.
	defer func() {
		if rec := recover(); rec != nil {
			text, ok = "", false
		}
	}()
	p := d.r.Page(i + 1) // library pages are 1-based
	if p.V.IsNull() {
		return "", false
	}
	s, err := p.GetPlainText(nil)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}
