// Package extract converts raw PDF bytes into normalized, quality-checked
// text. A download or parse failure is an error; a document that parses but
// yields no usable text is a clean rejection, reported as a nil Result.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/civiclens/docpipe/internal/pdfdoc"
	"github.com/civiclens/docpipe/internal/validate"
)

// DefaultMaxPages caps how many pages of a document are walked.
const DefaultMaxPages = 1000

const previewChars = 500

// Result describes one successful extraction. PagesProcessed is
// min(PageCount, max pages) and never exceeds PageCount.
type Result struct {
	Text           string
	PageCount      int
	PagesProcessed int
}

// Fetcher retrieves raw document bytes for a URL.
type Fetcher interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Extractor walks document pages and validates the combined text.
// Fields left zero fall back to defaults; Fetcher is only required for
// ExtractFromURL.
type Extractor struct {
	Fetcher   Fetcher
	Validator *validate.Validator
	// Open parses document bytes. Nil means pdfdoc.Open.
	Open pdfdoc.Opener
	// MaxPages caps the page walk. Zero means DefaultMaxPages.
	MaxPages int
}

// ExtractFromURL downloads the document at url and extracts its text. A
// download failure is an error; only downstream quality problems yield a
// nil Result with a nil error.
func (e *Extractor) ExtractFromURL(ctx context.Context, url string) (*Result, error) {
	data, err := e.Fetcher.Download(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return e.ExtractFromBytes(data)
}

// ExtractFromBytes parses data as a PDF, walks its pages in order, and
// returns the normalized combined text if it passes quality validation.
// A structurally valid document with no usable text returns (nil, nil).
func (e *Extractor) ExtractFromBytes(data []byte) (*Result, error) {
	open := e.Open
	if open == nil {
		open = pdfdoc.Open
	}
	doc, err := open(data)
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	pageCount := doc.PageCount()
	toProcess := pageCount
	if max := e.maxPages(); toProcess > max {
		toProcess = max
	}

	var parts []string
	for i := 0; i < toProcess; i++ {
		text, ok := doc.PageText(i)
		if !ok || text == "" {
			log.Debug().Int("page", i+1).Msg("no text on page")
			continue
		}
		parts = append(parts, fmt.Sprintf("--- PAGE %d ---\n%s", i+1, text))
	}

	if len(parts) == 0 {
		log.Warn().Int("pages", pageCount).Msg("no text extracted from pdf")
		return nil, nil
	}

	normalized := Normalize(strings.Join(parts, "\n"))

	preview := normalized
	if len(preview) > previewChars {
		preview = preview[:previewChars]
	}
	log.Debug().Str("preview", strings.ReplaceAll(preview, "\n", " ")).
		Msg("extracted text preview")

	if !e.validator().IsGoodQuality(normalized) {
		return nil, nil
	}

	return &Result{
		Text:           normalized,
		PageCount:      pageCount,
		PagesProcessed: toProcess,
	}, nil
}

// ValidateText exposes the quality verdict directly for callers that
// already hold text.
func (e *Extractor) ValidateText(text string) bool {
	return e.validator().IsGoodQuality(text)
}

func (e *Extractor) maxPages() int {
	if e.MaxPages > 0 {
		return e.MaxPages
	}
	return DefaultMaxPages
}

func (e *Extractor) validator() *validate.Validator {
	if e.Validator != nil {
		return e.Validator
	}
	return validate.New()
}
