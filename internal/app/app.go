// Package app wires the fetcher, extractor, and validator into the
// programmatic surface consumed by host orchestration: hand it a URL or raw
// bytes, get back validated text, a clean rejection, or a typed error.
package app

import (
	"context"
	"fmt"

	"github.com/civiclens/docpipe/internal/cache"
	"github.com/civiclens/docpipe/internal/extract"
	"github.com/civiclens/docpipe/internal/fetch"
	"github.com/civiclens/docpipe/internal/validate"
)

// Pipeline composes the acquisition-to-validated-text components. Each call
// is synchronous and self-contained; concurrent calls share no mutable state.
type Pipeline struct {
	cfg       Config
	validator *validate.Validator
	extractor *extract.Extractor
}

// New builds a Pipeline from cfg. Zero-value cfg fields are not defaulted
// here; use DefaultConfig as the base.
func New(cfg Config) *Pipeline {
	v := &validate.Validator{
		MinTextLength:        cfg.MinTextLength,
		MinLetterRatio:       cfg.MinLetterRatio,
		MinWords:             cfg.MinWords,
		MinRecognizableWords: cfg.MinRecognizableWords,
		MaxSingleCharRatio:   cfg.MaxSingleCharRatio,
	}
	f := &fetch.Client{
		UserAgent:         cfg.UserAgent,
		MaxAttempts:       cfg.MaxRetries,
		PerRequestTimeout: cfg.DownloadTimeout,
		MaxSize:           cfg.MaxPDFSize,
	}
	if cfg.CacheDir != "" {
		f.Cache = &cache.Cache{Dir: cfg.CacheDir}
	}
	e := &extract.Extractor{
		Fetcher:   f,
		Validator: v,
		MaxPages:  cfg.MaxPages,
	}
	return &Pipeline{cfg: cfg, validator: v, extractor: e}
}

// ExtractFromURL downloads and extracts the document at url. A nil result
// with a nil error is a clean quality rejection.
func (p *Pipeline) ExtractFromURL(ctx context.Context, url string) (*extract.Result, error) {
	return p.extractor.ExtractFromURL(ctx, url)
}

// ExtractFromBytes extracts text from raw PDF bytes. Buffers over the
// configured size cap fail with fetch.ErrTooLarge, mirroring the download
// path.
func (p *Pipeline) ExtractFromBytes(data []byte) (*extract.Result, error) {
	if int64(len(data)) > p.cfg.MaxPDFSize {
		return nil, fmt.Errorf("%w: %d bytes", fetch.ErrTooLarge, len(data))
	}
	return p.extractor.ExtractFromBytes(data)
}

// ValidateText reports the quality verdict for text the caller already holds.
func (p *Pipeline) ValidateText(text string) bool {
	return p.validator.IsGoodQuality(text)
}

// Stats returns the diagnostic quality quantities for text.
func (p *Pipeline) Stats(text string) validate.TextStats {
	return p.validator.Stats(text)
}
