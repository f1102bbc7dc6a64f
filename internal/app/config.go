package app

import "time"

// Config holds the pipeline tuning constants. All values have compiled-in
// defaults matching production tuning; hosts may override any of them.
type Config struct {
	// Download
	MaxPDFSize      int64
	DownloadTimeout time.Duration
	MaxRetries      int
	UserAgent       string
	// CacheDir enables the on-disk download cache when non-empty.
	CacheDir string

	// Extraction
	MaxPages int

	// Quality thresholds
	MinTextLength        int
	MinLetterRatio       float64
	MinWords             int
	MinRecognizableWords int
	MaxSingleCharRatio   float64
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		MaxPDFSize:      200 << 20,
		DownloadTimeout: 30 * time.Second,
		MaxRetries:      3,
		UserAgent:       "docpipe/1.0 (civic document fetcher)",

		MaxPages: 1000,

		MinTextLength:        100,
		MinLetterRatio:       0.30,
		MinWords:             20,
		MinRecognizableWords: 5,
		MaxSingleCharRatio:   0.40,
	}
}
