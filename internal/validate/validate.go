// Package validate decides whether text extracted from a civic document is
// usable language or a degenerate artifact of a bad scan or a broken font
// mapping. The checks are deliberately cheap heuristics ordered so the most
// decisive ones run first.
package validate

import (
	"strings"
	"unicode"

	"github.com/rs/zerolog/log"
)

// Default thresholds. The zero value of Validator is not usable; construct
// with New and override fields as needed.
const (
	DefaultMinTextLength        = 100
	DefaultMinLetterRatio       = 0.30
	DefaultMinWords             = 20
	DefaultMinRecognizableWords = 5
	DefaultMaxSingleCharRatio   = 0.40

	// The lexicon and single-char checks look only at the opening words and
	// are skipped entirely when the document is too short to give signal.
	sampleSize = 100
	sampleGate = 50
)

// Validator scores normalized text against quality heuristics.
type Validator struct {
	MinTextLength        int
	MinLetterRatio       float64
	MinWords             int
	MinRecognizableWords int
	MaxSingleCharRatio   float64
}

// New returns a Validator with the default thresholds.
func New() *Validator {
	return &Validator{
		MinTextLength:        DefaultMinTextLength,
		MinLetterRatio:       DefaultMinLetterRatio,
		MinWords:             DefaultMinWords,
		MinRecognizableWords: DefaultMinRecognizableWords,
		MaxSingleCharRatio:   DefaultMaxSingleCharRatio,
	}
}

// IsGoodQuality reports whether text passes all quality checks. Each failure
// path logs the measured value against its threshold so operators can tune
// thresholds from production logs.
func (v *Validator) IsGoodQuality(text string) bool {
	// Check 1: minimum length
	if len(text) < v.MinTextLength {
		log.Debug().Int("chars", len(text)).Int("min", v.MinTextLength).
			Msg("quality check failed: text too short")
		return false
	}

	// Check 2: letter ratio over the full text
	totalChars := len(text)
	if totalChars == 0 {
		log.Debug().Msg("quality check failed: zero characters")
		return false
	}
	letters := countLetters(text)
	letterRatio := float64(letters) / float64(totalChars)
	if letterRatio < v.MinLetterRatio {
		log.Warn().Float64("ratio", letterRatio).Float64("min", v.MinLetterRatio).
			Msg("quality check failed: letter ratio too low")
		return false
	}

	// Check 3: minimum word count
	words := strings.Fields(text)
	if len(words) < v.MinWords {
		log.Warn().Int("words", len(words)).Int("min", v.MinWords).
			Msg("quality check failed: too few words")
		return false
	}

	sample := words
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	// Check 4: recognizable words in the opening sample
	recognizable := countRecognizable(sample)
	if len(sample) >= sampleGate && recognizable < v.MinRecognizableWords {
		log.Warn().Int("recognizable", recognizable).Int("sample", len(sample)).
			Int("min", v.MinRecognizableWords).
			Msg("quality check failed: too few recognizable words")
		return false
	}

	// Check 5: single-character word fragments in the same sample
	singleChars := 0
	for _, w := range sample {
		if len(w) == 1 {
			singleChars++
		}
	}
	singleCharRatio := float64(singleChars) / float64(len(sample))
	if len(sample) >= sampleGate && singleCharRatio > v.MaxSingleCharRatio {
		log.Warn().Float64("ratio", singleCharRatio).Float64("max", v.MaxSingleCharRatio).
			Msg("quality check failed: too many single-char words")
		return false
	}

	log.Debug().Int("chars", totalChars).Int("words", len(words)).
		Float64("letterRatio", letterRatio).
		Int("recognizable", recognizable).Int("sample", len(sample)).
		Msg("quality check passed")
	return true
}

// TextStats is a diagnostic snapshot of the raw quantities the quality
// checks are computed from, without applying any thresholds.
type TextStats struct {
	TotalChars        int
	LetterCount       int
	LetterRatio       float64
	WordCount         int
	RecognizableWords int
}

// Stats recomputes the raw quality quantities for diagnostic display.
func (v *Validator) Stats(text string) TextStats {
	letters := countLetters(text)
	totalChars := len(text)
	words := strings.Fields(text)

	sample := words
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	var ratio float64
	if totalChars > 0 {
		ratio = float64(letters) / float64(totalChars)
	}
	return TextStats{
		TotalChars:        totalChars,
		LetterCount:       letters,
		LetterRatio:       ratio,
		WordCount:         len(words),
		RecognizableWords: countRecognizable(sample),
	}
}

func countLetters(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}

func countRecognizable(sample []string) int {
	lex := civicLexicon()
	n := 0
	for _, w := range sample {
		cleaned := strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r)
		}))
		if _, ok := lex[cleaned]; ok {
			n++
		}
	}
	return n
}
