package validate

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

// Language detection is diagnostic only: it is surfaced in stats output and
// debug logs but never influences IsGoodQuality. US civic documents are
// overwhelmingly English or Spanish, so the detector is restricted to those
// two for accuracy on short inputs.
var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// DetectLanguage returns the most likely language of text, or ok=false when
// the detector cannot make a call. The detector model is built lazily on
// first use; it is expensive to construct and safe for concurrent reads.
func DetectLanguage(text string) (string, bool) {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Spanish).
			Build()
	})
	lang, ok := detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return lang.String(), true
}
