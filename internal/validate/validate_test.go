package validate

import (
	"fmt"
	"strings"
	"testing"
)

const goodCivicText = "The city council meeting agenda includes discussion of the new zoning ordinance. " +
	"The planning commission will review the budget allocation for infrastructure projects. " +
	"Public comment is encouraged at the hearing."

func TestIsGoodQuality_CivicText(t *testing.T) {
	if !New().IsGoodQuality(goodCivicText) {
		t.Fatal("expected civic meeting text to pass")
	}
}

func TestIsGoodQuality_TooShort(t *testing.T) {
	if New().IsGoodQuality("Too short") {
		t.Fatal("expected sub-100-char text to fail")
	}
}

func TestIsGoodQuality_EmptyText(t *testing.T) {
	if New().IsGoodQuality("") {
		t.Fatal("expected empty text to fail")
	}
}

func TestIsGoodQuality_LowLetterRatio(t *testing.T) {
	// Long enough and plenty of words, but mostly digits and punctuation.
	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "%d#%d ", i*137, i*251)
	}
	text := b.String()
	if len(text) < 100 {
		t.Fatalf("fixture too short: %d", len(text))
	}
	if New().IsGoodQuality(text) {
		t.Fatal("expected numeric noise to fail on letter ratio")
	}
}

func TestIsGoodQuality_TooFewWords(t *testing.T) {
	// One giant word clears the length and letter-ratio checks but not the
	// word count.
	text := strings.Repeat("abcdefghij", 15)
	if New().IsGoodQuality(text) {
		t.Fatal("expected single-token text to fail on word count")
	}
}

func TestIsGoodQuality_GibberishFailsOnRecognizableWords(t *testing.T) {
	// 80 six-letter non-words: passes length, letter ratio, and word count,
	// then fails specifically on the lexicon check.
	words := make([]string, 80)
	for i := range words {
		words[i] = fmt.Sprintf("q%cxv%cz", 'a'+byte(i%26), 'a'+byte((i*7)%26))
	}
	text := strings.Join(words, " ")

	v := New()
	stats := v.Stats(text)
	if stats.WordCount != 80 {
		t.Fatalf("fixture word count = %d, want 80", stats.WordCount)
	}
	if stats.TotalChars < v.MinTextLength {
		t.Fatalf("fixture too short: %d", stats.TotalChars)
	}
	if stats.LetterRatio < v.MinLetterRatio {
		t.Fatalf("fixture letter ratio too low: %f", stats.LetterRatio)
	}
	if stats.RecognizableWords != 0 {
		t.Fatalf("fixture unexpectedly recognizable: %d", stats.RecognizableWords)
	}
	if v.IsGoodQuality(text) {
		t.Fatal("expected gibberish to fail on recognizable-word check")
	}
}

func TestIsGoodQuality_SingleCharFragments(t *testing.T) {
	// Enough recognizable words to pass the lexicon check, then drowned in
	// single-letter fragments from a degenerate extraction.
	civic := []string{"council", "city", "meeting", "agenda", "budget",
		"ordinance", "public", "hearing", "commission", "planning"}
	words := append([]string{}, civic...)
	for i := 0; i < 50; i++ {
		words = append(words, string('a'+byte(i%26)))
	}
	text := strings.Join(words, " ")
	if len(text) < 100 {
		t.Fatalf("fixture too short: %d", len(text))
	}
	if New().IsGoodQuality(text) {
		t.Fatal("expected single-char fragments to fail")
	}
}

func TestIsGoodQuality_ShortDocSkipsSampledChecks(t *testing.T) {
	// 25 gibberish words: below the 50-word sample gate, so the lexicon and
	// single-char checks are skipped and the text passes.
	words := make([]string, 25)
	for i := range words {
		words[i] = fmt.Sprintf("zq%cwx%c", 'a'+byte(i%26), 'a'+byte((i*3)%26))
	}
	text := strings.Join(words, " ")
	if len(text) < 100 {
		t.Fatalf("fixture too short: %d", len(text))
	}
	if !New().IsGoodQuality(text) {
		t.Fatal("expected short document to skip sampled checks and pass")
	}
}

func TestIsGoodQuality_CleansPunctuatedWords(t *testing.T) {
	// Lexicon matching strips surrounding punctuation and lowercases, so
	// "(Budget)." still counts as recognizable.
	base := "(Budget). COUNCIL, \"meeting\" agenda; the-  Ordinance: public"
	text := strings.TrimSpace(strings.Repeat(base+" ", 8))
	if !New().IsGoodQuality(text) {
		t.Fatal("expected punctuated civic words to be recognized")
	}
}

func TestStats(t *testing.T) {
	stats := New().Stats("The city council meeting agenda includes discussion")
	if stats.TotalChars == 0 {
		t.Fatal("expected non-zero char count")
	}
	if stats.WordCount != 7 {
		t.Fatalf("word count = %d, want 7", stats.WordCount)
	}
	if stats.LetterRatio <= 0.5 {
		t.Fatalf("letter ratio = %f, want > 0.5", stats.LetterRatio)
	}
	if stats.RecognizableWords < 5 {
		t.Fatalf("recognizable = %d, want >= 5", stats.RecognizableWords)
	}
}

func TestStats_Empty(t *testing.T) {
	stats := New().Stats("")
	if stats.TotalChars != 0 || stats.LetterRatio != 0 || stats.WordCount != 0 {
		t.Fatalf("unexpected stats for empty text: %+v", stats)
	}
}

func TestDetectLanguage(t *testing.T) {
	lang, ok := DetectLanguage("The city council will hold a public hearing on the proposed budget next Tuesday evening.")
	if !ok || lang != "English" {
		t.Fatalf("expected English, got %q ok=%v", lang, ok)
	}
	lang, ok = DetectLanguage("El concejo municipal celebrará una audiencia pública sobre el presupuesto propuesto.")
	if !ok || lang != "Spanish" {
		t.Fatalf("expected Spanish, got %q ok=%v", lang, ok)
	}
}
