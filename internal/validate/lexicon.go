package validate

import "sync"

// The lexicon mixes high-frequency English function words with terms that
// dominate municipal meeting documents. Membership of a handful of these in
// the opening words of a document is a strong signal that extraction
// produced real language rather than glyph soup.
var (
	lexiconOnce sync.Once
	lexicon     map[string]struct{}
)

func civicLexicon() map[string]struct{} {
	lexiconOnce.Do(func() {
		words := []string{
			// Common words
			"the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
			// Civic terms
			"council", "city", "meeting", "agenda", "item", "public", "comment", "session",
			"board", "commission", "appointment", "ordinance", "resolution", "budget",
			"planning", "zoning", "development", "traffic", "safety", "park", "library",
			"police", "fire", "emergency", "infrastructure", "project", "contract",
			"approval", "review", "hearing", "vote", "motion", "approve", "deny",
			"discussion", "report", "presentation", "staff", "department", "mayor",
			"member", "chair", "chairman", "chairwoman", "minutes", "action", "adopt",
		}
		lexicon = make(map[string]struct{}, len(words))
		for _, w := range words {
			lexicon[w] = struct{}{}
		}
	})
	return lexicon
}
