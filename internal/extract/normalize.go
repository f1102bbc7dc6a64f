package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reNewlines = regexp.MustCompile(`\n{3,}`)
	reSpaces   = regexp.MustCompile(` {2,}`)
)

// Normalize cleans up text extracted from a PDF: NFC composition, excess
// whitespace collapsed (paragraph breaks kept), and two common extraction
// artifacts substituted. Idempotent: normalizing normalized text is a no-op.
func Normalize(text string) string {
	s := norm.NFC.String(text)

	s = reNewlines.ReplaceAllString(s, "\n\n")
	s = reSpaces.ReplaceAllString(s, " ")

	s = strings.ReplaceAll(s, "|", "I") // common OCR mistake
	s = strings.ReplaceAll(s, "‚", ",") // low quotation mark mis-encoding

	return strings.TrimSpace(s)
}
