package symbol

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Sanitize maps raw card text to a string that is safe to hand to the encoder
// for format f. Accented letters degrade to their base letter, everything
// outside [A-Za-z0-9] is dropped, and digit-only formats keep digits alone.
// The result may be empty; that is reported by the renderer, not here.
func Sanitize(text string, f Format) string {
	if text == "" {
		return ""
	}

	// Chained transformers carry state, so build one per call.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, text)
	if err != nil {
		decomposed = text
	}

	digitsOnly := f.DigitOnly()
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case digitsOnly:
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
			b.WriteRune(r)
		}
	}
	return b.String()
}
