package symbol

import (
	"testing"
)

var sanitizeCorpus = []string{
	"",
	"abc",
	"Café 123",
	"ÀÉÎÕÜ-çñ",
	"  4006381333931 ",
	"12-34_56.78",
	"東京 2024",
	"ﬁ ligature",
	"emoji 🎫 42",
	"Zürich#Kärtchen/9",
	"\t\n\x00",
}

func TestSanitize_Table(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
		want   string
	}{
		{"empty", "", FormatCODE128, ""},
		{"strips accents", "Café Crème", FormatCODE128, "CafeCreme"},
		{"strips punctuation", "AB-12 34/x", FormatCODE39, "AB1234x"},
		{"digit only drops letters", "EAN 400-638 abc 1333931", FormatEAN13, "4006381333931"},
		{"letters only to empty", "abc", FormatEAN13, ""},
		{"pharmacode digits", "p1234", FormatPharmacode, "1234"},
		{"msi variant digits", "MSI 99", FormatMSI1110, "99"},
		{"non latin dropped", "東京2024", FormatCODE128, "2024"},
		{"unknown format keeps alnum", "x-1", Format("WHATEVER"), "x1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input, tt.format)
			if got != tt.want {
				t.Fatalf("Sanitize(%q, %s) = %q, want %q", tt.input, tt.format, got, tt.want)
			}
		})
	}
}

func TestSanitize_OutputAlphabet(t *testing.T) {
	for _, f := range Formats() {
		for _, input := range sanitizeCorpus {
			got := Sanitize(input, f)
			for _, r := range got {
				isDigit := r >= '0' && r <= '9'
				isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
				if f.DigitOnly() && !isDigit {
					t.Fatalf("Sanitize(%q, %s) = %q, contains non-digit %q", input, f, got, r)
				}
				if !isDigit && !isLetter {
					t.Fatalf("Sanitize(%q, %s) = %q, contains %q outside [A-Za-z0-9]", input, f, got, r)
				}
			}
		}
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	for _, f := range Formats() {
		for _, input := range sanitizeCorpus {
			once := Sanitize(input, f)
			twice := Sanitize(once, f)
			if once != twice {
				t.Fatalf("Sanitize not idempotent for %q/%s: %q then %q", input, f, once, twice)
			}
		}
	}
}
