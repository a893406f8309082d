package symbol

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"CODE128", FormatCODE128},
		{"code128", FormatCODE128},
		{" ean13 ", FormatEAN13},
		{"Pharmacode", FormatPharmacode},
		{"CODABAR", FormatCodabar},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormat("QR"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("ParseFormat(QR) error = %v, want ErrUnknownFormat", err)
	}
}

func TestFormat_NextCyclesEncodable(t *testing.T) {
	list := EncodableFormats()
	f := list[0]
	for range list {
		f = f.Next(1)
	}
	if f != list[0] {
		t.Fatalf("cycling %d steps ended at %s, want %s", len(list), f, list[0])
	}
	if got := list[0].Next(-1); got != list[len(list)-1] {
		t.Fatalf("Next(-1) = %s, want %s", got, list[len(list)-1])
	}
	if got := FormatPharmacode.Next(1); got != list[0] {
		t.Fatalf("non-encodable Next = %s, want %s", got, list[0])
	}
}

func TestDefaultFormatIsEncodable(t *testing.T) {
	if !DefaultFormat.Encodable() || DefaultFormat.DigitOnly() {
		t.Fatalf("DefaultFormat %s must be encodable and alphanumeric", DefaultFormat)
	}
}
