package symbol

import (
	"errors"
	"fmt"
	"strings"
)

// Format names a barcode symbology. Values match the identifiers stored on
// card records, so they are kept in their canonical upper/lower case.
type Format string

const (
	FormatCODE128    Format = "CODE128"
	FormatCODE128A   Format = "CODE128A"
	FormatCODE128B   Format = "CODE128B"
	FormatCODE128C   Format = "CODE128C"
	FormatCODE39     Format = "CODE39"
	FormatCODE93     Format = "CODE93"
	FormatEAN        Format = "EAN"
	FormatEAN13      Format = "EAN13"
	FormatEAN8       Format = "EAN8"
	FormatEAN5       Format = "EAN5"
	FormatEAN2       Format = "EAN2"
	FormatUPC        Format = "UPC"
	FormatUPCE       Format = "UPCE"
	FormatITF        Format = "ITF"
	FormatITF14      Format = "ITF14"
	FormatMSI        Format = "MSI"
	FormatMSI10      Format = "MSI10"
	FormatMSI11      Format = "MSI11"
	FormatMSI1010    Format = "MSI1010"
	FormatMSI1110    Format = "MSI1110"
	FormatPharmacode Format = "pharmacode"
	FormatCodabar    Format = "codabar"
)

// DefaultFormat is applied to records that predate the format field and to
// every card created from the widget.
const DefaultFormat = FormatCODE128

// ErrUnknownFormat is returned by ParseFormat for names outside the known set.
var ErrUnknownFormat = errors.New("unknown symbol format")

var allFormats = []Format{
	FormatCODE128, FormatCODE128A, FormatCODE128B, FormatCODE128C,
	FormatCODE39, FormatCODE93,
	FormatEAN, FormatEAN13, FormatEAN8, FormatEAN5, FormatEAN2,
	FormatUPC, FormatUPCE,
	FormatITF, FormatITF14,
	FormatMSI, FormatMSI10, FormatMSI11, FormatMSI1010, FormatMSI1110,
	FormatPharmacode, FormatCodabar,
}

// digitOnly lists the symbologies that can only carry decimal digits.
var digitOnly = map[Format]struct{}{
	FormatEAN:        {},
	FormatEAN13:      {},
	FormatEAN8:       {},
	FormatEAN5:       {},
	FormatEAN2:       {},
	FormatUPC:        {},
	FormatUPCE:       {},
	FormatITF:        {},
	FormatITF14:      {},
	FormatMSI:        {},
	FormatMSI10:      {},
	FormatMSI11:      {},
	FormatMSI1010:    {},
	FormatMSI1110:    {},
	FormatPharmacode: {},
}

// encodable lists the symbologies the default barcode encoder can draw.
var encodable = map[Format]struct{}{
	FormatCODE128:  {},
	FormatCODE128A: {},
	FormatCODE128B: {},
	FormatCODE128C: {},
	FormatCODE39:   {},
	FormatCODE93:   {},
	FormatEAN:      {},
	FormatEAN13:    {},
	FormatEAN8:     {},
	FormatUPC:      {},
	FormatITF:      {},
	FormatITF14:    {},
	FormatCodabar:  {},
}

// Formats returns every known format in display order.
func Formats() []Format {
	out := make([]Format, len(allFormats))
	copy(out, allFormats)
	return out
}

// EncodableFormats returns the known formats the default encoder supports,
// in display order. The edit dialog cycles through this list.
func EncodableFormats() []Format {
	out := make([]Format, 0, len(encodable))
	for _, f := range allFormats {
		if _, ok := encodable[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	trimmed := strings.TrimSpace(name)
	for _, f := range allFormats {
		if strings.EqualFold(string(f), trimmed) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Known reports whether f is one of the enumerated formats.
func (f Format) Known() bool {
	for _, known := range allFormats {
		if f == known {
			return true
		}
	}
	return false
}

// DigitOnly reports whether f only accepts decimal digits.
func (f Format) DigitOnly() bool {
	_, ok := digitOnly[f]
	return ok
}

// Encodable reports whether the default encoder can draw f.
func (f Format) Encodable() bool {
	_, ok := encodable[f]
	return ok
}

// Next returns the encodable format after f, wrapping around. Unknown formats
// step to the first entry.
func (f Format) Next(step int) Format {
	list := EncodableFormats()
	idx := -1
	for i, candidate := range list {
		if candidate == f {
			idx = i
			break
		}
	}
	if idx < 0 {
		return list[0]
	}
	n := len(list)
	return list[((idx+step)%n+n)%n]
}

func (f Format) String() string {
	return string(f)
}
