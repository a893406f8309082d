package symbol

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"
	"github.com/boombuler/barcode/twooffive"
)

// QRFunc draws text as a QR symbol of at most size×size pixels (size <= 0
// keeps one pixel per module) surrounded by margin modules of quiet zone.
type QRFunc func(text string, size, margin int) (image.Image, error)

// BarcodeFunc draws already-sanitized text in the given linear format.
// width is the pixel width of one module and height the bar height.
type BarcodeFunc func(text string, f Format, width, height int) (image.Image, error)

var errEmptyInput = errors.New("nothing left to encode")

// EncodeQR is the default QRFunc.
func EncodeQR(text string, size, margin int) (image.Image, error) {
	if text == "" {
		return nil, errors.New("no input text")
	}
	code, err := qr.Encode(text, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	if margin < 0 {
		margin = 0
	}

	modules := code.Bounds().Dx()
	scale := 1
	if size > 0 {
		scale = size / (modules + 2*margin)
		if scale < 1 {
			return nil, fmt.Errorf("payload needs %d modules, too long for %dpx", modules+2*margin, size)
		}
	}
	var img image.Image = code
	if scale > 1 {
		scaled, err := barcode.Scale(code, modules*scale, modules*scale)
		if err != nil {
			return nil, fmt.Errorf("scale qr: %w", err)
		}
		img = scaled
	}
	return withQuietZone(img, margin*scale), nil
}

// EncodeBarcode is the default BarcodeFunc.
func EncodeBarcode(text string, f Format, width, height int) (image.Image, error) {
	code, err := encodeLinear(text, f)
	if err != nil {
		return nil, err
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	scaled, err := barcode.Scale(code, code.Bounds().Dx()*width, height)
	if err != nil {
		return nil, fmt.Errorf("scale barcode: %w", err)
	}
	return scaled, nil
}

func encodeLinear(text string, f Format) (barcode.Barcode, error) {
	if text == "" {
		return nil, errEmptyInput
	}
	switch f {
	case FormatCODE128, FormatCODE128A, FormatCODE128B, FormatCODE128C:
		if err := checkCode128Set(text, f); err != nil {
			return nil, err
		}
		return code128.Encode(text)
	case FormatCODE39:
		return code39.Encode(text, false, true)
	case FormatCODE93:
		return code93.Encode(text, true, true)
	case FormatEAN13:
		if err := requireLength(text, 12, 13); err != nil {
			return nil, err
		}
		return ean.Encode(text)
	case FormatEAN8:
		if err := requireLength(text, 7, 8); err != nil {
			return nil, err
		}
		return ean.Encode(text)
	case FormatEAN:
		if err := requireLength(text, 7, 8, 12, 13); err != nil {
			return nil, err
		}
		return ean.Encode(text)
	case FormatUPC:
		// UPC-A is EAN-13 with a leading zero.
		if err := requireLength(text, 11, 12); err != nil {
			return nil, err
		}
		return ean.Encode("0" + text)
	case FormatITF:
		if len(text)%2 != 0 {
			return nil, fmt.Errorf("needs an even number of digits, got %d", len(text))
		}
		return twooffive.Encode(text, true)
	case FormatITF14:
		full, err := itf14Digits(text)
		if err != nil {
			return nil, err
		}
		return twooffive.Encode(full, true)
	case FormatCodabar:
		return codabar.Encode(text)
	}
	if !f.Known() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
	return nil, errors.New("format not supported by encoder")
}

// checkCode128Set rejects text outside the pinned code set. code128.Encode
// picks sets on its own and would otherwise accept it.
func checkCode128Set(text string, f Format) error {
	switch f {
	case FormatCODE128A:
		for _, r := range text {
			if r >= 'a' && r <= 'z' {
				return fmt.Errorf("code set A has no lowercase letters, got %q", r)
			}
		}
	case FormatCODE128C:
		for _, r := range text {
			if r < '0' || r > '9' {
				return fmt.Errorf("code set C only encodes digits, got %q", r)
			}
		}
		if len(text)%2 != 0 {
			return fmt.Errorf("code set C needs an even number of digits, got %d", len(text))
		}
	}
	return nil
}

func requireLength(text string, lengths ...int) error {
	for _, n := range lengths {
		if len(text) == n {
			return nil
		}
	}
	return fmt.Errorf("invalid length %d, want one of %v digits", len(text), lengths)
}

// itf14Digits appends the check digit to 13-digit input and verifies it on
// 14-digit input.
func itf14Digits(text string) (string, error) {
	if err := requireLength(text, 13, 14); err != nil {
		return "", err
	}
	check := gs1CheckDigit(text[:13])
	if len(text) == 13 {
		return text + string(rune('0'+check)), nil
	}
	if int(text[13]-'0') != check {
		return "", fmt.Errorf("checksum mismatch, want %d", check)
	}
	return text, nil
}

// gs1CheckDigit computes the mod-10 check digit used by GS1 symbologies.
func gs1CheckDigit(digits string) int {
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight = 4 - weight
	}
	return (10 - sum%10) % 10
}

// quietZone pads an image with white borders.
type quietZone struct {
	img image.Image
	pad int
}

func withQuietZone(img image.Image, pad int) image.Image {
	if pad <= 0 {
		return img
	}
	return quietZone{img: img, pad: pad}
}

func (q quietZone) ColorModel() color.Model { return color.Gray16Model }

func (q quietZone) Bounds() image.Rectangle {
	b := q.img.Bounds()
	return image.Rect(0, 0, b.Dx()+2*q.pad, b.Dy()+2*q.pad)
}

func (q quietZone) At(x, y int) color.Color {
	b := q.img.Bounds()
	p := image.Pt(x-q.pad+b.Min.X, y-q.pad+b.Min.Y)
	if !p.In(b) {
		return color.White
	}
	return q.img.At(p.X, p.Y)
}
