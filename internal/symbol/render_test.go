package symbol

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
)

type recordingDisplay struct {
	messages []string
}

func (d *recordingDisplay) ShowError(msg string) {
	d.messages = append(d.messages, msg)
}

func TestRender_EAN13RejectsLettersButQRAccepts(t *testing.T) {
	r := NewRenderer()
	canvas := NewTextCanvas("#ff0000")

	res := r.Render(canvas, "abc", Barcode(FormatEAN13), TerminalOptions(), canvas)
	if res.OK {
		t.Fatalf("Render EAN13 abc OK = true, want false")
	}
	if !strings.Contains(res.Message, "EAN13") {
		t.Fatalf("Message = %q, want it to name EAN13", res.Message)
	}
	if canvas.Err() != res.Message {
		t.Fatalf("canvas error = %q, want %q", canvas.Err(), res.Message)
	}
	if len(canvas.Lines()) != 0 {
		t.Fatalf("canvas kept %d drawing lines after failure", len(canvas.Lines()))
	}

	res = r.Render(canvas, "abc", QR(), TerminalOptions(), canvas)
	if !res.OK {
		t.Fatalf("Render QR abc failed: %s", res.Message)
	}
	if canvas.Err() != "" {
		t.Fatalf("canvas error = %q after successful render, want empty", canvas.Err())
	}
	if len(canvas.Lines()) == 0 {
		t.Fatalf("canvas has no lines after QR render")
	}
}

func TestRender_FailureWithoutDisplayIsInline(t *testing.T) {
	var buf bytes.Buffer
	target := NewPNGTarget(&buf)

	res := NewRenderer().Render(target, "", Barcode(FormatCODE128), ExportOptions(), nil)
	if res.OK {
		t.Fatalf("Render of empty code OK = true, want false")
	}
	if target.Message() != res.Message {
		t.Fatalf("inline message = %q, want %q", target.Message(), res.Message)
	}
	if target.Written() || buf.Len() != 0 {
		t.Fatalf("target wrote %d bytes on failure", buf.Len())
	}
}

func TestRender_SanitizesOnlyBarcodes(t *testing.T) {
	var gotBarcode, gotQR string
	blank := image.NewGray(image.Rect(0, 0, 4, 4))
	r := &Renderer{
		QR: func(text string, size, margin int) (image.Image, error) {
			gotQR = text
			return blank, nil
		},
		Barcode: func(text string, f Format, width, height int) (image.Image, error) {
			gotBarcode = text
			return blank, nil
		},
	}
	canvas := NewTextCanvas("#ff0000")

	if res := r.Render(canvas, "Café 12-3", Barcode(FormatCODE128), TerminalOptions(), nil); !res.OK {
		t.Fatalf("barcode render failed: %s", res.Message)
	}
	if gotBarcode != "Cafe123" {
		t.Fatalf("barcode encoder got %q, want %q", gotBarcode, "Cafe123")
	}

	if res := r.Render(canvas, "Café 12-3", QR(), TerminalOptions(), nil); !res.OK {
		t.Fatalf("qr render failed: %s", res.Message)
	}
	if gotQR != "Café 12-3" {
		t.Fatalf("qr encoder got %q, want raw text", gotQR)
	}
}

func TestRender_RecoversEncoderPanic(t *testing.T) {
	r := &Renderer{
		Barcode: func(string, Format, int, int) (image.Image, error) {
			panic("bad checksum")
		},
	}
	display := &recordingDisplay{}
	res := r.Render(NewTextCanvas("#ff0000"), "123", Barcode(FormatCODE128), TerminalOptions(), display)
	if res.OK {
		t.Fatalf("OK = true, want false")
	}
	if !strings.Contains(res.Message, "bad checksum") || !strings.HasPrefix(res.Message, "CODE128:") {
		t.Fatalf("Message = %q, want CODE128 prefix and panic value", res.Message)
	}
	if len(display.messages) != 1 {
		t.Fatalf("display got %d messages, want 1", len(display.messages))
	}
}

func TestRender_QRErrorIsReported(t *testing.T) {
	r := &Renderer{
		QR: func(string, int, int) (image.Image, error) {
			return nil, errors.New("code length overflow")
		},
	}
	res := r.Render(NewTextCanvas("#ff0000"), "x", QR(), TerminalOptions(), nil)
	if res.OK || !strings.Contains(res.Message, "code length overflow") {
		t.Fatalf("Result = %#v, want failure with encoder message", res)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	res := NewRenderer().Render(NewTextCanvas("#ff0000"), "123", Barcode(Format("FOO")), TerminalOptions(), nil)
	if res.OK {
		t.Fatalf("OK = true, want false")
	}
	if !strings.Contains(res.Message, "unknown symbol format") {
		t.Fatalf("Message = %q, want unknown format", res.Message)
	}
}

func TestRender_UnsupportedKnownFormat(t *testing.T) {
	res := NewRenderer().Render(NewTextCanvas("#ff0000"), "1234", Barcode(FormatPharmacode), TerminalOptions(), nil)
	if res.OK {
		t.Fatalf("OK = true, want false")
	}
	if !strings.HasPrefix(res.Message, "pharmacode:") {
		t.Fatalf("Message = %q, want pharmacode prefix", res.Message)
	}
}

func TestRender_ValidChecksumFormats(t *testing.T) {
	tests := []struct {
		format Format
		code   string
	}{
		{FormatEAN13, "5901234123457"},
		{FormatEAN13, "590123412345"},
		{FormatEAN8, "96385074"},
		{FormatUPC, "036000291452"},
		{FormatITF, "1234"},
		{FormatCODE39, "WALLET42"},
		{FormatCODE93, "WALLET42"},
		{FormatCODE128, "member-0042"},
		{FormatCODE128A, "MEMBER-0042"},
		{FormatCODE128B, "member-0042"},
		{FormatCODE128C, "12345678"},
		{FormatCodabar, "A40156B"},
	}
	r := NewRenderer()
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			canvas := NewTextCanvas("#ff0000")
			res := r.Render(canvas, tt.code, Barcode(tt.format), TerminalOptions(), canvas)
			if !res.OK {
				t.Fatalf("Render(%q, %s) failed: %s", tt.code, tt.format, res.Message)
			}
			if canvas.Width() == 0 {
				t.Fatalf("canvas is empty after render")
			}
		})
	}
}

func TestRender_WrongLengthForChecksumFormat(t *testing.T) {
	res := NewRenderer().Render(NewTextCanvas("#ff0000"), "12345", Barcode(FormatEAN13), TerminalOptions(), nil)
	if res.OK {
		t.Fatalf("OK = true, want false")
	}
	if !strings.Contains(res.Message, "invalid length 5") {
		t.Fatalf("Message = %q, want length diagnostic", res.Message)
	}
}

func TestRender_ExportPNG(t *testing.T) {
	var buf bytes.Buffer
	target := NewPNGTarget(&buf)
	res := NewRenderer().Render(target, "https://example.com/member/42", QR(), ExportOptions(), nil)
	if !res.OK {
		t.Fatalf("QR export failed: %s", res.Message)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != b.Dy() || b.Dx() > 160 || b.Dx() < 100 {
		t.Fatalf("QR bounds = %v, want square close to 160px", b)
	}
}

func TestEncodeQR_TooSmall(t *testing.T) {
	if _, err := EncodeQR(strings.Repeat("long payload ", 20), 10, 1); err == nil {
		t.Fatalf("EncodeQR returned nil error, want size error")
	}
}

func TestITF14CheckDigit(t *testing.T) {
	full, err := itf14Digits("1234567890123")
	if err != nil {
		t.Fatalf("itf14Digits returned error: %v", err)
	}
	if len(full) != 14 {
		t.Fatalf("itf14Digits = %q, want 14 digits", full)
	}
	again, err := itf14Digits(full)
	if err != nil || again != full {
		t.Fatalf("itf14Digits(%q) = %q, %v; want unchanged", full, again, err)
	}
	bad := full[:13] + string(rune('0'+(int(full[13]-'0')+1)%10))
	if _, err := itf14Digits(bad); err == nil {
		t.Fatalf("itf14Digits(%q) returned nil error, want checksum mismatch", bad)
	}
}

func TestTextCanvas_Quadrants(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.Pix[0] = 0 // top-left dark

	c := NewTextCanvas("#ff0000")
	if err := c.Draw(img); err != nil {
		t.Fatalf("Draw returned error: %v", err)
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0] != "▘" {
		t.Fatalf("Lines = %q, want [▘]", lines)
	}
	if err := c.Draw(nil); err == nil {
		t.Fatalf("Draw(nil) returned nil error")
	}
}

func TestRender_Code128SetMismatch(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		code   string
		want   string
	}{
		{"letters in set C", FormatCODE128C, "AB1234", "only encodes digits"},
		{"odd digits in set C", FormatCODE128C, "12345", "even number"},
		{"lowercase in set A", FormatCODE128A, "member42", "no lowercase"},
	}
	r := NewRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canvas := NewTextCanvas("#ff0000")
			res := r.Render(canvas, tt.code, Barcode(tt.format), TerminalOptions(), canvas)
			if res.OK {
				t.Fatalf("Render(%q, %s) succeeded, want error", tt.code, tt.format)
			}
			if !strings.HasPrefix(res.Message, string(tt.format)+":") || !strings.Contains(res.Message, tt.want) {
				t.Fatalf("Message = %q, want %s prefix and %q", res.Message, tt.format, tt.want)
			}
			if canvas.Err() == "" {
				t.Fatalf("error not shown on the canvas")
			}
		})
	}
}
