package symbol

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/five82/cardwallet/internal/logging"
)

// Kind selects between the two code representations.
type Kind int

const (
	KindBarcode Kind = iota
	KindQR
)

func (k Kind) String() string {
	if k == KindQR {
		return "qr"
	}
	return "barcode"
}

// Mode describes how a code should be drawn. Format is ignored for QR.
type Mode struct {
	Kind   Kind
	Format Format
}

// QR returns the QR mode.
func QR() Mode { return Mode{Kind: KindQR} }

// Barcode returns the linear barcode mode for f.
func Barcode(f Format) Mode { return Mode{Kind: KindBarcode, Format: f} }

// Options carries pixel geometry for both capabilities.
type Options struct {
	QRSize    int
	QRMargin  int
	BarWidth  int
	BarHeight int
}

// ExportOptions matches the geometry used when drawing onto an image file.
func ExportOptions() Options {
	return Options{QRSize: 160, QRMargin: 1, BarWidth: 5, BarHeight: 80}
}

// TerminalOptions keeps one pixel per module so TextCanvas can pack four
// modules into each cell.
func TerminalOptions() Options {
	return Options{QRSize: 0, QRMargin: 1, BarWidth: 1, BarHeight: 8}
}

// Result is the uniform outcome of a render call.
type Result struct {
	OK      bool
	Message string
}

// Target is a drawing surface that can be cleared, drawn on, or annotated.
type Target interface {
	Reset()
	Draw(img image.Image) error
	Inline(msg string)
}

// ErrorDisplay replaces a drawing surface with a human readable notice.
type ErrorDisplay interface {
	ShowError(msg string)
}

// Renderer draws card codes onto targets. The zero value uses the default
// encoders.
type Renderer struct {
	QR      QRFunc
	Barcode BarcodeFunc
}

// NewRenderer returns a Renderer backed by the default encoders.
func NewRenderer() *Renderer {
	return &Renderer{QR: EncodeQR, Barcode: EncodeBarcode}
}

// Render draws raw in the requested mode. It never panics; any failure is
// returned as a Result and shown on errDisplay, or inline on target when
// errDisplay is nil.
func (r *Renderer) Render(target Target, raw string, mode Mode, opts Options, errDisplay ErrorDisplay) Result {
	target.Reset()

	var (
		img   image.Image
		err   error
		label string
	)
	switch mode.Kind {
	case KindQR:
		label = "QR"
		img, err = r.encodeQR(raw, opts)
	default:
		f := mode.Format
		if f == "" {
			f = DefaultFormat
		}
		label = string(f)
		if !f.Known() {
			err = fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
			break
		}
		img, err = r.encodeBarcode(Sanitize(raw, f), f, opts)
	}
	if err == nil {
		err = target.Draw(img)
	}
	if err != nil {
		return fail(target, errDisplay, label, err)
	}
	return Result{OK: true}
}

func (r *Renderer) encodeQR(text string, opts Options) (img image.Image, err error) {
	fn := r.QR
	if fn == nil {
		fn = EncodeQR
	}
	defer recoverEncoder(&err)
	return fn(text, opts.QRSize, opts.QRMargin)
}

func (r *Renderer) encodeBarcode(text string, f Format, opts Options) (img image.Image, err error) {
	fn := r.Barcode
	if fn == nil {
		fn = EncodeBarcode
	}
	defer recoverEncoder(&err)
	return fn(text, f, opts.BarWidth, opts.BarHeight)
}

func recoverEncoder(err *error) {
	if p := recover(); p != nil {
		*err = fmt.Errorf("encoder panic: %v", p)
	}
}

func fail(target Target, errDisplay ErrorDisplay, label string, err error) Result {
	msg := fmt.Sprintf("%s: %v", label, err)
	logging.Debug("code render failed", zap.String("symbology", label), zap.Error(err))
	target.Reset()
	if errDisplay != nil {
		errDisplay.ShowError(msg)
	} else {
		target.Inline(msg)
	}
	return Result{OK: false, Message: msg}
}
