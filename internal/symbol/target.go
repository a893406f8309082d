package symbol

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// quadrants maps a 2x2 block of dark pixels (bit 0 top-left, 1 top-right,
// 2 bottom-left, 3 bottom-right) to the block element drawing it.
var quadrants = [16]string{
	" ", "▘", "▝", "▀", "▖", "▌", "▞", "▛",
	"▗", "▚", "▐", "▜", "▄", "▙", "▟", "█",
}

var errNoImage = errors.New("encoder returned no image")

// TextCanvas renders symbols as terminal block art, four pixels per cell.
// A shown error replaces the drawing entirely.
type TextCanvas struct {
	lines      []string
	inline     string
	errMsg     string
	codeStyle  lipgloss.Style
	errorStyle lipgloss.Style
}

// NewTextCanvas returns a canvas drawing dark modules black on white and
// errors in errColor.
func NewTextCanvas(errColor string) *TextCanvas {
	return &TextCanvas{
		codeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ffffff")),
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(errColor)).
			Bold(true),
	}
}

// Reset clears the drawing, inline notes and any shown error.
func (c *TextCanvas) Reset() {
	c.lines = nil
	c.inline = ""
	c.errMsg = ""
}

// Draw converts img to block characters.
func (c *TextCanvas) Draw(img image.Image) error {
	if img == nil {
		return errNoImage
	}
	b := img.Bounds()
	lines := make([]string, 0, (b.Dy()+1)/2)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var row strings.Builder
		for x := b.Min.X; x < b.Max.X; x += 2 {
			idx := 0
			if dark(img, x, y, b) {
				idx |= 1
			}
			if dark(img, x+1, y, b) {
				idx |= 2
			}
			if dark(img, x, y+1, b) {
				idx |= 4
			}
			if dark(img, x+1, y+1, b) {
				idx |= 8
			}
			row.WriteString(quadrants[idx])
		}
		lines = append(lines, row.String())
	}
	c.lines = lines
	return nil
}

// Inline records a note shown under the drawing area.
func (c *TextCanvas) Inline(msg string) {
	c.inline = msg
}

// ShowError replaces the drawing with msg.
func (c *TextCanvas) ShowError(msg string) {
	c.lines = nil
	c.errMsg = msg
}

// Lines returns the unstyled block rows.
func (c *TextCanvas) Lines() []string {
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Err returns the error currently shown, if any.
func (c *TextCanvas) Err() string {
	if c.errMsg != "" {
		return c.errMsg
	}
	return c.inline
}

// Width returns the width in cells of the drawing.
func (c *TextCanvas) Width() int {
	if len(c.lines) == 0 {
		return 0
	}
	return len([]rune(c.lines[0]))
}

// String renders the canvas content with styling.
func (c *TextCanvas) String() string {
	if c.errMsg != "" {
		return c.errorStyle.Render(c.errMsg)
	}
	var parts []string
	for _, line := range c.lines {
		parts = append(parts, c.codeStyle.Render(line))
	}
	if c.inline != "" {
		parts = append(parts, c.errorStyle.Render(c.inline))
	}
	return strings.Join(parts, "\n")
}

func dark(img image.Image, x, y int, b image.Rectangle) bool {
	if !image.Pt(x, y).In(b) {
		return false
	}
	gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
	return gray.Y < 128
}

// PNGTarget writes each drawing as a PNG image to w. Messages are kept for
// the caller because an image stream has no room for text.
type PNGTarget struct {
	w       io.Writer
	written bool
	message string
}

// NewPNGTarget returns a target encoding to w.
func NewPNGTarget(w io.Writer) *PNGTarget {
	return &PNGTarget{w: w}
}

// Reset forgets the previous message. Bytes already written stay written.
func (t *PNGTarget) Reset() {
	t.message = ""
}

// Draw encodes img as PNG.
func (t *PNGTarget) Draw(img image.Image) error {
	if img == nil {
		return errNoImage
	}
	if err := png.Encode(t.w, img); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	t.written = true
	return nil
}

// Inline records msg.
func (t *PNGTarget) Inline(msg string) {
	t.message = msg
}

// Written reports whether an image was encoded.
func (t *PNGTarget) Written() bool { return t.written }

// Message returns the last inline message.
func (t *PNGTarget) Message() string { return t.message }
