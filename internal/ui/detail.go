package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/view"
)

// renderOverlay renders the open card: name, owner, format, the code preview
// and its controls.
func (m Model) renderOverlay(ov view.Overlay) string {
	styles := m.theme.Styles()
	previewWidth := m.preview.Width()
	// border + padding on both sides
	maxInner := max(m.width-8, 10)
	inner := min(max(ModalMinWidth, previewWidth), maxInner)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(truncate(ov.Name, inner)))
	b.WriteString("\n")

	meta := []string{}
	if ov.Mode == symbol.KindQR {
		meta = append(meta, "QR code")
	} else {
		meta = append(meta, string(ov.Format))
	}
	if !ov.Owned && ov.Owner != "" {
		meta = append(meta, "shared by "+ov.Owner)
	}
	b.WriteString(styles.MutedText.Render(strings.Join(meta, " · ")))
	b.WriteString("\n\n")

	switch {
	case m.preview.Err() != "" && len(m.preview.Lines()) == 0:
		b.WriteString(m.preview.String())
		b.WriteString("\n")
	case previewWidth > maxInner:
		b.WriteString(styles.WarningText.Render("Too wide for this terminal. Widen it or press m for QR."))
		b.WriteString("\n")
	default:
		b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, m.preview.String()))
		b.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(inner, lipgloss.Center, styles.FaintText.Render(truncateMiddle(ov.Code, inner))))
	b.WriteString("\n\n")

	b.WriteString(m.renderControls(ov.Controls))

	if n := m.tree.Notice; n != nil && !n.Blocking() {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(truncate(n.Message, inner)))
		b.WriteString(styles.FaintText.Render("  esc dismiss"))
	}

	modal := m.theme.ModalStyle(false).Width(inner + 4).Render(b.String())
	return m.place(modal)
}

// renderControls renders "[key] Label" buttons, highlighting the focused one.
func (m Model) renderControls(controls []view.Control) string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		label := "[" + c.Key + "] " + c.Label
		if c.ID == m.tree.Focus {
			parts = append(parts, styles.Focused.Render(" "+label+" "))
		} else {
			parts = append(parts, styles.MutedText.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

// place centers a modal on the screen.
func (m Model) place(modal string) string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
