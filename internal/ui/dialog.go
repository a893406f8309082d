package ui

import (
	"strings"

	"github.com/five82/cardwallet/internal/view"
)

// renderDialog renders the edit dialog for the card being edited.
func (m Model) renderDialog(d view.Dialog) string {
	styles := m.theme.Styles()
	inner := min(ModalMinWidth, max(m.width-8, 10))

	label := func(text, id string) string {
		if m.tree.Focus == id {
			return styles.AccentText.Bold(true).Render(padRight(text, 8))
		}
		return styles.MutedText.Render(padRight(text, 8))
	}

	format := "‹ " + string(d.Format) + " ›"
	if m.tree.Focus == view.IDDraftFormat {
		format = styles.Focused.Render(" " + format + " ")
	} else {
		format = styles.Text.Render(" " + format + " ")
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Edit card"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", inner)))
	b.WriteString("\n\n")
	b.WriteString(label("Name", view.IDDraftName) + m.draftInput.View())
	b.WriteString("\n")
	b.WriteString(label("Format", view.IDDraftFormat) + format)
	b.WriteString("\n\n")

	if d.Saving {
		b.WriteString(styles.WarningText.Render("Saving..."))
	} else {
		b.WriteString(m.renderControls(d.Controls))
	}

	if n := m.tree.Notice; n != nil && !n.Blocking() {
		b.WriteString("\n\n")
		b.WriteString(styles.DangerText.Render(truncate(n.Message, inner)))
	}

	modal := m.theme.ModalStyle(false).Width(inner + 4).Render(b.String())
	return m.place(modal)
}

// renderNoticeModal renders a blocking prompt. Any key dismisses it.
func (m Model) renderNoticeModal(n view.Notice) string {
	styles := m.theme.Styles()
	inner := min(ModalMinWidth, max(m.width-8, 10))

	var b strings.Builder
	b.WriteString(styles.WarningText.Bold(true).Render("Check the card details"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Width(inner).Render(n.Message))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("Press any key to continue"))

	modal := m.theme.ModalStyle(true).Width(inner + 4).Render(b.String())
	return m.place(modal)
}
