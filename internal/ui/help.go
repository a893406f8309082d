package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Cards",
			items: []helpItem{
				{"1/2", "My cards / Shared with me"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"pgup/pgdn", "Page up/down"},
				{"enter", "Open card"},
				{"r", "Reload"},
			},
		},
		{
			title: "New card",
			items: []helpItem{
				{"n", "Focus the form"},
				{"tab", "Next field"},
				{"enter", "Add card"},
				{"esc", "Back to list"},
			},
		},
		{
			title: "Open card",
			items: []helpItem{
				{"m/space", "Barcode / QR"},
				{"e", "Edit (own cards)"},
				{"d", "Delete (own cards)"},
				{"left/right", "Format (while editing)"},
				{"esc", "Close"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"h/?", "Toggle help"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)
	for i, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}

		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	modal := m.theme.ModalStyle(false).Width(44).Render(b.String())
	return m.place(modal)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
