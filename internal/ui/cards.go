package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cardwallet/internal/view"
)

// renderMain renders the tab bar, card list and new-card form.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderBanner())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	list := m.tree.List
	b.WriteString(m.renderTitledBox(m.listTitle(), m.renderCardRows(m.width-2), m.width, list.Rows+2, m.tree.Focus == view.IDList))
	b.WriteString("\n")

	formFocused := m.tree.Focus == view.IDName || m.tree.Focus == view.IDCode || m.tree.Focus == view.IDSubmit
	b.WriteString(m.renderTitledBox("New card", m.renderForm(), m.width, FormBoxHeight, formFocused))

	return b.String()
}

func (m Model) listTitle() string {
	active := m.tree.Tabs[0]
	if m.tree.Tabs[1].Active {
		active = m.tree.Tabs[1]
	}
	if active.Count == 0 {
		return active.Label
	}
	list := m.tree.List
	first := list.Offset + 1
	last := min(list.Offset+list.Rows, len(list.Items))
	if first == 1 && last == len(list.Items) {
		return fmt.Sprintf("%s (%d)", active.Label, active.Count)
	}
	return fmt.Sprintf("%s (%d-%d of %d)", active.Label, first, last, active.Count)
}

// renderTabs renders the two tab labels with their card counts.
func (m Model) renderTabs() string {
	styles := m.theme.Styles()
	parts := make([]string, 0, len(m.tree.Tabs))
	for i, tab := range m.tree.Tabs {
		label := fmt.Sprintf(" %d %s · %d ", i+1, tab.Label, tab.Count)
		if tab.Active {
			parts = append(parts, styles.Selected.Bold(true).Render(label))
		} else {
			parts = append(parts, styles.MutedText.Render(label))
		}
	}
	return lipgloss.NewStyle().Width(m.width).Render(" " + strings.Join(parts, " "))
}

// renderCardRows renders the visible window of the card list.
func (m Model) renderCardRows(width int) string {
	list := m.tree.List
	bgColor := m.theme.SurfaceAlt
	if m.tree.Focus == view.IDList {
		bgColor = m.theme.FocusBg
	}

	if len(list.Items) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(m.theme.Muted)).
			Background(lipgloss.Color(bgColor)).
			Width(width).
			Render(" " + list.Empty)
	}

	var lines []string
	for _, item := range list.Visible() {
		if item.Cursor {
			content := m.formatCardRow(item, width, m.theme.SelectionBg, true)
			lines = append(lines, lipgloss.NewStyle().
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Width(width).
				Render(content))
			continue
		}
		content := m.formatCardRow(item, width, bgColor, false)
		lines = append(lines, lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Width(width).
			Render(content))
	}
	return strings.Join(lines, "\n")
}

// formatCardRow formats one row as "▸ Name · Owner".
func (m Model) formatCardRow(item view.ListItem, width int, bgColor string, selected bool) string {
	bg := NewBgStyle(bgColor)

	var nameStyle, ownerStyle, markStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		nameStyle, ownerStyle, markStyle = selText.Bold(true), selText, selText
	} else {
		styles := m.theme.Styles()
		nameStyle, ownerStyle, markStyle = styles.Text, styles.MutedText, styles.AccentText
	}

	mark := " "
	if item.Cursor {
		mark = "▸"
	}

	ownerWidth := 0
	if item.Owner != "" {
		ownerWidth = min(len([]rune(item.Owner)), width/3) + 3
	}
	nameWidth := max(width-ownerWidth-3, 8)

	row := bg.Render(mark, markStyle) + bg.Space() + bg.Render(truncate(item.Name, nameWidth), nameStyle)
	if item.Owner != "" {
		row += bg.Render(" · ", ownerStyle) + bg.Render(truncate(item.Owner, width/3), ownerStyle)
	}
	return row
}

// renderForm renders the new-card inputs and the add button.
func (m Model) renderForm() string {
	styles := m.theme.Styles()
	label := func(text string, focused bool) string {
		if focused {
			return styles.AccentText.Bold(true).Render(padRight(text, 6))
		}
		return styles.MutedText.Render(padRight(text, 6))
	}

	button := styles.MutedText.Render("[ Add ]")
	if m.tree.Focus == view.IDSubmit {
		button = styles.Focused.Render("[ Add ]")
	}

	name := " " + label("Name", m.tree.Focus == view.IDName) + m.nameInput.View()
	code := " " + label("Code", m.tree.Focus == view.IDCode) + m.codeInput.View() + "  " + button
	return name + "\n" + code
}

// renderTitledBox renders content in a box with the title embedded in the
// top border: ┌─── Title ───┐. Focused boxes use the focus border and
// background colors.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColorStr, bgColorStr := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColorStr, bgColorStr = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColorStr)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColorStr))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := max(width-2, 0)
	title = truncate(title, max(innerWidth-4, 1))
	titleLen := lipgloss.Width(title)
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := bg.Render("┌", borderStyle) +
		bg.Render(strings.Repeat("─", leftPad), borderStyle) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", rightPad), borderStyle) +
		bg.Render("┐", borderStyle)

	bottomBorder := bg.Render("└", borderStyle) +
		bg.Render(strings.Repeat("─", innerWidth), borderStyle) +
		bg.Render("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).MaxWidth(innerWidth).Background(lipgloss.Color(bgColorStr))
	contentLines := strings.Split(content, "\n")
	boxHeight := max(height-2, 0)

	lines := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		lines = append(lines,
			bg.Render("│", borderStyle)+
				contentStyle.Render(line)+
				bg.Render("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(lines, "\n") + "\n" + bottomBorder
}
