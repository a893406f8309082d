package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/cardwallet/internal/view"
	"github.com/five82/cardwallet/internal/wallet"
)

const appName = "cardwallet"

// renderHeader renders the status bar: title, user, connection and counts.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	status := m.tree.Status
	compact := m.width < LayoutCompactWidth
	sep := bg.Spaces(2)

	title := appName
	if t := m.cardCfg.Title(); t != "" {
		title = t
	}
	parts := []string{bg.Render(title, styles.Logo)}

	if !m.session.Valid() {
		parts = append(parts, bg.Render("Not signed in", styles.WarningText.Bold(true)))
		return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
	}

	if status.UserName != "" {
		parts = append(parts, bg.Render(status.UserName, styles.Text))
	}

	switch {
	case status.Offline:
		parts = append(parts, bg.Render("● "+classifyConnectionError(m.snapshot.LastError), styles.DangerText))
	case status.LastError != "":
		parts = append(parts, bg.Render("● Retrying...", styles.WarningText.Bold(true)))
	case !status.Loaded:
		parts = append(parts, bg.Render("Loading cards...", styles.WarningText.Bold(true)))
	default:
		parts = append(parts, bg.Render("● ON", styles.SuccessText))
	}

	if status.Loaded {
		total := m.tree.Tabs[0].Count + m.tree.Tabs[1].Count
		parts = append(parts,
			bg.Render("Cards:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", total), styles.Text),
		)
	}

	if !compact && !status.LastUpdated.IsZero() {
		parts = append(parts,
			bg.Render("Updated", styles.FaintText)+bg.Space()+
				bg.Render(status.LastUpdated.Format("15:04:05"), styles.MutedText),
		)
	}

	if !compact && status.LastError != "" {
		limit := max(m.width-lipgloss.Width(strings.Join(parts, sep))-8, 10)
		parts = append(parts, bg.Render(truncate(status.LastError, limit), styles.DangerText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		Render(strings.Join(parts, sep))
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *wallet.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("HTTP %d", apiErr.Status)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIMEOUT"
	case strings.Contains(msg, "401"), strings.Contains(msg, "403"):
		return "UNAUTHORIZED"
	default:
		return "OFFLINE"
	}
}

type hint struct{ key, desc string }

// renderCommandBar renders the key hints for the active layer.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var commands []hint
	switch {
	case m.tree.Focus == view.IDName || m.tree.Focus == view.IDCode:
		commands = []hint{
			{"enter", "Add card"},
			{"tab", "Next field"},
			{"esc", "Back to list"},
		}
	default:
		commands = []hint{
			{"1/2", "Tabs"},
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"n", "New card"},
			{"r", "Reload"},
			{"q", "Quit"},
			{"?", "More"},
		}
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments, bg.Hint(c.key, c.desc, styles.AccentText, styles.MutedText))
	}

	segments = append(segments, bg.Hint("T", m.theme.Name, styles.AccentText, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderBanner renders a dismissible transport notice, or an empty line.
func (m Model) renderBanner() string {
	n := m.tree.Notice
	if n == nil || n.Blocking() {
		return lipgloss.NewStyle().Width(m.width).Render("")
	}
	styles := m.theme.Styles()
	text := truncate(n.Message, max(m.width-20, 10))
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(
		styles.DangerText.Render("✕ "+text) + "  " + styles.FaintText.Render("esc dismiss"),
	)
}
