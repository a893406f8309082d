package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	ForceQuit  key.Binding
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Reload     key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Confirm    key.Binding

	// Tabs
	TabOwn    key.Binding
	TabOthers key.Binding
	PrevTab   key.Binding
	NextTab   key.Binding

	// List navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	NewCard  key.Binding

	// Card overlay
	ToggleMode key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Close      key.Binding

	// Edit dialog
	FormatPrev key.Binding
	FormatNext key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload cards"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back / dismiss"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open / activate"),
		),

		// Tabs
		TabOwn: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "My cards"),
		),
		TabOthers: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Shared with me"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "Previous tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "Next tab"),
		),

		// List navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
		NewCard: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "New card"),
		),

		// Card overlay
		ToggleMode: key.NewBinding(
			key.WithKeys("m", " "),
			key.WithHelp("m", "Barcode / QR"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Edit card"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete card"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc", "Close card"),
		),

		// Edit dialog
		FormatPrev: key.NewBinding(
			key.WithKeys("left", "up"),
			key.WithHelp("left", "Previous format"),
		),
		FormatNext: key.NewBinding(
			key.WithKeys("right", "down"),
			key.WithHelp("right", "Next format"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TabOwn, k.TabOthers, k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Confirm, k.NewCard, k.Tab, k.Escape, k.Reload},
		{k.ToggleMode, k.Edit, k.Delete, k.Close},
		{k.FormatPrev, k.FormatNext},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
