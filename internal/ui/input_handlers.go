package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/view"
)

// handleKey routes keyboard input to the topmost layer: help, blocking
// notice, edit dialog, card overlay, then the main screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if n := m.tree.Notice; n != nil {
		if n.Blocking() {
			// Any key dismisses a validation prompt
			cmd := m.activate(view.IDDismiss)
			return m, cmd
		}
		if key.Matches(msg, m.keys.Escape) {
			cmd := m.activate(view.IDDismiss)
			return m, cmd
		}
	}

	switch {
	case m.tree.Dialog != nil:
		return m.handleDialogKey(msg)
	case m.tree.Overlay != nil:
		return m.handleOverlayKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m Model) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tree.Dialog.Saving {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		cmd := m.activate(view.IDCancel)
		return m, cmd
	case key.Matches(msg, m.keys.Confirm):
		if m.tree.Focus == view.IDCancel {
			cmd := m.activate(view.IDCancel)
			return m, cmd
		}
		cmd := m.activate(view.IDSave)
		return m, cmd
	case key.Matches(msg, m.keys.Tab):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.moveFocus(-1)
		return m, nil
	}

	switch m.tree.Focus {
	case view.IDDraftName:
		var cmd tea.Cmd
		m.draftInput, cmd = m.draftInput.Update(msg)
		m.view.UpdateDraft(view.FieldName, m.draftInput.Value())
		m.reconcile()
		return m, cmd
	case view.IDDraftFormat:
		step := 0
		switch {
		case key.Matches(msg, m.keys.FormatPrev):
			step = -1
		case key.Matches(msg, m.keys.FormatNext):
			step = 1
		}
		if step != 0 {
			next := m.tree.Dialog.Format.Next(step)
			m.view.UpdateDraft(view.FieldFormat, string(next))
			m.reconcile()
		}
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		cmd := m.activate(view.IDClose)
		return m, cmd
	case key.Matches(msg, m.keys.ToggleMode):
		cmd := m.activate(view.IDToggle)
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		cmd := m.activate(view.IDEdit)
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		cmd := m.activate(view.IDDelete)
		return m, cmd
	case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.NextTab):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.PrevTab):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.activate(m.tree.Focus)
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	}
	return m, nil
}

func (m Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.tree.Focus == view.IDName || m.tree.Focus == view.IDCode {
		return m.handleFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
	case key.Matches(msg, m.keys.Reload):
		cmd := m.reload()
		return m, cmd
	case key.Matches(msg, m.keys.TabOwn), key.Matches(msg, m.keys.PrevTab):
		cmd := m.activate(view.IDTabOwn)
		return m, cmd
	case key.Matches(msg, m.keys.TabOthers), key.Matches(msg, m.keys.NextTab):
		cmd := m.activate(view.IDTabOthers)
		return m, cmd
	case key.Matches(msg, m.keys.NewCard):
		cmd := m.activate(view.IDName)
		return m, cmd
	case key.Matches(msg, m.keys.Tab):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.ShiftTab):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Escape):
		m.view.Focus = view.IDList
		m.reconcile()
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.activate(m.tree.Focus)
		return m, cmd
	default:
		if m.tree.Focus == view.IDList {
			m.moveCursor(msg)
		}
	}
	return m, nil
}

// handleFormKey feeds keystrokes to the focused new-card input.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.view.Focus = view.IDList
		m.reconcile()
		return m, nil
	case key.Matches(msg, m.keys.Confirm):
		cmd := m.activate(view.IDSubmit)
		return m, cmd
	case key.Matches(msg, m.keys.Tab):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.moveFocus(-1)
		return m, nil
	}

	var cmd tea.Cmd
	if m.tree.Focus == view.IDName {
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.view.SetPending(view.FieldName, m.nameInput.Value())
	} else {
		m.codeInput, cmd = m.codeInput.Update(msg)
		m.view.SetPending(view.FieldCode, m.codeInput.Value())
	}
	m.reconcile()
	return m, cmd
}

func (m *Model) moveCursor(msg tea.KeyMsg) {
	count := len(m.tree.List.Items)
	if count == 0 {
		return
	}
	rows := m.tree.List.Rows
	switch {
	case key.Matches(msg, m.keys.Up):
		m.view.Cursor--
	case key.Matches(msg, m.keys.Down):
		m.view.Cursor++
	case key.Matches(msg, m.keys.Top):
		m.view.Cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.view.Cursor = count - 1
	case key.Matches(msg, m.keys.PageUp):
		m.view.Cursor -= rows
	case key.Matches(msg, m.keys.PageDown):
		m.view.Cursor += rows
	default:
		return
	}
	m.reconcile()
}

func (m *Model) moveFocus(step int) {
	m.view.Focus = view.NextFocus(m.tree, m.tree.Focus, step)
	m.reconcile()
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.preview = symbol.NewTextCanvas(m.theme.Danger)
	m.previewKey = ""
	m.savePrefs()
	m.reconcile()
}
