package view

import (
	"time"

	"github.com/five82/cardwallet/internal/symbol"
)

// Element ids. Every interactive element in a Tree carries one of these, or
// a card element id from CardElementID.
const (
	IDTabOwn      = "tab-own"
	IDTabOthers   = "tab-others"
	IDList        = "list"
	IDName        = "name"
	IDCode        = "code"
	IDSubmit      = "submit"
	IDToggle      = "toggle-code"
	IDEdit        = "edit"
	IDDelete      = "delete"
	IDClose       = "close"
	IDDraftName   = "draft-name"
	IDDraftFormat = "draft-format"
	IDSave        = "save"
	IDCancel      = "cancel"
	IDDismiss     = "dismiss"

	cardPrefix = "card:"
)

// CardElementID returns the element id of a card's list row.
func CardElementID(cardID string) string {
	return cardPrefix + cardID
}

// Layout is the space available to the card list.
type Layout struct {
	Width    int
	ListRows int
}

// Tree is an immutable description of everything on screen. It holds no
// handlers; see Bind.
type Tree struct {
	Status     Status
	Tabs       [2]TabItem
	List       List
	Form       Form
	Overlay    *Overlay
	Dialog     *Dialog
	Notice     *Notice
	Focus      string
	FocusOrder []string
}

// Status summarizes the snapshot for the header.
type Status struct {
	UserName    string
	Loaded      bool
	Offline     bool
	LastError   string
	LastUpdated time.Time
}

// TabItem is one entry of the tab bar.
type TabItem struct {
	ID     string
	Tab    Tab
	Label  string
	Count  int
	Active bool
}

// List is the visible window of the active tab's cards.
type List struct {
	Items  []ListItem
	Cursor int
	Offset int
	Rows   int
	Empty  string
}

// Visible returns the items inside the scroll window.
func (l List) Visible() []ListItem {
	if len(l.Items) == 0 {
		return nil
	}
	end := l.Offset + l.Rows
	if l.Rows <= 0 || end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.Offset:end]
}

// ListItem is one card row. Owner is empty on the own tab.
type ListItem struct {
	ID        string
	ElementID string
	Name      string
	Owner     string
	Cursor    bool
	Open      bool
}

// Form is the new-card form carrying pending input.
type Form struct {
	Name string
	Code string
}

// Overlay is the detail view of the selected card.
type Overlay struct {
	CardID   string
	Name     string
	Code     string
	Owner    string
	Format   symbol.Format
	Mode     symbol.Kind
	Owned    bool
	Controls []Control
}

// Dialog is the edit modal.
type Dialog struct {
	CardID   string
	Name     string
	Format   symbol.Format
	Saving   bool
	Controls []Control
}

// Control is an activatable element with its shortcut hint.
type Control struct {
	ID    string
	Label string
	Key   string
}
