package view

import (
	"strings"

	"github.com/five82/cardwallet/internal/state"
	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/wallet"
)

// Tab identifies one of the two card lists.
type Tab int

const (
	TabOwn Tab = iota
	TabOthers
)

func (t Tab) String() string {
	if t == TabOthers {
		return "others"
	}
	return "own"
}

// Field names an editable text field.
type Field int

const (
	FieldName Field = iota
	FieldCode
	FieldFormat
)

// Pending is text typed into the new-card form but not yet submitted.
type Pending struct {
	Name string
	Code string
}

// Empty reports whether either field is blank after trimming.
func (p Pending) Empty() bool {
	return strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Code) == ""
}

// EditDialog is the draft copy of a card while the edit modal is open.
type EditDialog struct {
	CardID      string
	DraftName   string
	DraftFormat symbol.Format
	Saving      bool
}

// NoticeKind separates blocking validation prompts from dismissible
// transport errors.
type NoticeKind int

const (
	NoticeValidation NoticeKind = iota
	NoticeTransport
)

// Notice is a message shown above everything else until dismissed.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// Blocking reports whether the notice swallows all input until dismissed.
func (n Notice) Blocking() bool {
	return n.Kind == NoticeValidation
}

// State is everything the widget remembers between renders. The zero value
// is not ready; use NewState.
type State struct {
	ActiveTab      Tab
	SelectedCardID string
	Pending        Pending
	Edit           *EditDialog
	Cursor         int
	Offset         int
	Focus          string
	Notice         *Notice

	modes map[string]symbol.Kind
}

// NewState returns the initial state: own tab, nothing selected, list focused.
func NewState() State {
	return State{
		ActiveTab: TabOwn,
		Focus:     IDList,
		modes:     make(map[string]symbol.Kind),
	}
}

// SelectTab switches the visible list. The selection is kept.
func (s *State) SelectTab(t Tab) {
	if t != TabOwn && t != TabOthers {
		return
	}
	if s.ActiveTab != t {
		s.Cursor = 0
		s.Offset = 0
	}
	s.ActiveTab = t
}

// OpenCard selects id and records the default view mode on first open.
func (s *State) OpenCard(id string) {
	if id == "" {
		return
	}
	s.SelectedCardID = id
	if s.modes == nil {
		s.modes = make(map[string]symbol.Kind)
	}
	if _, ok := s.modes[id]; !ok {
		s.modes[id] = symbol.KindBarcode
	}
}

// CloseCard clears the selection and abandons an edit of that card.
func (s *State) CloseCard() {
	if s.Edit != nil && s.Edit.CardID == s.SelectedCardID {
		s.Edit = nil
	}
	s.SelectedCardID = ""
}

// ToggleViewMode flips the mode recorded for id. Ids absent from snap are
// ignored, including a card deleted elsewhere while it was open.
func (s *State) ToggleViewMode(snap state.Snapshot, id string) {
	if _, ok := snap.Find(id); !ok {
		return
	}
	if s.modes == nil {
		s.modes = make(map[string]symbol.Kind)
	}
	if s.modes[id] == symbol.KindQR {
		s.modes[id] = symbol.KindBarcode
	} else {
		s.modes[id] = symbol.KindQR
	}
}

// ModeFor returns the recorded view mode, barcode when none is recorded.
func (s *State) ModeFor(id string) symbol.Kind {
	if mode, ok := s.modes[id]; ok {
		return mode
	}
	return symbol.KindBarcode
}

// BeginEdit opens the edit dialog seeded from card.
func (s *State) BeginEdit(card wallet.Card) {
	if card.ID == "" {
		return
	}
	format := card.Format
	if format == "" {
		format = symbol.DefaultFormat
	}
	s.Edit = &EditDialog{CardID: card.ID, DraftName: card.Name, DraftFormat: format}
}

// UpdateDraft changes the open dialog's draft copy. FieldCode is not
// editable after creation and is ignored.
func (s *State) UpdateDraft(field Field, value string) {
	if s.Edit == nil {
		return
	}
	switch field {
	case FieldName:
		s.Edit.DraftName = value
	case FieldFormat:
		if f, err := symbol.ParseFormat(value); err == nil {
			s.Edit.DraftFormat = f
		}
	}
}

// CancelEdit discards the edit dialog.
func (s *State) CancelEdit() {
	s.Edit = nil
}

// SetPending records a keystroke in the new-card form.
func (s *State) SetPending(field Field, value string) {
	switch field {
	case FieldName:
		s.Pending.Name = value
	case FieldCode:
		s.Pending.Code = value
	}
}

// ClearPending empties the new-card form after a successful submit.
func (s *State) ClearPending() {
	s.Pending = Pending{}
}

// Raise shows a notice, replacing any current one.
func (s *State) Raise(kind NoticeKind, msg string) {
	s.Notice = &Notice{Kind: kind, Message: msg}
}

// Dismiss clears the current notice.
func (s *State) Dismiss() {
	s.Notice = nil
}

// Prune drops references to cards missing from a loaded snapshot.
func (s *State) Prune(snap state.Snapshot) {
	if !snap.Loaded {
		return
	}
	if s.SelectedCardID != "" {
		if _, ok := snap.Find(s.SelectedCardID); !ok {
			s.SelectedCardID = ""
		}
	}
	if s.Edit != nil {
		if _, ok := snap.Find(s.Edit.CardID); !ok {
			s.Edit = nil
		}
	}
}

// Clone returns a copy that shares nothing mutable with s.
func (s State) Clone() State {
	out := s
	out.modes = make(map[string]symbol.Kind, len(s.modes))
	for k, v := range s.modes {
		out.modes[k] = v
	}
	if s.Edit != nil {
		edit := *s.Edit
		out.Edit = &edit
	}
	if s.Notice != nil {
		notice := *s.Notice
		out.Notice = &notice
	}
	return out
}
