package view

import "strings"

// EventKind enumerates what activating an element asks the controller to do.
type EventKind int

const (
	EventSelectTab EventKind = iota
	EventOpenCard
	EventCloseCard
	EventToggleMode
	EventBeginEdit
	EventDeleteCard
	EventFocusField
	EventSubmit
	EventSaveEdit
	EventCancelEdit
	EventDismiss
)

// Event is the handler attached to one element.
type Event struct {
	Kind   EventKind
	Tab    Tab
	CardID string
	Field  Field
}

// Bindings maps element ids to their events.
type Bindings map[string]Event

// Lookup returns the event bound to id.
func (b Bindings) Lookup(id string) (Event, bool) {
	ev, ok := b[id]
	return ev, ok
}

// Bind attaches events to every interactive element of tree. Each call
// returns a new map, so rebinding after a rebuild replaces the previous
// handlers instead of adding to them.
func Bind(tree Tree) Bindings {
	b := make(Bindings)

	for _, tab := range tree.Tabs {
		b[tab.ID] = Event{Kind: EventSelectTab, Tab: tab.Tab}
	}
	for _, item := range tree.List.Items {
		b[item.ElementID] = Event{Kind: EventOpenCard, CardID: item.ID}
	}
	if len(tree.List.Items) > 0 {
		b[IDList] = Event{Kind: EventOpenCard, CardID: tree.List.Items[tree.List.Cursor].ID}
	}
	b[IDName] = Event{Kind: EventFocusField, Field: FieldName}
	b[IDCode] = Event{Kind: EventFocusField, Field: FieldCode}
	b[IDSubmit] = Event{Kind: EventSubmit}

	if ov := tree.Overlay; ov != nil {
		for _, c := range ov.Controls {
			switch c.ID {
			case IDToggle:
				b[c.ID] = Event{Kind: EventToggleMode, CardID: ov.CardID}
			case IDEdit:
				b[c.ID] = Event{Kind: EventBeginEdit, CardID: ov.CardID}
			case IDDelete:
				b[c.ID] = Event{Kind: EventDeleteCard, CardID: ov.CardID}
			case IDClose:
				b[c.ID] = Event{Kind: EventCloseCard, CardID: ov.CardID}
			}
		}
	}
	if d := tree.Dialog; d != nil {
		b[IDDraftName] = Event{Kind: EventFocusField, Field: FieldName, CardID: d.CardID}
		b[IDDraftFormat] = Event{Kind: EventFocusField, Field: FieldFormat, CardID: d.CardID}
		b[IDSave] = Event{Kind: EventSaveEdit, CardID: d.CardID}
		b[IDCancel] = Event{Kind: EventCancelEdit, CardID: d.CardID}
	}
	if tree.Notice != nil {
		b[IDDismiss] = Event{Kind: EventDismiss}
	}
	return b
}

// CardIDFromElement extracts the card id from a list row element id.
func CardIDFromElement(elementID string) (string, bool) {
	id, ok := strings.CutPrefix(elementID, cardPrefix)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
