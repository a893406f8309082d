package view

import (
	"testing"

	"github.com/five82/cardwallet/internal/wallet"
)

func TestBind_FreshMapPerCall(t *testing.T) {
	snap := loaded(wallet.Card{ID: "a", OwnerID: "u1"}, wallet.Card{ID: "b", OwnerID: "u1"})
	st := NewState()

	first := Bind(Reconcile(st, snap, u1, Layout{ListRows: 5}))
	second := Bind(Reconcile(st, snap, u1, Layout{ListRows: 5}))
	if len(first) != len(second) {
		t.Fatalf("rebinding changed handler count: %d then %d", len(first), len(second))
	}
	first["extra"] = Event{}
	if _, ok := second["extra"]; ok {
		t.Fatalf("bindings share storage across calls")
	}

	// After a reload drops card b its row handler is gone.
	shrunk := Bind(Reconcile(st, loaded(wallet.Card{ID: "a", OwnerID: "u1"}), u1, Layout{ListRows: 5}))
	if _, ok := shrunk.Lookup(CardElementID("b")); ok {
		t.Fatalf("stale handler for removed card")
	}
	if ev, ok := shrunk.Lookup(CardElementID("a")); !ok || ev.Kind != EventOpenCard || ev.CardID != "a" {
		t.Fatalf("card a binding = %#v, %v", ev, ok)
	}
}

func TestBind_ListFollowsCursor(t *testing.T) {
	snap := loaded(wallet.Card{ID: "a", OwnerID: "u1"}, wallet.Card{ID: "b", OwnerID: "u1"})
	st := NewState()
	st.Cursor = 1
	b := Bind(Reconcile(st, snap, u1, Layout{ListRows: 5}))
	if ev, _ := b.Lookup(IDList); ev.CardID != "b" {
		t.Fatalf("list binding opens %q, want b", ev.CardID)
	}

	empty := Bind(Reconcile(NewState(), loaded(), u1, Layout{ListRows: 5}))
	if _, ok := empty.Lookup(IDList); ok {
		t.Fatalf("empty list bound to an open event")
	}
}

func TestBind_TabsAndLayers(t *testing.T) {
	snap := loaded(wallet.Card{ID: "a", OwnerID: "u1"})
	st := NewState()
	st.OpenCard("a")
	st.BeginEdit(wallet.Card{ID: "a"})
	st.Raise(NoticeTransport, "boom")

	b := Bind(Reconcile(st, snap, u1, Layout{ListRows: 5}))
	if ev, _ := b.Lookup(IDTabOthers); ev.Kind != EventSelectTab || ev.Tab != TabOthers {
		t.Fatalf("tab-others = %#v", ev)
	}
	for id, kind := range map[string]EventKind{
		IDToggle:  EventToggleMode,
		IDEdit:    EventBeginEdit,
		IDDelete:  EventDeleteCard,
		IDClose:   EventCloseCard,
		IDSave:    EventSaveEdit,
		IDCancel:  EventCancelEdit,
		IDDismiss: EventDismiss,
		IDSubmit:  EventSubmit,
	} {
		ev, ok := b.Lookup(id)
		if !ok || ev.Kind != kind {
			t.Fatalf("%s bound to %#v (%v), want kind %d", id, ev, ok, kind)
		}
	}
}

func TestCardIDFromElement(t *testing.T) {
	if id, ok := CardIDFromElement(CardElementID("42")); !ok || id != "42" {
		t.Fatalf("round trip = %q, %v", id, ok)
	}
	for _, bad := range []string{"card:", "submit", ""} {
		if _, ok := CardIDFromElement(bad); ok {
			t.Fatalf("CardIDFromElement(%q) ok = true", bad)
		}
	}
}
