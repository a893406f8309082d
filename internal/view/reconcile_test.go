package view

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/five82/cardwallet/internal/state"
	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/wallet"
)

var u1 = wallet.User{ID: "u1", Name: "Ana"}

func loaded(cards ...wallet.Card) state.Snapshot {
	var s state.Store
	s.Update(cards, u1.ID, nil)
	return s.Snapshot()
}

func itemIDs(items []ListItem) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestReconcile_PartitionsTabs(t *testing.T) {
	snap := loaded(
		wallet.Card{ID: "a", OwnerID: "u1", OwnerDisplayName: "Ana", Format: symbol.DefaultFormat},
		wallet.Card{ID: "b", OwnerID: "u2", OwnerDisplayName: "Ben", Format: symbol.DefaultFormat},
	)
	st := NewState()

	tree := Reconcile(st, snap, u1, Layout{ListRows: 10})
	if got := itemIDs(tree.List.Items); !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("own tab = %v, want [a]", got)
	}
	if tree.List.Items[0].Owner != "" {
		t.Fatalf("own tab shows owner %q", tree.List.Items[0].Owner)
	}
	if !tree.Tabs[0].Active || tree.Tabs[1].Active {
		t.Fatalf("tabs = %#v, want own active", tree.Tabs)
	}

	st.SelectTab(TabOthers)
	tree = Reconcile(st, snap, u1, Layout{ListRows: 10})
	if got := itemIDs(tree.List.Items); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("others tab = %v, want [b]", got)
	}
	if tree.List.Items[0].Owner != "Ben" {
		t.Fatalf("others tab owner = %q, want Ben", tree.List.Items[0].Owner)
	}
}

func TestReconcile_LegacyFormatStable(t *testing.T) {
	cards, err := wallet.DecodeCards([]byte(`[{"card_id":"a","name":"Old","code":"X1","user_id":"u1"}]`))
	if err != nil {
		t.Fatalf("DecodeCards: %v", err)
	}
	snap := loaded(cards...)
	st := NewState()
	st.OpenCard("a")

	for i := 0; i < 3; i++ {
		tree := Reconcile(st, snap, u1, Layout{ListRows: 5})
		if tree.Overlay == nil || tree.Overlay.Format != symbol.DefaultFormat {
			t.Fatalf("reconcile %d overlay = %#v, want default format", i, tree.Overlay)
		}
	}
}

func TestReconcile_DoesNotMutateInputs(t *testing.T) {
	snap := loaded(wallet.Card{ID: "a", OwnerID: "u1"}, wallet.Card{ID: "b", OwnerID: "u1"})
	st := NewState()
	st.Cursor = 99
	st.Offset = 42
	st.Focus = "nowhere"
	st.OpenCard("a")
	before := st.Clone()

	tree := Reconcile(st, snap, u1, Layout{ListRows: 1})
	if !reflect.DeepEqual(st, before) {
		t.Fatalf("Reconcile mutated state")
	}
	if tree.List.Cursor != 1 || tree.List.Offset != 1 {
		t.Fatalf("cursor/offset = %d/%d, want clamped 1/1", tree.List.Cursor, tree.List.Offset)
	}
	again := Reconcile(st, snap, u1, Layout{ListRows: 1})
	if !reflect.DeepEqual(tree, again) {
		t.Fatalf("Reconcile is not deterministic")
	}
}

func TestReconcile_OverlayGatedOnOwnership(t *testing.T) {
	snap := loaded(
		wallet.Card{ID: "mine", OwnerID: "u1", OwnerDisplayName: "Ana"},
		wallet.Card{ID: "theirs", OwnerID: "u2", OwnerDisplayName: "Ben"},
	)
	controls := func(ov *Overlay) []string {
		var ids []string
		for _, c := range ov.Controls {
			ids = append(ids, c.ID)
		}
		return ids
	}

	st := NewState()
	st.OpenCard("mine")
	tree := Reconcile(st, snap, u1, Layout{ListRows: 5})
	if got := controls(tree.Overlay); !reflect.DeepEqual(got, []string{IDToggle, IDEdit, IDDelete, IDClose}) {
		t.Fatalf("own card controls = %v", got)
	}
	if tree.Overlay.Owner != "" {
		t.Fatalf("own card overlay shows owner")
	}

	st.OpenCard("theirs")
	tree = Reconcile(st, snap, u1, Layout{ListRows: 5})
	if got := controls(tree.Overlay); !reflect.DeepEqual(got, []string{IDToggle, IDClose}) {
		t.Fatalf("shared card controls = %v", got)
	}
	b := Bind(tree)
	if _, ok := b.Lookup(IDDelete); ok {
		t.Fatalf("delete bound for a card owned by someone else")
	}
	if tree.Overlay.Owner != "Ben" {
		t.Fatalf("overlay owner = %q, want Ben", tree.Overlay.Owner)
	}
}

func TestReconcile_NoOverlayAfterClose(t *testing.T) {
	snap := loaded(wallet.Card{ID: "a", OwnerID: "u1"}, wallet.Card{ID: "b", OwnerID: "u2"})
	for _, id := range []string{"a", "b"} {
		st := NewState()
		st.OpenCard(id)
		st.CloseCard()
		if tree := Reconcile(st, snap, u1, Layout{ListRows: 5}); tree.Overlay != nil {
			t.Fatalf("overlay shown after closing %s", id)
		}
	}
}

func TestReconcile_SelectionOfMissingCardShowsNothing(t *testing.T) {
	st := NewState()
	st.OpenCard("ghost")
	tree := Reconcile(st, loaded(), u1, Layout{ListRows: 5})
	if tree.Overlay != nil {
		t.Fatalf("overlay built for missing card")
	}
	if tree.List.Empty == "" {
		t.Fatalf("empty list has no placeholder")
	}
}

func TestReconcile_ScrollWindow(t *testing.T) {
	var cards []wallet.Card
	for i := 0; i < 20; i++ {
		cards = append(cards, wallet.Card{ID: fmt.Sprintf("c%02d", i), OwnerID: "u1"})
	}
	snap := loaded(cards...)
	st := NewState()
	st.Cursor = 12
	st.Offset = 0

	tree := Reconcile(st, snap, u1, Layout{ListRows: 5})
	if tree.List.Offset != 8 {
		t.Fatalf("offset = %d, want 8 so cursor 12 is visible", tree.List.Offset)
	}
	visible := tree.List.Visible()
	if len(visible) != 5 || visible[len(visible)-1].ID != "c12" || !visible[len(visible)-1].Cursor {
		t.Fatalf("visible = %v", itemIDs(visible))
	}

	// The offset carries across rebuilds when the cursor moves back inside
	// the window.
	Carry(&st, tree)
	st.Cursor = 10
	tree = Reconcile(st, snap, u1, Layout{ListRows: 5})
	if tree.List.Offset != 8 {
		t.Fatalf("offset after moving within window = %d, want 8", tree.List.Offset)
	}

	// A shrinking snapshot clamps the offset.
	Carry(&st, tree)
	tree = Reconcile(st, loaded(cards[:3]...), u1, Layout{ListRows: 5})
	if tree.List.Offset != 0 || tree.List.Cursor != 2 {
		t.Fatalf("after shrink offset/cursor = %d/%d, want 0/2", tree.List.Offset, tree.List.Cursor)
	}
}

func TestReconcile_FocusLayers(t *testing.T) {
	snap := loaded(wallet.Card{ID: "a", OwnerID: "u1"})
	st := NewState()
	st.Focus = IDCode

	tree := Reconcile(st, snap, u1, Layout{ListRows: 5})
	if tree.Focus != IDCode {
		t.Fatalf("focus = %q, want code restored", tree.Focus)
	}

	st.OpenCard("a")
	tree = Reconcile(st, snap, u1, Layout{ListRows: 5})
	if tree.Focus != IDToggle {
		t.Fatalf("overlay focus = %q, want %q", tree.Focus, IDToggle)
	}

	st.BeginEdit(wallet.Card{ID: "a"})
	tree = Reconcile(st, snap, u1, Layout{ListRows: 5})
	if tree.Dialog == nil || tree.Focus != IDDraftName {
		t.Fatalf("dialog focus = %q, dialog = %#v", tree.Focus, tree.Dialog)
	}

	// A transport notice leaves the dialog usable.
	st.Focus = IDSave
	st.Raise(NoticeTransport, "boom")
	tree = Reconcile(st, snap, u1, Layout{ListRows: 5})
	if tree.Focus != IDSave || tree.Notice == nil {
		t.Fatalf("transport notice focus = %q, want save", tree.Focus)
	}

	st.Raise(NoticeValidation, "name required")
	tree = Reconcile(st, snap, u1, Layout{ListRows: 5})
	if tree.Focus != IDDismiss {
		t.Fatalf("validation notice focus = %q, want dismiss", tree.Focus)
	}

	if got := NextFocus(tree, IDDismiss, 1); got != IDDismiss {
		t.Fatalf("NextFocus in single element order = %q", got)
	}
}

func TestReconcile_PendingAndStatus(t *testing.T) {
	var s state.Store
	s.Update([]wallet.Card{{ID: "a", OwnerID: "u1"}}, "u1", nil)
	s.Update(nil, "u1", errors.New("timeout"))
	s.Update(nil, "u1", errors.New("timeout"))

	st := NewState()
	st.SetPending(FieldName, "Gy")
	tree := Reconcile(st, s.Snapshot(), u1, Layout{ListRows: 5})
	if tree.Form.Name != "Gy" {
		t.Fatalf("form name = %q, want pending text", tree.Form.Name)
	}
	if !tree.Status.Offline || tree.Status.LastError != "timeout" || len(tree.List.Items) != 1 {
		t.Fatalf("status = %#v items=%d", tree.Status, len(tree.List.Items))
	}
}

func TestNextFocus_Cycles(t *testing.T) {
	tree := Reconcile(NewState(), loaded(), u1, Layout{ListRows: 5})
	order := []string{IDList, IDName, IDCode, IDSubmit}
	if !reflect.DeepEqual(tree.FocusOrder, order) {
		t.Fatalf("FocusOrder = %v", tree.FocusOrder)
	}
	if got := NextFocus(tree, IDSubmit, 1); got != IDList {
		t.Fatalf("NextFocus wrap = %q", got)
	}
	if got := NextFocus(tree, IDList, -1); got != IDSubmit {
		t.Fatalf("NextFocus back wrap = %q", got)
	}
	if got := NextFocus(tree, "missing", 1); got != IDList {
		t.Fatalf("NextFocus from unknown = %q", got)
	}
}
