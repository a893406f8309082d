package view

import (
	"slices"

	"github.com/five82/cardwallet/internal/state"
	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/wallet"
)

// Reconcile builds the visible structure from st and snap. It is pure: the
// same inputs always produce the same Tree, and neither input is modified.
// Cursor, scroll offset and focus are clamped to what exists; callers carry
// the clamped values forward with Carry.
func Reconcile(st State, snap state.Snapshot, user wallet.User, layout Layout) Tree {
	tree := Tree{
		Status: Status{
			UserName:    user.Name,
			Loaded:      snap.Loaded,
			Offline:     snap.IsOffline(),
			LastUpdated: snap.LastUpdated,
		},
		Form: Form{Name: st.Pending.Name, Code: st.Pending.Code},
	}
	if snap.LastError != nil {
		tree.Status.LastError = snap.LastError.Error()
	}

	tree.Tabs = [2]TabItem{
		{ID: IDTabOwn, Tab: TabOwn, Label: "My cards", Count: len(snap.Own), Active: st.ActiveTab != TabOthers},
		{ID: IDTabOthers, Tab: TabOthers, Label: "Shared with me", Count: len(snap.Others), Active: st.ActiveTab == TabOthers},
	}

	cards := snap.Own
	if st.ActiveTab == TabOthers {
		cards = snap.Others
	}
	tree.List = buildList(cards, st, layout)

	if card, ok := snap.Find(st.SelectedCardID); ok {
		tree.Overlay = buildOverlay(card, st, user)
	}
	if st.Edit != nil {
		tree.Dialog = &Dialog{
			CardID: st.Edit.CardID,
			Name:   st.Edit.DraftName,
			Format: st.Edit.DraftFormat,
			Saving: st.Edit.Saving,
			Controls: []Control{
				{ID: IDSave, Label: "Save", Key: "enter"},
				{ID: IDCancel, Label: "Cancel", Key: "esc"},
			},
		}
	}
	if st.Notice != nil {
		notice := *st.Notice
		tree.Notice = &notice
	}

	tree.FocusOrder = focusOrder(tree)
	tree.Focus = st.Focus
	if !slices.Contains(tree.FocusOrder, tree.Focus) {
		tree.Focus = tree.FocusOrder[0]
	}
	return tree
}

func buildList(cards []wallet.Card, st State, layout Layout) List {
	list := List{Rows: layout.ListRows}
	if list.Rows < 1 {
		list.Rows = 1
	}
	if len(cards) == 0 {
		if st.ActiveTab == TabOthers {
			list.Empty = "Nobody has shared a card yet."
		} else {
			list.Empty = "No cards yet. Add one below."
		}
		return list
	}

	list.Cursor = clamp(st.Cursor, 0, len(cards)-1)
	offset := st.Offset
	if list.Cursor < offset {
		offset = list.Cursor
	}
	if list.Cursor >= offset+list.Rows {
		offset = list.Cursor - list.Rows + 1
	}
	list.Offset = clamp(offset, 0, max(0, len(cards)-list.Rows))

	list.Items = make([]ListItem, len(cards))
	for i, c := range cards {
		item := ListItem{
			ID:        c.ID,
			ElementID: CardElementID(c.ID),
			Name:      c.Name,
			Cursor:    i == list.Cursor,
			Open:      c.ID == st.SelectedCardID,
		}
		if st.ActiveTab == TabOthers {
			item.Owner = c.OwnerDisplayName
		}
		list.Items[i] = item
	}
	return list
}

func buildOverlay(card wallet.Card, st State, user wallet.User) *Overlay {
	ov := &Overlay{
		CardID: card.ID,
		Name:   card.Name,
		Code:   card.Code,
		Format: card.Format,
		Mode:   st.ModeFor(card.ID),
		Owned:  card.OwnedBy(user.ID),
	}
	if !ov.Owned {
		ov.Owner = card.OwnerDisplayName
	}
	ov.Controls = append(ov.Controls, Control{ID: IDToggle, Label: "Switch to " + otherMode(ov.Mode), Key: "m"})
	if ov.Owned {
		ov.Controls = append(ov.Controls,
			Control{ID: IDEdit, Label: "Edit", Key: "e"},
			Control{ID: IDDelete, Label: "Delete", Key: "d"},
		)
	}
	ov.Controls = append(ov.Controls, Control{ID: IDClose, Label: "Close", Key: "esc"})
	return ov
}

func focusOrder(tree Tree) []string {
	switch {
	case tree.Notice != nil && tree.Notice.Blocking():
		return []string{IDDismiss}
	case tree.Dialog != nil:
		return []string{IDDraftName, IDDraftFormat, IDSave, IDCancel}
	case tree.Overlay != nil:
		ids := make([]string, 0, len(tree.Overlay.Controls))
		for _, c := range tree.Overlay.Controls {
			ids = append(ids, c.ID)
		}
		return ids
	default:
		return []string{IDList, IDName, IDCode, IDSubmit}
	}
}

// Carry copies the clamped cursor, scroll offset and focus of tree back into
// st so the next rebuild starts where this one ended.
func Carry(st *State, tree Tree) {
	st.Cursor = tree.List.Cursor
	st.Offset = tree.List.Offset
	st.Focus = tree.Focus
}

// NextFocus returns the element after (or before, for step < 0) current in
// the tree's focus order.
func NextFocus(tree Tree, current string, step int) string {
	order := tree.FocusOrder
	if len(order) == 0 {
		return current
	}
	idx := slices.Index(order, current)
	if idx < 0 {
		return order[0]
	}
	n := len(order)
	return order[((idx+step)%n+n)%n]
}

func otherMode(k symbol.Kind) string {
	if k == symbol.KindQR {
		return "barcode"
	}
	return "QR"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
