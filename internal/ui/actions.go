package ui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/cardwallet/internal/logging"
	"github.com/five82/cardwallet/internal/prefs"
	"github.com/five82/cardwallet/internal/state"
	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/view"
	"github.com/five82/cardwallet/internal/wallet"
)

var (
	// ErrIncompleteCard is raised when the new-card form is submitted with a
	// blank name or code.
	ErrIncompleteCard = errors.New("enter both a card name and a code")

	// ErrEmptyName is raised when an edit would clear the card name.
	ErrEmptyName = errors.New("card name cannot be empty")

	errNoSession = errors.New("not signed in")
)

// Store results

type reloadedMsg struct {
	seq  int
	snap state.Snapshot
	err  error
}

type createdMsg struct {
	card wallet.Card
	err  error
}

type savedMsg struct {
	id    string
	patch wallet.Patch
	err   error
}

type deletedMsg struct {
	id  string
	err error
}

// activate runs the event bound to element id in the current tree.
func (m *Model) activate(id string) tea.Cmd {
	ev, ok := m.bindings.Lookup(id)
	if !ok {
		return nil
	}
	return m.dispatch(ev)
}

// dispatch applies one event to the view state, rebuilds the tree and
// returns any store command the event started.
func (m *Model) dispatch(ev view.Event) tea.Cmd {
	var cmd tea.Cmd
	switch ev.Kind {
	case view.EventSelectTab:
		if m.view.ActiveTab != ev.Tab {
			m.view.SelectTab(ev.Tab)
			m.savePrefs()
		}
	case view.EventOpenCard:
		m.view.OpenCard(ev.CardID)
	case view.EventCloseCard:
		m.view.CloseCard()
	case view.EventToggleMode:
		m.view.ToggleViewMode(m.snapshot, ev.CardID)
	case view.EventBeginEdit:
		if card, ok := m.snapshot.Find(ev.CardID); ok && card.OwnedBy(m.session.User.ID) {
			m.view.BeginEdit(card)
			m.draftInput.SetValue(card.Name)
			m.draftInput.CursorEnd()
		}
	case view.EventDeleteCard:
		cmd = m.deleteCard(ev.CardID)
	case view.EventFocusField:
		m.view.Focus = focusTarget(ev)
	case view.EventSubmit:
		cmd = m.submit()
	case view.EventSaveEdit:
		cmd = m.saveEdit()
	case view.EventCancelEdit:
		m.view.CancelEdit()
	case view.EventDismiss:
		m.view.Dismiss()
	}
	m.reconcile()
	return cmd
}

func focusTarget(ev view.Event) string {
	switch ev.Field {
	case view.FieldCode:
		return view.IDCode
	case view.FieldFormat:
		return view.IDDraftFormat
	}
	if ev.CardID != "" {
		return view.IDDraftName
	}
	return view.IDName
}

// notify raises a notice. A transport notice never hides a blocking prompt.
func (m *Model) notify(kind view.NoticeKind, msg string) {
	if n := m.view.Notice; n != nil && n.Blocking() && kind != view.NoticeValidation {
		return
	}
	m.view.Raise(kind, msg)
}

// submit validates the new-card form and starts the create request.
func (m *Model) submit() tea.Cmd {
	if m.view.Pending.Empty() {
		m.notify(view.NoticeValidation, capitalize(ErrIncompleteCard.Error())+".")
		return nil
	}
	if !m.session.Valid() {
		m.notify(view.NoticeTransport, "Could not add card: "+errNoSession.Error())
		return nil
	}

	user := m.session.User
	card := wallet.NewCard{
		Name:             strings.TrimSpace(m.view.Pending.Name),
		Code:             strings.TrimSpace(m.view.Pending.Code),
		OwnerID:          user.ID,
		OwnerDisplayName: user.Name,
		Format:           symbol.DefaultFormat,
	}
	store := m.session.Store
	ctx, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		created, err := store.Create(ctx, card)
		return createdMsg{card: created, err: err}
	}
}

// saveEdit validates the draft and starts the update request.
func (m *Model) saveEdit() tea.Cmd {
	edit := m.view.Edit
	if edit == nil || edit.Saving {
		return nil
	}
	name := strings.TrimSpace(edit.DraftName)
	if name == "" {
		m.notify(view.NoticeValidation, capitalize(ErrEmptyName.Error())+".")
		return nil
	}
	if !m.session.Valid() {
		m.notify(view.NoticeTransport, "Could not save card: "+errNoSession.Error())
		return nil
	}

	format := edit.DraftFormat
	patch := wallet.Patch{OwnerID: m.session.User.ID, Name: &name, Format: &format}
	id := edit.CardID
	edit.Saving = true

	store := m.session.Store
	ctx, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		_, err := store.Update(ctx, id, patch)
		return savedMsg{id: id, patch: patch, err: err}
	}
}

// deleteCard starts the delete request for an owned card.
func (m *Model) deleteCard(id string) tea.Cmd {
	card, ok := m.snapshot.Find(id)
	if !ok || !card.OwnedBy(m.session.User.ID) || m.session.Store == nil {
		return nil
	}
	store := m.session.Store
	owner := m.session.User.ID
	ctx, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return deletedMsg{id: id, err: store.Delete(ctx, id, owner)}
	}
}

// reload starts a new list request that supersedes any still in flight.
func (m *Model) reload() tea.Cmd {
	m.reloadSeq++
	return m.reloadCmd(m.reloadSeq)
}

func (m Model) reloadCmd(seq int) tea.Cmd {
	if !m.session.Valid() {
		return nil
	}
	sess, store := m.session, m.store
	ctx, timeout := m.ctx, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		err := state.Refresh(ctx, sess.Store, store, sess.User.ID)
		return reloadedMsg{seq: seq, snap: store.Snapshot(), err: err}
	}
}

func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	if msg.seq < m.applied {
		return m, nil
	}
	m.applied = msg.seq
	if msg.err != nil {
		logging.Warn("card reload failed", zap.Error(msg.err))
		m.notify(view.NoticeTransport, "Could not load cards: "+msg.err.Error())
	}
	m.applySnapshot(msg.snap)
	return m, nil
}

func (m Model) handleCreated(msg createdMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		logging.Warn("card create failed", zap.Error(msg.err))
		m.notify(view.NoticeTransport, "Could not add card: "+msg.err.Error())
		m.reconcile()
		return m, nil
	}
	logging.Info("card created", zap.String("card_id", msg.card.ID))
	m.view.ClearPending()
	m.reconcile()
	cmd := m.reload()
	return m, cmd
}

func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.view.CancelEdit()
	if msg.err != nil {
		logging.Warn("card update failed", zap.String("card_id", msg.id), zap.Error(msg.err))
		m.notify(view.NoticeTransport, "Could not save card: "+msg.err.Error())
		m.reconcile()
		return m, nil
	}
	if existing, ok := m.snapshot.Find(msg.id); ok {
		m.store.Patch(msg.patch.Apply(existing))
		m.applySnapshot(m.store.Snapshot())
	}
	m.reconcile()
	cmd := m.reload()
	return m, cmd
}

func (m Model) handleDeleted(msg deletedMsg) (tea.Model, tea.Cmd) {
	m.view.CloseCard()
	if msg.err != nil {
		logging.Warn("card delete failed", zap.String("card_id", msg.id), zap.Error(msg.err))
		m.notify(view.NoticeTransport, "Could not delete card: "+msg.err.Error())
	}
	m.reconcile()
	cmd := m.reload()
	return m, cmd
}

// savePrefs persists the theme and active tab. Failures are logged only.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, LastTab: m.view.ActiveTab.String()}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		logging.Warn("save prefs failed", zap.Error(err))
	}
}
