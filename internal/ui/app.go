package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/cardwallet/internal/cardconfig"
	"github.com/five82/cardwallet/internal/logging"
	"github.com/five82/cardwallet/internal/prefs"
	"github.com/five82/cardwallet/internal/state"
	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/view"
	"github.com/five82/cardwallet/internal/wallet"
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Session    wallet.Session
	Store      *state.Store
	CardConfig cardconfig.Config
	Renderer   *symbol.Renderer
	PollTick   time.Duration
	Timeout    time.Duration
	ThemeName  string
	LastTab    string
	PrefsPath  string

	// OnSession is told about every session installed after startup, so
	// background reloads can follow it.
	OnSession func(wallet.Session)
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	session   wallet.Session
	onSession func(wallet.Session)
	store     *state.Store
	cardCfg   cardconfig.Config
	renderer  *symbol.Renderer
	prefsPath string
	pollTick  time.Duration
	timeout   time.Duration
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	snapshot  state.Snapshot
	view      view.State
	tree      view.Tree
	bindings  view.Bindings
	reloadSeq int
	applied   int

	// Inputs
	nameInput  textinput.Model
	codeInput  textinput.Model
	draftInput textinput.Model

	// Code preview for the open card
	preview    *symbol.TextCanvas
	previewKey string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = symbol.NewRenderer()
	}

	theme := GetTheme(themeName)
	m := Model{
		ctx:        ctx,
		session:    opts.Session,
		onSession:  opts.OnSession,
		store:      store,
		cardCfg:    opts.CardConfig,
		renderer:   renderer,
		prefsPath:  prefsPath,
		pollTick:   pollTick,
		timeout:    timeout,
		keys:       DefaultKeyMap(),
		theme:      theme,
		view:       view.NewState(),
		nameInput:  newInput("Card name", NameCharLimit),
		codeInput:  newInput("Code", CodeCharLimit),
		draftInput: newInput("Card name", NameCharLimit),
		preview:    symbol.NewTextCanvas(theme.Danger),
	}
	if opts.LastTab == view.TabOthers.String() {
		m.view.SelectTab(view.TabOthers)
	}
	m.applySnapshot(store.Snapshot())
	m.reconcile()
	return m
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = InputWidth
	ti.Prompt = ""
	return ti
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if cmd := m.reloadCmd(m.reloadSeq); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// SetSession installs a new session and starts loading its cards.
func (m *Model) SetSession(s wallet.Session) tea.Cmd {
	m.session = s
	if m.onSession != nil {
		m.onSession(s)
	}
	m.reconcile()
	return m.reload()
}

// SetConfig stores the host's card configuration.
func (m *Model) SetConfig(cfg cardconfig.Config) {
	m.cardCfg = cfg
}

// SessionMsg hands a running program a new session.
type SessionMsg wallet.Session

// ConfigMsg hands a running program new card configuration.
type ConfigMsg cardconfig.Config

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.reconcile()
		return m, nil

	case tickMsg:
		return m, tea.Batch(fetchSnapshotCmd(m.store), tickCmd(m.pollTick))

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case reloadedMsg:
		return m.handleReloaded(msg)

	case createdMsg:
		return m.handleCreated(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case deletedMsg:
		return m.handleDeleted(msg)

	case SessionMsg:
		cmd := m.SetSession(wallet.Session(msg))
		return m, cmd

	case ConfigMsg:
		m.SetConfig(cardconfig.Config(msg))
		m.reconcile()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	switch {
	case m.tree.Notice != nil && m.tree.Notice.Blocking():
		return m.renderNoticeModal(*m.tree.Notice)
	case m.tree.Dialog != nil:
		return m.renderDialog(*m.tree.Dialog)
	case m.tree.Overlay != nil:
		return m.renderOverlay(*m.tree.Overlay)
	}

	return m.renderMain()
}

// reconcile rebuilds the tree from current state and rebinds its handlers.
// Pending input, focus and scroll position survive every rebuild.
func (m *Model) reconcile() {
	m.tree = view.Reconcile(m.view, m.snapshot, m.session.User, view.Layout{
		Width:    m.width,
		ListRows: m.listRows(),
	})
	view.Carry(&m.view, m.tree)
	m.bindings = view.Bind(m.tree)
	m.syncInputs()
	m.refreshPreview()
}

// syncInputs re-applies pending text to the input widgets and focuses the
// one matching the tree's focus.
func (m *Model) syncInputs() {
	if m.nameInput.Value() != m.tree.Form.Name {
		m.nameInput.SetValue(m.tree.Form.Name)
	}
	if m.codeInput.Value() != m.tree.Form.Code {
		m.codeInput.SetValue(m.tree.Form.Code)
	}
	if d := m.tree.Dialog; d != nil && m.draftInput.Value() != d.Name {
		m.draftInput.SetValue(d.Name)
	}

	focus := func(ti *textinput.Model, on bool) {
		if on {
			ti.Focus()
		} else {
			ti.Blur()
		}
	}
	focus(&m.nameInput, m.tree.Focus == view.IDName)
	focus(&m.codeInput, m.tree.Focus == view.IDCode)
	focus(&m.draftInput, m.tree.Focus == view.IDDraftName)
}

// refreshPreview redraws the open card's code when its content or mode
// changed since the last draw.
func (m *Model) refreshPreview() {
	ov := m.tree.Overlay
	if ov == nil {
		m.previewKey = ""
		return
	}
	key := strings.Join([]string{ov.CardID, ov.Code, ov.Mode.String(), string(ov.Format)}, "|")
	if key == m.previewKey {
		return
	}
	m.previewKey = key

	mode := symbol.Barcode(ov.Format)
	if ov.Mode == symbol.KindQR {
		mode = symbol.QR()
	}
	m.renderer.Render(m.preview, ov.Code, mode, symbol.TerminalOptions(), m.preview)
}

// applySnapshot installs snap unless its lists were partitioned for another
// user, as happens when a poll started before the session changed.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.Loaded && snap.UserID != m.session.User.ID {
		logging.Debug("ignoring snapshot for another user",
			zap.String("snapshot_user", snap.UserID),
			zap.String("session_user", m.session.User.ID),
		)
		return
	}
	m.snapshot = snap
	m.view.Prune(snap)
	m.reconcile()
}

func (m Model) listRows() int {
	return max(1, m.height-MainChromeRows)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
