package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/five82/cardwallet/internal/cardconfig"
	"github.com/five82/cardwallet/internal/config"
	"github.com/five82/cardwallet/internal/logging"
	"github.com/five82/cardwallet/internal/prefs"
	"github.com/five82/cardwallet/internal/state"
	"github.com/five82/cardwallet/internal/symbol"
	"github.com/five82/cardwallet/internal/ui"
	"github.com/five82/cardwallet/internal/wallet"
)

// Options configure the cardwallet application.
type Options struct {
	ConfigPath     string
	PrefsPath      string // empty uses default ~/.config/cardwallet/prefs.toml
	CardConfigPath string // empty uses the config file's card_config
	PollEvery      int    // seconds; zero uses the config value
	Demo           bool   // in-memory cards, no server
}

const (
	demoUserID   = "demo-user"
	demoUserName = "You"
)

// Run boots the cardwallet TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logging.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logging.Sync()

	session, err := NewSession(cfg, opts.Demo)
	if err != nil {
		return err
	}

	cardCfg, err := cardconfig.Load(firstNonEmpty(opts.CardConfigPath, cfg.CardConfigPath))
	if err != nil {
		return fmt.Errorf("load card config: %w", err)
	}

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logging.Warn("prefs load failed, using defaults", zap.Error(err))
	}

	store := &state.Store{}

	interval := cfg.PollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	logging.Info("starting",
		zap.String("user", session.User.ID),
		zap.Bool("demo", opts.Demo),
		zap.Duration("poll", interval),
	)

	sessions := &sessionHolder{}
	sessions.Set(session)
	StartPoller(ctx, store, sessions.Get, interval)

	return ui.Run(ui.Options{
		Context:    ctx,
		Session:    session,
		Store:      store,
		CardConfig: cardCfg,
		Renderer:   symbol.NewRenderer(),
		Timeout:    cfg.Timeout,
		ThemeName:  userPrefs.Theme,
		LastTab:    userPrefs.LastTab,
		PrefsPath:  opts.PrefsPath,
		OnSession:  sessions.Set,
	})
}

// NewSession builds the signed-in session from cfg. Demo sessions use an
// in-memory store seeded with sample cards.
func NewSession(cfg config.Config, demo bool) (wallet.Session, error) {
	if demo {
		user := wallet.User{
			ID:   firstNonEmpty(cfg.UserID, demoUserID),
			Name: firstNonEmpty(cfg.DisplayName(), demoUserName),
		}
		return wallet.Session{User: user, Store: wallet.NewMemoryStore(wallet.DemoCards(user)...)}, nil
	}

	if err := cfg.Validate(); err != nil {
		return wallet.Session{}, err
	}
	client, err := wallet.NewClient(cfg.BaseURL, cfg.Token, cfg.Timeout)
	if err != nil {
		return wallet.Session{}, fmt.Errorf("init card store client: %w", err)
	}
	user := wallet.User{ID: cfg.UserID, Name: cfg.DisplayName()}
	return wallet.Session{User: user, Store: client}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
