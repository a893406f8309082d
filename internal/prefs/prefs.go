// Package prefs remembers how the wallet was left: the colour theme and the
// card tab that was showing. The file sits next to config.toml.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/cardwallet/internal/config"
)

// Prefs holds what the UI restores on startup.
type Prefs struct {
	Theme   string `toml:"theme"`
	LastTab string `toml:"last_tab,omitempty"`
}

// Values stored in last_tab.
const (
	TabOwn    = "own"
	TabOthers = "others"
)

const (
	defaultPrefsPath = "~/.config/cardwallet/prefs.toml"
	defaultTheme     = "Nightfox"
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences of a first run.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme, LastTab: TabOwn}
}

// Load reads preferences from path (empty means DefaultPath). A missing file
// is not an error. An unreadable or malformed file returns the defaults along
// with the error; the wallet still starts.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("read prefs: %w", err)
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	p.normalize()
	return p, nil
}

func (p *Prefs) normalize() {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	if p.LastTab != TabOthers {
		p.LastTab = TabOwn
	}
}

// Save replaces the preferences file at path, creating its directory. The
// new contents are written to a sibling temp file and renamed into place.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}

	p.normalize()
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*.toml")
	if err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), resolved); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	resolved, err := config.ExpandPath(path)
	if err != nil {
		return "", fmt.Errorf("prefs path: %w", err)
	}
	return resolved, nil
}
