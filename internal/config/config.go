package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/cardwallet/internal/symbol"
)

// Config holds everything cardwallet reads from config.toml.
type Config struct {
	BaseURL        string
	Token          string
	UserID         string
	UserName       string
	PollInterval   time.Duration
	Timeout        time.Duration
	LogLevel       string
	LogFile        string
	CardConfigPath string
	Render         symbol.Options
}

// TokenEnvVar overrides the token from the config file.
const TokenEnvVar = "CARDWALLET_TOKEN"

const (
	defaultConfigPath     = "~/.config/cardwallet/config.toml"
	defaultBaseURL        = "http://homeassistant.local:8123"
	defaultLogFile        = "~/.local/state/cardwallet/cardwallet.log"
	defaultCardConfigPath = "~/.config/cardwallet/card.yaml"
	defaultPollSeconds    = 30
	defaultTimeoutSeconds = 10
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:        defaultBaseURL,
		PollInterval:   defaultPollSeconds * time.Second,
		Timeout:        defaultTimeoutSeconds * time.Second,
		LogFile:        mustExpand(defaultLogFile),
		CardConfigPath: mustExpand(defaultCardConfigPath),
		Render:         symbol.ExportOptions(),
	}
}

type rawConfig struct {
	BaseURL        string `toml:"base_url"`
	Token          string `toml:"token"`
	UserID         string `toml:"user_id"`
	UserName       string `toml:"user_name"`
	PollSeconds    int    `toml:"poll_seconds"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	LogLevel       string `toml:"log_level"`
	LogFile        string `toml:"log_file"`
	CardConfig     string `toml:"card_config"`
	Render         struct {
		QRSize    int `toml:"qr_size"`
		QRMargin  int `toml:"qr_margin"`
		BarWidth  int `toml:"bar_width"`
		BarHeight int `toml:"bar_height"`
	} `toml:"render"`
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.Token = strings.TrimSpace(raw.Token)
	cfg.UserID = strings.TrimSpace(raw.UserID)
	cfg.UserName = strings.TrimSpace(raw.UserName)
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.CardConfig); v != "" {
		cfg.CardConfigPath = mustExpand(v)
	}
	if raw.Render.QRSize > 0 {
		cfg.Render.QRSize = raw.Render.QRSize
	}
	if raw.Render.QRMargin > 0 {
		cfg.Render.QRMargin = raw.Render.QRMargin
	}
	if raw.Render.BarWidth > 0 {
		cfg.Render.BarWidth = raw.Render.BarWidth
	}
	if raw.Render.BarHeight > 0 {
		cfg.Render.BarHeight = raw.Render.BarHeight
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if token := strings.TrimSpace(os.Getenv(TokenEnvVar)); token != "" {
		cfg.Token = token
	}
}

// Validate reports the fields a live session needs.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.UserID) == "" {
		missing = append(missing, "user_id")
	}
	if strings.TrimSpace(c.Token) == "" {
		missing = append(missing, "token (or "+TokenEnvVar+")")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// DisplayName returns the user's name, falling back to the id.
func (c Config) DisplayName() string {
	if c.UserName != "" {
		return c.UserName
	}
	return c.UserID
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
