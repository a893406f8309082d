// Package cardconfig loads the host-supplied card configuration.
//
// The configuration is opaque to the widget: it is read, kept, and handed
// back unchanged. A title, if present, is used for the header.
package cardconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is an opaque YAML mapping.
type Config struct {
	values map[string]any
}

// New wraps values. The map is copied.
func New(values map[string]any) Config {
	cfg := Config{values: make(map[string]any, len(values))}
	for k, v := range values {
		cfg.values[k] = v
	}
	return cfg
}

// Load reads the YAML mapping at path. A missing file yields an empty config.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read card config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML mapping. Empty documents yield an empty config.
func Parse(data []byte) (Config, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return Config{}, fmt.Errorf("parse card config: %w", err)
	}
	return Config{values: values}, nil
}

// Get returns the raw value stored under key.
func (c Config) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Title returns the "title" entry when it is a non-empty string.
func (c Config) Title() string {
	if v, ok := c.values["title"].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

// Len returns the number of top-level keys.
func (c Config) Len() int {
	return len(c.values)
}

// Marshal encodes the config back to YAML.
func (c Config) Marshal() ([]byte, error) {
	if len(c.values) == 0 {
		return []byte("{}\n"), nil
	}
	return yaml.Marshal(c.values)
}
