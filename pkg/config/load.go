package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"gitlab.com/tinyland/lab/clammy/pkg/theme"
)

// Path returns the configuration file path:
// $CLAMMY_CONFIG, or $XDG_CONFIG_HOME/clammy/config.toml, falling back to
// ~/.config/clammy/config.toml.
func Path() string {
	if v := os.Getenv("CLAMMY_CONFIG"); v != "" {
		return v
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(xdgConfigHome(home), "clammy", "config.toml")
}

// LoadFromFile reads configuration from path. A missing file yields the
// defaults; a present but unparseable file is an error so callers can keep
// last-good state.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes decodes TOML over the defaults. Unknown keys are ignored for
// forward compatibility.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// ApplyPaletteFile overlays the [theme] table of an externally generated
// palette file (e.g. Matugen output) onto the configuration. Colors from the
// overlay take precedence; everything else is untouched.
func (c *Config) ApplyPaletteFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read palette file %s: %w", path, err)
	}
	var overlay struct {
		Theme theme.RawTheme `toml:"theme"`
	}
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&overlay); err != nil {
		return fmt.Errorf("config: parse palette file %s: %w", path, err)
	}
	c.Theme = theme.Merge(c.Theme, overlay.Theme)
	return nil
}

// EnsureDefault writes a commented-out, fully keyed default configuration to
// path when no file exists yet, so users have something to edit. The write is
// atomic: temp file in the same directory, then rename.
func EnsureDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := DefaultTOML()
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("config: rename into place: %w", err)
	}
	return nil
}

// DefaultTOML serializes the default configuration with the full [theme] key
// set resolved from the default palette.
func DefaultTOML() ([]byte, error) {
	cfg := Default()
	cfg.Theme = theme.Encode(theme.Default())
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("config: encode defaults: %w", err)
	}
	return buf.Bytes(), nil
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLAMMY_PALETTE"); v != "" {
		cfg.Theme.Palette = v
	}
	if v := os.Getenv("CLAMMY_PALETTE_FILE"); v != "" {
		cfg.Watch.PaletteFile = v
	}
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}
