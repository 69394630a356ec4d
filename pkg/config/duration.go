// Package config provides TOML-based configuration for clammy.
package config

import (
	"fmt"
	"time"
)

// Duration is a time.Duration that decodes from TOML duration strings such
// as "200ms", "2s", or "5m". Poll cadences and the debounce window are all
// expressed this way; an empty string decodes to zero, which callers treat
// as "use the built-in default".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		d.Duration = 0
		return nil
	}
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", text, err)
	}
	if v < 0 {
		return fmt.Errorf("config: duration %q must not be negative", text)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
