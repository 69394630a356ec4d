package config

import (
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/theme"
)

// Config is the root of the clammy configuration file.
type Config struct {
	Theme     theme.RawTheme  `toml:"theme"`
	Widgets   WidgetsConfig   `toml:"widgets"`
	Animation AnimationConfig `toml:"animation"`
	Watch     WatchConfig     `toml:"watch"`
}

// WidgetsConfig selects which widgets render and in what order, plus their
// per-widget options.
type WidgetsConfig struct {
	// Enabled is the ordered widget list, left to right.
	Enabled []string `toml:"enabled"`

	Clock      ClockConfig      `toml:"clock"`
	Battery    BatteryConfig    `toml:"battery"`
	Volume     VolumeConfig     `toml:"volume"`
	SysMetrics SysMetricsConfig `toml:"sysmetrics"`
}

// ClockConfig controls the clock widget.
type ClockConfig struct {
	// Format is a Go time layout string.
	Format   string   `toml:"format"`
	Interval Duration `toml:"interval"`
}

// BatteryConfig controls the battery poll cadence. The value changes slowly
// and querying is relatively expensive, so the default is coarse.
type BatteryConfig struct {
	Interval Duration `toml:"interval"`
}

// VolumeConfig controls the volume widget.
type VolumeConfig struct {
	Interval Duration `toml:"interval"`
	// Sink is the wpctl node to query.
	Sink string `toml:"sink"`
}

// SysMetricsConfig controls the optional CPU/memory widget.
type SysMetricsConfig struct {
	Interval Duration `toml:"interval"`
}

// AnimationConfig tunes the widget transition animations.
type AnimationConfig struct {
	Duration Duration `toml:"duration"`
	Easing   string   `toml:"easing"`
}

// WatchConfig controls hot reload.
type WatchConfig struct {
	// Debounce coalesces bursts of file change notifications into one
	// reload attempt; clamped to [100ms, 300ms].
	Debounce Duration `toml:"debounce"`

	// PaletteFile points at an externally generated color file (e.g.
	// Matugen output) applied as an overlay over [theme].
	PaletteFile string `toml:"palette_file"`
}

// Default returns the built-in configuration: the tokyo-night palette and the
// standard widget row.
func Default() *Config {
	return &Config{
		Widgets: WidgetsConfig{
			Enabled: []string{
				string(theme.WidgetWorkspaces),
				string(theme.WidgetWindowTitle),
				string(theme.WidgetVolume),
				string(theme.WidgetBattery),
				string(theme.WidgetClock),
			},
			Clock: ClockConfig{
				Format:   "15:04:05",
				Interval: Duration{1 * time.Second},
			},
			Battery: BatteryConfig{
				Interval: Duration{30 * time.Second},
			},
			Volume: VolumeConfig{
				Interval: Duration{2 * time.Second},
				Sink:     "@DEFAULT_AUDIO_SINK@",
			},
			SysMetrics: SysMetricsConfig{
				Interval: Duration{5 * time.Second},
			},
		},
		Animation: AnimationConfig{
			Duration: Duration{200 * time.Millisecond},
			Easing:   theme.EasingEaseOutQuad,
		},
		Watch: WatchConfig{
			Debounce: Duration{200 * time.Millisecond},
		},
	}
}

// Validate checks cross-field constraints the decoder cannot express.
func (c *Config) Validate() error {
	seen := map[string]bool{}
	for _, name := range c.Widgets.Enabled {
		if !theme.KnownWidget(theme.WidgetKind(name)) {
			return fmt.Errorf("config: unknown widget %q", name)
		}
		if seen[name] {
			return fmt.Errorf("config: widget %q listed twice", name)
		}
		seen[name] = true
	}
	if c.Widgets.Clock.Format == "" {
		return fmt.Errorf("config: clock format must not be empty")
	}
	if c.Animation.Easing != "" && !theme.KnownEasing(c.Animation.Easing) {
		return fmt.Errorf("config: unknown easing %q", c.Animation.Easing)
	}
	return nil
}

// DebounceWindow returns the configured debounce clamped to the supported
// range.
func (c *Config) DebounceWindow() time.Duration {
	d := c.Watch.Debounce.Duration
	switch {
	case d < 100*time.Millisecond:
		return 100 * time.Millisecond
	case d > 300*time.Millisecond:
		return 300 * time.Millisecond
	}
	return d
}

// Snapshot resolves the configuration into an immutable theme snapshot. It
// validates everything; on error the caller keeps its previous snapshot.
func (c *Config) Snapshot() (theme.Snapshot, error) {
	if err := c.Validate(); err != nil {
		return theme.Snapshot{}, err
	}
	t, err := theme.Resolve(c.Theme)
	if err != nil {
		return theme.Snapshot{}, err
	}
	widgets := make([]theme.WidgetSpec, 0, len(c.Widgets.Enabled))
	for _, name := range c.Widgets.Enabled {
		spec := theme.WidgetSpec{Kind: theme.WidgetKind(name)}
		if spec.Kind == theme.WidgetClock {
			spec.ClockFormat = c.Widgets.Clock.Format
		}
		widgets = append(widgets, spec)
	}
	anim := theme.AnimationSpec{
		Duration: c.Animation.Duration.Duration,
		Easing:   c.Animation.Easing,
	}
	if anim.Easing == "" {
		anim.Easing = theme.EasingEaseOutQuad
	}
	if anim.Duration <= 0 {
		anim.Duration = 200 * time.Millisecond
	}
	return theme.Snapshot{Theme: t, Widgets: widgets, Animation: anim}, nil
}
