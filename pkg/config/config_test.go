package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/theme"
)

// --- defaults ---

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	snap, err := cfg.Snapshot()
	if err != nil {
		t.Fatalf("default snapshot: %v", err)
	}
	if snap.Theme.Name != theme.DefaultName {
		t.Errorf("palette = %q, want %q", snap.Theme.Name, theme.DefaultName)
	}
	if len(snap.Widgets) != 5 {
		t.Errorf("widget count = %d, want 5", len(snap.Widgets))
	}
	if snap.Widgets[0].Kind != theme.WidgetWorkspaces {
		t.Errorf("first widget = %q, want workspaces", snap.Widgets[0].Kind)
	}
	if snap.Animation.Easing != theme.EasingEaseOutQuad {
		t.Errorf("easing = %q, want ease-out-quad", snap.Animation.Easing)
	}
	if snap.Animation.Duration != 200*time.Millisecond {
		t.Errorf("duration = %v, want 200ms", snap.Animation.Duration)
	}
}

func TestDefaultTOML_RoundTrips(t *testing.T) {
	data, err := DefaultTOML()
	if err != nil {
		t.Fatalf("DefaultTOML: %v", err)
	}
	cfg, err := LoadFromBytes(data)
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if _, err := cfg.Snapshot(); err != nil {
		t.Errorf("snapshot of serialized defaults: %v", err)
	}
}

// --- decoding ---

func TestLoadFromBytes_Overrides(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
[theme]
font_size = 20
background = "#000000"

[widgets]
enabled = ["clock"]

[widgets.clock]
format = "15:04"
interval = "5s"
`))
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	snap, err := cfg.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Theme.FontSize != 20 {
		t.Errorf("font size = %d, want 20", snap.Theme.FontSize)
	}
	if snap.Theme.Background.Hex() != "#000000" {
		t.Errorf("background = %s, want #000000", snap.Theme.Background.Hex())
	}
	if len(snap.Widgets) != 1 || snap.Widgets[0].Kind != theme.WidgetClock {
		t.Fatalf("widgets = %+v, want single clock", snap.Widgets)
	}
	if snap.Widgets[0].ClockFormat != "15:04" {
		t.Errorf("clock format = %q, want 15:04", snap.Widgets[0].ClockFormat)
	}
	if cfg.Widgets.Clock.Interval.Duration != 5*time.Second {
		t.Errorf("clock interval = %v, want 5s", cfg.Widgets.Clock.Interval.Duration)
	}
	// Untouched settings keep their defaults.
	if cfg.Widgets.Battery.Interval.Duration != 30*time.Second {
		t.Errorf("battery interval = %v, want default 30s", cfg.Widgets.Battery.Interval.Duration)
	}
}

func TestLoadFromBytes_Unparseable(t *testing.T) {
	if _, err := LoadFromBytes([]byte("[theme\nfont =")); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromBytes_UnknownKeysIgnored(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("some_future_key = true\n"))
	if err != nil {
		t.Fatalf("unknown key should not fail: %v", err)
	}
	if _, err := cfg.Snapshot(); err != nil {
		t.Errorf("Snapshot: %v", err)
	}
}

func TestDuration_RejectsNegative(t *testing.T) {
	if _, err := LoadFromBytes([]byte("[watch]\ndebounce = \"-5s\"\n")); err == nil {
		t.Error("expected error for negative duration")
	}
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("")); err != nil || d.Duration != 0 {
		t.Errorf("empty text = %v, %v; want zero duration", d.Duration, err)
	}
	if err := d.UnmarshalText([]byte("250ms")); err != nil || d.Duration != 250*time.Millisecond {
		t.Errorf("250ms = %v, %v", d.Duration, err)
	}
	if err := d.UnmarshalText([]byte("later")); err == nil {
		t.Error("expected error for malformed duration")
	}
	out, err := Duration{2 * time.Second}.MarshalText()
	if err != nil || string(out) != "2s" {
		t.Errorf("MarshalText = %q, %v; want 2s", out, err)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if len(cfg.Widgets.Enabled) == 0 {
		t.Error("expected default widgets")
	}
}

// --- validation ---

func TestValidate_UnknownWidget(t *testing.T) {
	cfg := Default()
	cfg.Widgets.Enabled = append(cfg.Widgets.Enabled, "weather")
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown widget")
	}
}

func TestValidate_DuplicateWidget(t *testing.T) {
	cfg := Default()
	cfg.Widgets.Enabled = append(cfg.Widgets.Enabled, "clock")
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for duplicate widget")
	}
}

func TestValidate_UnknownEasing(t *testing.T) {
	cfg := Default()
	cfg.Animation.Easing = "bounce"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown easing")
	}
}

func TestDebounceWindow_Clamped(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, 100 * time.Millisecond},
		{50 * time.Millisecond, 100 * time.Millisecond},
		{200 * time.Millisecond, 200 * time.Millisecond},
		{time.Second, 300 * time.Millisecond},
	}
	for _, tt := range tests {
		cfg := Default()
		cfg.Watch.Debounce = Duration{tt.in}
		if got := cfg.DebounceWindow(); got != tt.want {
			t.Errorf("DebounceWindow(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// --- palette overlay ---

func TestApplyPaletteFile_ColorsWin(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "colors.toml")
	overlay := "[theme]\naccent = \"#ff0000\"\n"
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromBytes([]byte("[theme]\naccent = \"#00ff00\"\ntext = \"#abcdef\"\n"))
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	if err := cfg.ApplyPaletteFile(path); err != nil {
		t.Fatalf("ApplyPaletteFile: %v", err)
	}
	snap, err := cfg.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Theme.Accent.Hex() != "#ff0000" {
		t.Errorf("accent = %s, want overlay #ff0000", snap.Theme.Accent.Hex())
	}
	if snap.Theme.Text.Hex() != "#abcdef" {
		t.Errorf("text = %s, want config value #abcdef", snap.Theme.Text.Hex())
	}
}

func TestApplyPaletteFile_Missing(t *testing.T) {
	cfg := Default()
	if err := cfg.ApplyPaletteFile(filepath.Join(t.TempDir(), "gone.toml")); err == nil {
		t.Error("expected error for missing palette file")
	}
}

// --- env overrides ---

func TestEnvOverride_Palette(t *testing.T) {
	t.Setenv("CLAMMY_PALETTE", "nord")
	cfg, err := LoadFromBytes([]byte(""))
	if err != nil {
		t.Fatalf("LoadFromBytes: %v", err)
	}
	snap, err := cfg.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Theme.Name != "nord" {
		t.Errorf("palette = %q, want nord", snap.Theme.Name)
	}
}

// --- default file creation ---

func TestEnsureDefault_WritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := EnsureDefault(path); err != nil {
		t.Fatalf("EnsureDefault: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("default config file is empty")
	}

	// A second call must not clobber user edits.
	if err := os.WriteFile(path, []byte("# edited\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureDefault(path); err != nil {
		t.Fatalf("EnsureDefault second call: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "# edited\n" {
		t.Error("EnsureDefault overwrote an existing file")
	}
}
