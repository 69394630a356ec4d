package theme

import (
	"sort"
	"strings"
	"sync"
)

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	for _, t := range []Theme{
		tokyoNight(),
		gruvbox(),
		nord(),
		dracula(),
	} {
		register(t)
	}
}

func register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}

// DefaultName is the palette used when none is configured.
const DefaultName = "tokyo-night"

// Default returns the built-in default palette.
func Default() Theme {
	return Palette(DefaultName)
}

// Palette returns a named builtin palette, falling back to the default if
// the name is unknown. Use Known to distinguish the fallback case.
func Palette(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry[DefaultName]
}

// Known reports whether a builtin palette with the given name exists.
func Known(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[strings.ToLower(name)]
	return ok
}

// Names returns all builtin palette names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mustHex parses a builtin palette literal; a bad literal is a programming
// error.
func mustHex(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func base() Theme {
	return Theme{
		Font:              "monospace",
		FontSize:          16,
		TrayWidgetSpacing: 8,
		TrayWidgetPadding: 8,
	}
}

func tokyoNight() Theme {
	t := base()
	t.Name = "tokyo-night"
	t.Background = mustHex("#1a1b26").WithAlpha(0.85)
	t.Text = mustHex("#c0caf5")
	t.Success = mustHex("#9ece6a")
	t.Danger = mustHex("#f7768e")
	t.Accent = mustHex("#7aa2f7")
	t.Accent2 = mustHex("#bb9af7")
	t.Info = mustHex("#7dcfff")
	t.Surface = mustHex("#24283b").WithAlpha(0.94)
	t.Border = mustHex("#414868")
	t.Muted = mustHex("#565f89")
	t.Hover = mustHex("#414868").WithAlpha(0.5)
	return t
}

func gruvbox() Theme {
	t := base()
	t.Name = "gruvbox"
	t.Background = mustHex("#282828").WithAlpha(0.85)
	t.Text = mustHex("#ebdbb2")
	t.Success = mustHex("#b8bb26")
	t.Danger = mustHex("#fb4934")
	t.Accent = mustHex("#fe8019")
	t.Accent2 = mustHex("#d3869b")
	t.Info = mustHex("#83a598")
	t.Surface = mustHex("#3c3836").WithAlpha(0.94)
	t.Border = mustHex("#504945")
	t.Muted = mustHex("#928374")
	t.Hover = mustHex("#504945").WithAlpha(0.5)
	return t
}

func nord() Theme {
	t := base()
	t.Name = "nord"
	t.Background = mustHex("#2e3440").WithAlpha(0.85)
	t.Text = mustHex("#d8dee9")
	t.Success = mustHex("#a3be8c")
	t.Danger = mustHex("#bf616a")
	t.Accent = mustHex("#88c0d0")
	t.Accent2 = mustHex("#b48ead")
	t.Info = mustHex("#81a1c1")
	t.Surface = mustHex("#3b4252").WithAlpha(0.94)
	t.Border = mustHex("#434c5e")
	t.Muted = mustHex("#4c566a")
	t.Hover = mustHex("#434c5e").WithAlpha(0.5)
	return t
}

func dracula() Theme {
	t := base()
	t.Name = "dracula"
	t.Background = mustHex("#282a36").WithAlpha(0.85)
	t.Text = mustHex("#f8f8f2")
	t.Success = mustHex("#50fa7b")
	t.Danger = mustHex("#ff5555")
	t.Accent = mustHex("#bd93f9")
	t.Accent2 = mustHex("#ff79c6")
	t.Info = mustHex("#8be9fd")
	t.Surface = mustHex("#44475a").WithAlpha(0.94)
	t.Border = mustHex("#6272a4")
	t.Muted = mustHex("#6272a4")
	t.Hover = mustHex("#44475a").WithAlpha(0.5)
	return t
}
