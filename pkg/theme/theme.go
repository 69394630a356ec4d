// Package theme holds the resolved visual parameters for the bar: the color
// palette, font, and spacing values, paired with the widget layout in a
// Snapshot. A Theme is immutable once constructed; a configuration edit
// produces a wholly new Theme via Resolve, never a field mutation. The active
// Snapshot lives in a Store and is replaced atomically.
package theme

import (
	"fmt"
	"regexp"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with an alpha component in [0,1]. The zero value is
// opaque black with alpha 0 and only appears in unresolved themes.
type Color struct {
	colorful.Color
	Alpha float64
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ParseColor parses a strict "#RRGGBB" hex string into an opaque Color.
func ParseColor(hex string) (Color, error) {
	if !hexColorRegex.MatchString(hex) {
		return Color{}, fmt.Errorf("theme: invalid hex color %q (expected #RRGGBB)", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("theme: parse color %q: %w", hex, err)
	}
	return Color{Color: c, Alpha: 1}, nil
}

// WithAlpha returns a copy of c with the given alpha.
func (c Color) WithAlpha(a float64) Color {
	c.Alpha = a
	return c
}

// Hex returns the "#rrggbb" form of c. Alpha is carried separately.
func (c Color) Hex() string {
	return c.Color.Hex()
}

// Blend mixes c toward other in RGB space by t in [0,1]. Alpha interpolates
// linearly.
func (c Color) Blend(other Color, t float64) Color {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return other
	}
	return Color{
		Color: c.Color.BlendRgb(other.Color, t),
		Alpha: c.Alpha + (other.Alpha-c.Alpha)*t,
	}
}

// Theme is the complete resolved styling for the bar.
type Theme struct {
	Name string

	// Font family and size in pixels.
	Font     string
	FontSize int

	// Spacing between tray widgets and horizontal padding inside each one,
	// in pixels.
	TrayWidgetSpacing int
	TrayWidgetPadding int

	// Core palette
	Background Color
	Text       Color
	Success    Color
	Danger     Color

	// Extended colors
	Accent  Color
	Accent2 Color
	Info    Color
	Surface Color
	Border  Color
	Muted   Color
	Hover   Color
}

// Validate checks the structural invariants a resolved theme must satisfy.
// Themes built by Resolve or the builtin registry always pass.
func Validate(t Theme) error {
	if t.FontSize <= 0 {
		return fmt.Errorf("theme: font_size must be positive, got %d", t.FontSize)
	}
	if t.TrayWidgetSpacing < 0 {
		return fmt.Errorf("theme: tray_widget_spacing must be non-negative, got %d", t.TrayWidgetSpacing)
	}
	if t.TrayWidgetPadding < 0 {
		return fmt.Errorf("theme: tray_widget_padding must be non-negative, got %d", t.TrayWidgetPadding)
	}
	alphas := map[string]float64{
		"background_alpha": t.Background.Alpha,
		"surface_alpha":    t.Surface.Alpha,
		"hover_alpha":      t.Hover.Alpha,
	}
	for field, a := range alphas {
		if a < 0 || a > 1 {
			return fmt.Errorf("theme: %s must be in [0,1], got %v", field, a)
		}
	}
	return nil
}
