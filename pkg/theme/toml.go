package theme

import (
	"fmt"
)

// RawTheme is the TOML wire form of the [theme] table. String fields left
// empty and nil pointers mean "not set, use the palette default"; unknown
// keys in the file are ignored by the decoder for forward compatibility.
type RawTheme struct {
	Palette string `toml:"palette,omitempty"`

	Font              string `toml:"font,omitempty"`
	FontSize          int    `toml:"font_size,omitempty"`
	TrayWidgetSpacing *int   `toml:"tray_widget_spacing,omitempty"`
	TrayWidgetPadding *int   `toml:"tray_widget_padding,omitempty"`

	Background      string   `toml:"background,omitempty"`
	BackgroundAlpha *float64 `toml:"background_alpha,omitempty"`
	Text            string   `toml:"text,omitempty"`
	Success         string   `toml:"success,omitempty"`
	Danger          string   `toml:"danger,omitempty"`
	Accent          string   `toml:"accent,omitempty"`
	Accent2         string   `toml:"accent2,omitempty"`
	Info            string   `toml:"info,omitempty"`
	Surface         string   `toml:"surface,omitempty"`
	SurfaceAlpha    *float64 `toml:"surface_alpha,omitempty"`
	Border          string   `toml:"border,omitempty"`
	Muted           string   `toml:"muted,omitempty"`
	Hover           string   `toml:"hover,omitempty"`
	HoverAlpha      *float64 `toml:"hover_alpha,omitempty"`
}

// Merge overlays non-empty fields of overlay onto raw and returns the result.
// This is how a palette-sync file's colors take precedence over the main
// configuration.
func Merge(raw, overlay RawTheme) RawTheme {
	if overlay.Palette != "" {
		raw.Palette = overlay.Palette
	}
	if overlay.Font != "" {
		raw.Font = overlay.Font
	}
	if overlay.FontSize != 0 {
		raw.FontSize = overlay.FontSize
	}
	if overlay.TrayWidgetSpacing != nil {
		raw.TrayWidgetSpacing = overlay.TrayWidgetSpacing
	}
	if overlay.TrayWidgetPadding != nil {
		raw.TrayWidgetPadding = overlay.TrayWidgetPadding
	}
	colors := []struct {
		dst *string
		src string
	}{
		{&raw.Background, overlay.Background},
		{&raw.Text, overlay.Text},
		{&raw.Success, overlay.Success},
		{&raw.Danger, overlay.Danger},
		{&raw.Accent, overlay.Accent},
		{&raw.Accent2, overlay.Accent2},
		{&raw.Info, overlay.Info},
		{&raw.Surface, overlay.Surface},
		{&raw.Border, overlay.Border},
		{&raw.Muted, overlay.Muted},
		{&raw.Hover, overlay.Hover},
	}
	for _, c := range colors {
		if c.src != "" {
			*c.dst = c.src
		}
	}
	if overlay.BackgroundAlpha != nil {
		raw.BackgroundAlpha = overlay.BackgroundAlpha
	}
	if overlay.SurfaceAlpha != nil {
		raw.SurfaceAlpha = overlay.SurfaceAlpha
	}
	if overlay.HoverAlpha != nil {
		raw.HoverAlpha = overlay.HoverAlpha
	}
	return raw
}

// Resolve applies raw on top of the base palette it names (the default
// palette when unset) and validates the result. Resolve never partially
// applies: any invalid field fails the whole resolution and the caller keeps
// its previous theme.
func Resolve(raw RawTheme) (Theme, error) {
	if raw.Palette != "" && !Known(raw.Palette) {
		return Theme{}, fmt.Errorf("theme: unknown palette %q (available: %v)", raw.Palette, Names())
	}
	t := Palette(raw.Palette)

	if raw.Font != "" {
		t.Font = raw.Font
	}
	if raw.FontSize != 0 {
		t.FontSize = raw.FontSize
	}
	if raw.TrayWidgetSpacing != nil {
		t.TrayWidgetSpacing = *raw.TrayWidgetSpacing
	}
	if raw.TrayWidgetPadding != nil {
		t.TrayWidgetPadding = *raw.TrayWidgetPadding
	}

	// Colors keep the palette's alpha unless the matching alpha key is set.
	colors := []struct {
		name string
		dst  *Color
		src  string
	}{
		{"background", &t.Background, raw.Background},
		{"text", &t.Text, raw.Text},
		{"success", &t.Success, raw.Success},
		{"danger", &t.Danger, raw.Danger},
		{"accent", &t.Accent, raw.Accent},
		{"accent2", &t.Accent2, raw.Accent2},
		{"info", &t.Info, raw.Info},
		{"surface", &t.Surface, raw.Surface},
		{"border", &t.Border, raw.Border},
		{"muted", &t.Muted, raw.Muted},
		{"hover", &t.Hover, raw.Hover},
	}
	for _, c := range colors {
		if c.src == "" {
			continue
		}
		parsed, err := ParseColor(c.src)
		if err != nil {
			return Theme{}, fmt.Errorf("theme: key %q: %w", c.name, err)
		}
		*c.dst = parsed.WithAlpha(c.dst.Alpha)
	}

	if raw.BackgroundAlpha != nil {
		t.Background = t.Background.WithAlpha(*raw.BackgroundAlpha)
	}
	if raw.SurfaceAlpha != nil {
		t.Surface = t.Surface.WithAlpha(*raw.SurfaceAlpha)
	}
	if raw.HoverAlpha != nil {
		t.Hover = t.Hover.WithAlpha(*raw.HoverAlpha)
	}

	if err := Validate(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// Encode serializes a resolved theme back to the full wire key set. Decoding
// the result resolves to a semantically equivalent theme regardless of key
// order.
func Encode(t Theme) RawTheme {
	spacing := t.TrayWidgetSpacing
	padding := t.TrayWidgetPadding
	bgAlpha := t.Background.Alpha
	surfaceAlpha := t.Surface.Alpha
	hoverAlpha := t.Hover.Alpha
	return RawTheme{
		Font:              t.Font,
		FontSize:          t.FontSize,
		TrayWidgetSpacing: &spacing,
		TrayWidgetPadding: &padding,
		Background:        t.Background.Hex(),
		BackgroundAlpha:   &bgAlpha,
		Text:              t.Text.Hex(),
		Success:           t.Success.Hex(),
		Danger:            t.Danger.Hex(),
		Accent:            t.Accent.Hex(),
		Accent2:           t.Accent2.Hex(),
		Info:              t.Info.Hex(),
		Surface:           t.Surface.Hex(),
		SurfaceAlpha:      &surfaceAlpha,
		Border:            t.Border.Hex(),
		Muted:             t.Muted.Hex(),
		Hover:             t.Hover.Hex(),
		HoverAlpha:        &hoverAlpha,
	}
}
