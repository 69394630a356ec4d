// Package render draws frame states into a terminal bar.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
	"gitlab.com/tinyland/lab/clammy/pkg/theme"
)

// cellPx approximates one terminal cell in pixels, used to translate
// pixel spacing from the theme into cell counts.
const cellPx = 8

func cells(px int) int {
	n := px / cellPx
	if n < 1 {
		n = 1
	}
	return n
}

// Bar renders one frame into a single line of the given width.
func Bar(f engine.FrameState, width int) string {
	if width <= 0 {
		return ""
	}
	th := f.Theme
	base := lipgloss.NewStyle().
		Background(lipgloss.Color(th.Background.Hex())).
		Foreground(lipgloss.Color(th.Text.Hex()))

	left := workspacesView(f, th)
	right := trayView(f, th)

	remaining := width - lipgloss.Width(left) - lipgloss.Width(right)
	middle := titleView(f, th, remaining)

	return base.Render(left + middle + right)
}

// workspacesView draws one numbered cell per workspace. Colors blend
// from muted toward accent by proximity to the animated indicator, so
// the highlight slides between cells while an animation runs.
func workspacesView(f engine.FrameState, th theme.Theme) string {
	if f.Workspaces == nil || len(f.Workspaces.IDs) == 0 {
		return ""
	}
	ws := f.Workspaces
	pad := strings.Repeat(" ", cells(th.TrayWidgetSpacing)/2+1)

	var b strings.Builder
	for i, id := range ws.IDs {
		d := math.Abs(float64(i) - ws.IndicatorOffset)
		if d > 1 {
			d = 1
		}
		c := th.Muted.Blend(th.Accent, 1-d)
		style := lipgloss.NewStyle().
			Background(lipgloss.Color(th.Background.Hex())).
			Foreground(lipgloss.Color(c.Hex()))
		if id == ws.ActiveID {
			style = style.Bold(true)
		}
		b.WriteString(style.Render(pad + strconv.Itoa(id) + pad))
	}
	return b.String()
}

func titleView(f engine.FrameState, th theme.Theme, width int) string {
	if width <= 0 {
		return ""
	}
	text := ""
	if f.WindowTitle != nil {
		text = f.WindowTitle.Title
	}
	if lipgloss.Width(text) > width {
		text = lipgloss.NewStyle().MaxWidth(width).Render(text)
	}
	styled := lipgloss.NewStyle().
		Background(lipgloss.Color(th.Background.Hex())).
		Foreground(lipgloss.Color(th.Text.Hex())).
		Render(text)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, styled,
		lipgloss.WithWhitespaceBackground(lipgloss.Color(th.Background.Hex())))
}

func trayView(f engine.FrameState, th theme.Theme) string {
	gap := strings.Repeat(" ", cells(th.TrayWidgetSpacing))
	pad := strings.Repeat(" ", cells(th.TrayWidgetPadding))

	var segs []string
	if f.Volume != nil && f.Volume.Known {
		segs = append(segs, volumeSegment(*f.Volume, th))
	}
	if f.SysMetrics != nil && f.SysMetrics.Known {
		segs = append(segs, sysMetricsSegment(*f.SysMetrics, th))
	}
	if f.Battery != nil && f.Battery.Known && f.Battery.Present {
		segs = append(segs, batterySegment(*f.Battery, th))
	}
	if f.Clock != nil {
		segs = append(segs, segment(f.Clock.Text, th.Text, th))
	}
	if len(segs) == 0 {
		return ""
	}
	return strings.Join(segs, gap) + pad
}

func segment(text string, fg theme.Color, th theme.Theme) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(th.Surface.Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Padding(0, 1).
		Render(text)
}

func volumeSegment(v engine.VolumeFrame, th theme.Theme) string {
	fg := th.Info
	if v.Muted {
		fg = th.Muted
	}
	return segment(fmt.Sprintf("%s %d%%", volumeIcon(v.Percentage, v.Muted), v.Percentage), fg, th)
}

func batterySegment(b engine.BatteryFrame, th theme.Theme) string {
	fg := th.Success
	switch {
	case b.Charging:
		fg = th.Accent
	case b.Percentage <= 20:
		fg = th.Danger
	case b.Percentage <= 40:
		fg = th.Accent2
	}
	return segment(fmt.Sprintf("%s %d%%", batteryIcon(b.Percentage, b.Charging), b.Percentage), fg, th)
}

func sysMetricsSegment(s engine.SysMetricsFrame, th theme.Theme) string {
	parts := make([]string, 0, 2)
	if s.CPUPercent >= 0 {
		parts = append(parts, fmt.Sprintf("cpu %d%%", s.CPUPercent))
	}
	if s.MemPercent >= 0 {
		parts = append(parts, fmt.Sprintf("mem %d%%", s.MemPercent))
	}
	return segment(strings.Join(parts, " "), th.Info, th)
}

func batteryIcon(pct int, charging bool) string {
	if charging {
		return "󰂄"
	}
	switch {
	case pct >= 90:
		return "󰁹"
	case pct >= 70:
		return "󰂀"
	case pct >= 50:
		return "󰁾"
	case pct >= 30:
		return "󰁼"
	case pct >= 10:
		return "󰁺"
	default:
		return "󰂎"
	}
}

func volumeIcon(pct int, muted bool) string {
	if muted {
		return "󰖁"
	}
	switch {
	case pct >= 66:
		return "󰕾"
	case pct >= 33:
		return "󰖀"
	case pct > 0:
		return "󰕿"
	default:
		return "󰝟"
	}
}
