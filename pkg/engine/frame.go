package engine

import (
	"slices"

	"gitlab.com/tinyland/lab/clammy/pkg/theme"
)

// FrameState is the fully resolved description of one displayed frame: the
// theme plus, for every enabled widget, its render-ready value. All fields
// derive from a single snapshot; a frame never mixes an old theme with new
// widget values or vice versa. Widget pointers are nil when the widget is
// not part of the layout.
type FrameState struct {
	Generation uint64
	Theme      theme.Theme

	// Animating is true while any transition runs; the surface should expect
	// a follow-up frame shortly.
	Animating bool

	Workspaces  *WorkspacesFrame
	WindowTitle *WindowTitleFrame
	Volume      *VolumeFrame
	Battery     *BatteryFrame
	SysMetrics  *SysMetricsFrame
	Clock       *ClockFrame
}

// WorkspacesFrame is the workspace indicator strip.
type WorkspacesFrame struct {
	IDs      []int
	ActiveID int

	// IndicatorOffset is the animated indicator position in workspace-index
	// space; equal to the active index while at rest.
	IndicatorOffset float64
}

// WindowTitleFrame is the focused window description; empty when no window
// has focus.
type WindowTitleFrame struct {
	Title string
}

// VolumeFrame is the default-sink volume. Known is false until the first
// successful poll (the widget renders a placeholder).
type VolumeFrame struct {
	Percentage int
	Muted      bool
	Known      bool
}

// BatteryFrame is the battery charge display. Present is false on machines
// without a battery; the widget renders nothing then.
type BatteryFrame struct {
	Percentage int
	Charging   bool
	Present    bool
	Known      bool
}

// SysMetricsFrame is the optional CPU/memory display.
type SysMetricsFrame struct {
	CPUPercent int
	MemPercent int
	Known      bool
}

// ClockFrame is the formatted wall-clock display.
type ClockFrame struct {
	Text string
}

// Equal reports whether two frames would render identically.
func (f *FrameState) Equal(o *FrameState) bool {
	if o == nil {
		return false
	}
	if f.Generation != o.Generation || f.Theme != o.Theme || f.Animating != o.Animating {
		return false
	}
	if !workspacesEqual(f.Workspaces, o.Workspaces) {
		return false
	}
	return ptrEqual(f.WindowTitle, o.WindowTitle) &&
		ptrEqual(f.Volume, o.Volume) &&
		ptrEqual(f.Battery, o.Battery) &&
		ptrEqual(f.SysMetrics, o.SysMetrics) &&
		ptrEqual(f.Clock, o.Clock)
}

func workspacesEqual(a, b *WorkspacesFrame) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return a.ActiveID == b.ActiveID &&
		a.IndicatorOffset == b.IndicatorOffset &&
		slices.Equal(a.IDs, b.IDs)
}

func ptrEqual[T comparable](a, b *T) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return *a == *b
}
