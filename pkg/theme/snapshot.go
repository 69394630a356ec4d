package theme

import (
	"sync/atomic"
	"time"
)

// WidgetKind identifies one of the closed set of bar widgets.
type WidgetKind string

const (
	WidgetWorkspaces  WidgetKind = "workspaces"
	WidgetWindowTitle WidgetKind = "window_title"
	WidgetVolume      WidgetKind = "volume"
	WidgetBattery     WidgetKind = "battery"
	WidgetClock       WidgetKind = "clock"
	WidgetSysMetrics  WidgetKind = "sysmetrics"
)

// KnownWidget reports whether k names a supported widget.
func KnownWidget(k WidgetKind) bool {
	switch k {
	case WidgetWorkspaces, WidgetWindowTitle, WidgetVolume, WidgetBattery,
		WidgetClock, WidgetSysMetrics:
		return true
	}
	return false
}

// WidgetSpec describes one enabled widget and its resolved options.
type WidgetSpec struct {
	Kind WidgetKind

	// ClockFormat is the Go time layout for the clock widget; empty for
	// other kinds.
	ClockFormat string
}

// Easing names recognised by the animation engine. The engine maps them to
// curve functions; anything else falls back to EasingEaseOutQuad.
const (
	EasingEaseOutQuad  = "ease-out-quad"
	EasingEaseOutCubic = "ease-out-cubic"
	EasingLinear       = "linear"
)

// KnownEasing reports whether name is a recognised easing curve.
func KnownEasing(name string) bool {
	switch name {
	case EasingEaseOutQuad, EasingEaseOutCubic, EasingLinear:
		return true
	}
	return false
}

// AnimationSpec holds the transition parameters shared by all animatable
// widgets.
type AnimationSpec struct {
	Duration time.Duration
	Easing   string
}

// Snapshot pairs a Theme with the widget layout produced by one successful
// configuration parse. Theme and layout always change together; readers hold
// a Snapshot only for the duration of one frame build.
type Snapshot struct {
	Theme     Theme
	Widgets   []WidgetSpec
	Animation AnimationSpec

	// Generation is assigned by Store.Swap and increases with every swap.
	Generation uint64
}

// Widget returns the spec for kind, if enabled.
func (s *Snapshot) Widget(k WidgetKind) (WidgetSpec, bool) {
	for _, w := range s.Widgets {
		if w.Kind == k {
			return w, true
		}
	}
	return WidgetSpec{}, false
}

// Enabled reports whether the widget kind is part of the layout.
func (s *Snapshot) Enabled(k WidgetKind) bool {
	_, ok := s.Widget(k)
	return ok
}

// Store holds the currently active Snapshot. Current never blocks and Swap
// replaces the visible snapshot in a single atomic step; readers never
// observe a partially updated snapshot. Only validated snapshots reach Swap.
type Store struct {
	cur atomic.Pointer[Snapshot]
	gen atomic.Uint64
}

// NewStore creates a store with initial as the active snapshot.
func NewStore(initial Snapshot) *Store {
	s := &Store{}
	s.Swap(initial)
	return s
}

// Current returns the latest successfully validated snapshot.
func (s *Store) Current() *Snapshot {
	return s.cur.Load()
}

// Swap installs snap as the active snapshot and returns its generation.
func (s *Store) Swap(snap Snapshot) uint64 {
	snap.Generation = s.gen.Add(1)
	s.cur.Store(&snap)
	return snap.Generation
}
