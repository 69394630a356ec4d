// Package engine contains the widget state reconciler: the single consumer
// that drains the ordered event stream fed by the pollers and the config
// watcher, merges each event into standing widget state, advances
// animations, and emits render-ready frames. All widget state mutation
// happens on the reconciler goroutine, in event-arrival order, so no locks
// guard it.
package engine

import "time"

// Event is the closed union of facts flowing into the reconciler. Each
// variant carries only the minimal new fact; the reconciler merges it into
// standing state.
type Event interface{ isEvent() }

// BatteryEvent reports battery charge and charging state. Present is false
// on machines without a battery.
type BatteryEvent struct {
	Percentage int
	Charging   bool
	Present    bool
}

// WorkspaceEvent reports the active workspace and the full ordered id list.
type WorkspaceEvent struct {
	ActiveID int
	IDs      []int
}

// WindowTitleEvent reports the focused window title. HasWindow is false when
// focus was cleared.
type WindowTitleEvent struct {
	Title     string
	HasWindow bool
}

// ClockTick carries the wall-clock time at the display granularity.
type ClockTick struct {
	Time time.Time
}

// VolumeEvent reports default-sink volume changes.
type VolumeEvent struct {
	Percentage int
	Muted      bool
}

// SysMetricsEvent reports CPU and memory utilisation changes.
type SysMetricsEvent struct {
	CPUPercent int
	MemPercent int
}

// SnapshotApplied signals that the theme store swapped in a new snapshot.
// The swap itself happens before this event is enqueued, so every event
// processed after it observes the new snapshot.
type SnapshotApplied struct {
	Generation uint64
}

// DiagnosticEvent surfaces a recoverable failure from a producer. The
// reconciler logs it and keeps rendering last-good state; it never affects
// sibling sources.
type DiagnosticEvent struct {
	Source string
	Err    error
}

func (BatteryEvent) isEvent()     {}
func (WorkspaceEvent) isEvent()   {}
func (WindowTitleEvent) isEvent() {}
func (ClockTick) isEvent()        {}
func (VolumeEvent) isEvent()      {}
func (SysMetricsEvent) isEvent()  {}
func (SnapshotApplied) isEvent()  {}
func (DiagnosticEvent) isEvent()  {}
