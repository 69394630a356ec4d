package engine

import (
	"context"
	"log/slog"
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/theme"
)

// Surface receives completed frames. The concrete implementation draws them;
// the reconciler only decides what state each widget renders this frame and
// when that state may change.
type Surface interface {
	Present(FrameState)
}

// NopSurface discards frames. Useful for headless runs and tests.
type NopSurface struct{}

// Present implements Surface.
func (NopSurface) Present(FrameState) {}

// defaultTickEvery is the render tick cadence while an animation runs
// (~60 Hz). While everything is Idle the reconciler only wakes on events.
const defaultTickEvery = 16 * time.Millisecond

// eventBuffer sizes the ordered stream. Producers are slow relative to the
// consumer; overflow drops the newest event with a warning rather than
// blocking a poller.
const eventBuffer = 128

// Reconciler is the single sequencer between event producers and the render
// surface.
type Reconciler struct {
	log     *slog.Logger
	store   *theme.Store
	surface Surface
	anim    *Scheduler
	events  chan Event

	tickEvery time.Duration

	// Standing widget state, touched only by Run's goroutine.
	battery struct {
		ev    BatteryEvent
		known bool
	}
	volume struct {
		ev    VolumeEvent
		known bool
	}
	sysmetrics struct {
		ev    SysMetricsEvent
		known bool
	}
	workspaces struct {
		ids      []int
		activeID int
		known    bool
		// rest is the indicator's resting position: the active index.
		rest float64
	}
	windowTitle string
	clock       struct {
		now   time.Time
		known bool
	}

	last *FrameState
}

// New builds a reconciler over the given store and surface.
func New(log *slog.Logger, store *theme.Store, surface Surface) *Reconciler {
	if log == nil {
		log = slog.Default()
	}
	return &Reconciler{
		log:       log,
		store:     store,
		surface:   surface,
		anim:      NewScheduler(),
		events:    make(chan Event, eventBuffer),
		tickEvery: defaultTickEvery,
	}
}

// Enqueue appends ev to the ordered stream. Safe for concurrent producers;
// the reconciler processes events in arrival order.
func (r *Reconciler) Enqueue(ev Event) {
	select {
	case r.events <- ev:
	default:
		r.log.Warn("event stream full, dropping event", "event", ev)
	}
}

// Run drains the stream until ctx is cancelled. It blocks; callers run it in
// its own goroutine. The surface receives at most one frame per wakeup, and
// only when the frame differs from the previous one or an animation is
// running.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.tickEvery)
	ticker.Stop()
	defer ticker.Stop()

	var tick <-chan time.Time
	armed := false

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.events:
			r.apply(ev, time.Now())
		case <-tick:
		}

		now := time.Now()
		frame := r.buildFrame(now)
		if r.anim.Active() || r.last == nil || !frame.Equal(r.last) {
			r.surface.Present(frame)
			r.last = &frame
		}

		if running := r.anim.Sweep(now); running && !armed {
			ticker.Reset(r.tickEvery)
			tick = ticker.C
			armed = true
		} else if !running && armed {
			ticker.Stop()
			tick = nil
			armed = false
		}
	}
}

// apply merges one event into standing state.
func (r *Reconciler) apply(ev Event, now time.Time) {
	switch e := ev.(type) {
	case ClockTick:
		r.clock.now, r.clock.known = e.Time, true
	case BatteryEvent:
		r.battery.ev, r.battery.known = e, true
	case VolumeEvent:
		r.volume.ev, r.volume.known = e, true
	case SysMetricsEvent:
		r.sysmetrics.ev, r.sysmetrics.known = e, true
	case WindowTitleEvent:
		if e.HasWindow {
			r.windowTitle = e.Title
		} else {
			r.windowTitle = ""
		}
	case WorkspaceEvent:
		r.applyWorkspaces(e, now)
	case SnapshotApplied:
		r.log.Debug("snapshot applied", "generation", e.Generation)
	case DiagnosticEvent:
		r.log.Warn("source diagnostic", "source", e.Source, "err", e.Err)
	}
}

// applyWorkspaces merges a workspace change and, when the active workspace
// moved, triggers the indicator slide from its previous resting position. An
// active id absent from the list (special workspaces report id 0) keeps the
// indicator where it was rather than sliding it to the first cell.
func (r *Reconciler) applyWorkspaces(e WorkspaceEvent, now time.Time) {
	prevKnown := r.workspaces.known
	prevActive := r.workspaces.activeID
	prevRest := r.workspaces.rest

	r.workspaces.ids = append(r.workspaces.ids[:0:0], e.IDs...)
	r.workspaces.activeID = e.ActiveID
	r.workspaces.known = true

	idx, listed := indexOf(r.workspaces.ids, e.ActiveID)
	if !listed {
		return
	}
	r.workspaces.rest = float64(idx)

	if prevKnown && prevActive != e.ActiveID {
		snap := r.store.Current()
		r.anim.Trigger(
			KindWorkspaceSlide,
			prevRest,
			r.workspaces.rest,
			now,
			snap.Animation.Duration,
			EasingByName(snap.Animation.Easing),
		)
	}
}

// buildFrame assembles one coherent FrameState from the current snapshot and
// standing state. The snapshot is read once and never retained across ticks.
func (r *Reconciler) buildFrame(now time.Time) FrameState {
	snap := r.store.Current()
	f := FrameState{
		Generation: snap.Generation,
		Theme:      snap.Theme,
		Animating:  r.anim.Active(),
	}
	for _, w := range snap.Widgets {
		switch w.Kind {
		case theme.WidgetWorkspaces:
			f.Workspaces = &WorkspacesFrame{
				IDs:             append([]int(nil), r.workspaces.ids...),
				ActiveID:        r.workspaces.activeID,
				IndicatorOffset: r.anim.Value(KindWorkspaceSlide, now, r.workspaces.rest),
			}
		case theme.WidgetWindowTitle:
			f.WindowTitle = &WindowTitleFrame{Title: r.windowTitle}
		case theme.WidgetVolume:
			f.Volume = &VolumeFrame{
				Percentage: r.volume.ev.Percentage,
				Muted:      r.volume.ev.Muted,
				Known:      r.volume.known,
			}
		case theme.WidgetBattery:
			f.Battery = &BatteryFrame{
				Percentage: r.battery.ev.Percentage,
				Charging:   r.battery.ev.Charging,
				Present:    r.battery.ev.Present,
				Known:      r.battery.known,
			}
		case theme.WidgetSysMetrics:
			f.SysMetrics = &SysMetricsFrame{
				CPUPercent: r.sysmetrics.ev.CPUPercent,
				MemPercent: r.sysmetrics.ev.MemPercent,
				Known:      r.sysmetrics.known,
			}
		case theme.WidgetClock:
			var text string
			if r.clock.known {
				text = r.clock.now.Format(w.ClockFormat)
			}
			f.Clock = &ClockFrame{Text: text}
		}
	}
	return f
}

func indexOf(ids []int, id int) (int, bool) {
	for i, v := range ids {
		if v == id {
			return i, true
		}
	}
	return 0, false
}
