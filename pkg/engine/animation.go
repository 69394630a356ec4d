package engine

import (
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/theme"
)

// Easing maps an animation progress fraction in [0,1] to an interpolation
// weight. Curves must be monotonic with f(0)=0 and f(1)=1.
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// EaseOutQuad decelerates toward the target: 1-(1-t)^2.
func EaseOutQuad(t float64) float64 {
	u := 1 - t
	return 1 - u*u
}

// EaseOutCubic decelerates harder: 1-(1-t)^3.
func EaseOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EasingByName resolves a configured easing name, defaulting to
// ease-out-quad for anything unrecognised.
func EasingByName(name string) Easing {
	switch name {
	case theme.EasingLinear:
		return Linear
	case theme.EasingEaseOutCubic:
		return EaseOutCubic
	default:
		return EaseOutQuad
	}
}

// Kind identifies an animatable widget concern. At most one animation of
// each kind runs at a time.
type Kind int

const (
	// KindWorkspaceSlide animates the workspace indicator between indices.
	KindWorkspaceSlide Kind = iota
)

// animation is one Running episode: captured from/to values, a start time,
// and a curve.
type animation struct {
	start    time.Time
	duration time.Duration
	easing   Easing
	from, to float64
}

func (a *animation) fraction(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	f := float64(now.Sub(a.start)) / float64(a.duration)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (a *animation) value(now time.Time) float64 {
	return a.from + (a.to-a.from)*a.easing(a.fraction(now))
}

func (a *animation) done(now time.Time) bool {
	return now.Sub(a.start) >= a.duration
}

// Scheduler owns the short-lived transition animations. Each kind moves
// Idle -> Running -> Idle; it is touched only from the reconciler goroutine.
type Scheduler struct {
	running map[Kind]*animation
}

// NewScheduler returns a scheduler with every kind Idle.
func NewScheduler() *Scheduler {
	return &Scheduler{running: map[Kind]*animation{}}
}

// Trigger starts or retargets the animation of the given kind. A trigger
// while Running restarts from the current interpolated value toward the new
// target, never a jump cut; a redundant trigger (same target) keeps the
// running episode so its fraction stays monotonic. A trigger whose target
// equals from while Idle is ignored.
func (s *Scheduler) Trigger(kind Kind, from, to float64, now time.Time, d time.Duration, easing Easing) {
	if easing == nil {
		easing = EaseOutQuad
	}
	if a, ok := s.running[kind]; ok {
		if a.to == to {
			return
		}
		s.running[kind] = &animation{start: now, duration: d, easing: easing, from: a.value(now), to: to}
		return
	}
	if from == to {
		return
	}
	s.running[kind] = &animation{start: now, duration: d, easing: easing, from: from, to: to}
}

// Value returns the current interpolated value for kind, or rest while Idle.
func (s *Scheduler) Value(kind Kind, now time.Time, rest float64) float64 {
	if a, ok := s.running[kind]; ok {
		return a.value(now)
	}
	return rest
}

// Fraction returns the eased progress of the running animation of kind.
func (s *Scheduler) Fraction(kind Kind, now time.Time) (float64, bool) {
	a, ok := s.running[kind]
	if !ok {
		return 0, false
	}
	return a.easing(a.fraction(now)), true
}

// Running reports whether an animation of kind is in flight.
func (s *Scheduler) Running(kind Kind) bool {
	_, ok := s.running[kind]
	return ok
}

// Active reports whether any animation is in flight.
func (s *Scheduler) Active() bool {
	return len(s.running) > 0
}

// Sweep retires animations whose elapsed time reached their duration and
// reports whether any remain. The final frame built before a sweep lands
// exactly on the target value because fraction clamps at 1.
func (s *Scheduler) Sweep(now time.Time) bool {
	for k, a := range s.running {
		if a.done(now) {
			delete(s.running, k)
		}
	}
	return len(s.running) > 0
}
