package engine

import (
	"math"
	"testing"
	"time"
)

// --- easing curves ---

func TestEasing_Endpoints(t *testing.T) {
	for name, fn := range map[string]Easing{
		"linear":         Linear,
		"ease-out-quad":  EaseOutQuad,
		"ease-out-cubic": EaseOutCubic,
	} {
		if got := fn(0); got != 0 {
			t.Errorf("%s(0) = %v, want 0", name, got)
		}
		if got := fn(1); got != 1 {
			t.Errorf("%s(1) = %v, want 1", name, got)
		}
	}
}

func TestEasing_Monotonic(t *testing.T) {
	for name, fn := range map[string]Easing{
		"linear":         Linear,
		"ease-out-quad":  EaseOutQuad,
		"ease-out-cubic": EaseOutCubic,
	} {
		prev := fn(0)
		for i := 1; i <= 100; i++ {
			cur := fn(float64(i) / 100)
			if cur < prev {
				t.Errorf("%s not monotonic at t=%v", name, float64(i)/100)
				break
			}
			prev = cur
		}
	}
}

func TestEaseOutQuad_Midpoint(t *testing.T) {
	if got := EaseOutQuad(0.5); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("EaseOutQuad(0.5) = %v, want 0.75", got)
	}
}

func TestEasingByName(t *testing.T) {
	if got := EasingByName("linear")(0.5); got != 0.5 {
		t.Errorf("linear(0.5) = %v, want 0.5", got)
	}
	// Unrecognised names fall back to the default curve.
	if got := EasingByName("wobble")(0.5); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("fallback(0.5) = %v, want ease-out-quad value 0.75", got)
	}
}

// --- scheduler ---

func TestScheduler_IdleValueIsRest(t *testing.T) {
	s := NewScheduler()
	now := time.Now()
	if got := s.Value(KindWorkspaceSlide, now, 3); got != 3 {
		t.Errorf("idle value = %v, want rest 3", got)
	}
	if s.Active() {
		t.Error("fresh scheduler should be idle")
	}
}

func TestScheduler_FractionReachesOneExactly(t *testing.T) {
	s := NewScheduler()
	start := time.Now()
	d := 200 * time.Millisecond
	s.Trigger(KindWorkspaceSlide, 0, 1, start, d, Linear)

	if got := s.Value(KindWorkspaceSlide, start, 99); got != 0 {
		t.Errorf("value at start = %v, want 0", got)
	}
	// Past the duration the value clamps to the target, never beyond.
	end := start.Add(d + 50*time.Millisecond)
	if got := s.Value(KindWorkspaceSlide, end, 99); got != 1 {
		t.Errorf("value past end = %v, want exactly 1", got)
	}
	frac, ok := s.Fraction(KindWorkspaceSlide, end)
	if !ok || frac != 1 {
		t.Errorf("fraction past end = %v, %v; want 1, true", frac, ok)
	}
}

func TestScheduler_TriggerSameValueIgnored(t *testing.T) {
	s := NewScheduler()
	s.Trigger(KindWorkspaceSlide, 2, 2, time.Now(), 200*time.Millisecond, Linear)
	if s.Running(KindWorkspaceSlide) {
		t.Error("trigger with from == to should stay idle")
	}
}

func TestScheduler_RetargetContinuesFromCurrentValue(t *testing.T) {
	s := NewScheduler()
	start := time.Now()
	d := 200 * time.Millisecond
	s.Trigger(KindWorkspaceSlide, 0, 1, start, d, Linear)

	// Halfway through, retarget back to 0. The new episode must start from
	// the mid-flight value, not jump.
	mid := start.Add(d / 2)
	before := s.Value(KindWorkspaceSlide, mid, 99)
	s.Trigger(KindWorkspaceSlide, 0, 0, mid, d, Linear)
	after := s.Value(KindWorkspaceSlide, mid, 99)
	if math.Abs(before-after) > 1e-9 {
		t.Errorf("retarget jumped: %v -> %v", before, after)
	}
	// And it ends at the new target.
	end := mid.Add(d * 2)
	if got := s.Value(KindWorkspaceSlide, end, 99); got != 0 {
		t.Errorf("value after retargeted episode = %v, want 0", got)
	}
}

func TestScheduler_RedundantTriggerKeepsEpisode(t *testing.T) {
	s := NewScheduler()
	start := time.Now()
	d := 200 * time.Millisecond
	s.Trigger(KindWorkspaceSlide, 0, 1, start, d, Linear)

	mid := start.Add(d / 2)
	fracBefore, _ := s.Fraction(KindWorkspaceSlide, mid)
	// Same target again must not restart the clock.
	s.Trigger(KindWorkspaceSlide, 0, 1, mid, d, Linear)
	fracAfter, _ := s.Fraction(KindWorkspaceSlide, mid)
	if fracAfter < fracBefore {
		t.Errorf("redundant trigger reset progress: %v -> %v", fracBefore, fracAfter)
	}
}

func TestScheduler_SweepRetiresDone(t *testing.T) {
	s := NewScheduler()
	start := time.Now()
	d := 100 * time.Millisecond
	s.Trigger(KindWorkspaceSlide, 0, 1, start, d, Linear)

	if running := s.Sweep(start.Add(d / 2)); !running {
		t.Error("Sweep mid-flight should report running")
	}
	if running := s.Sweep(start.Add(d)); running {
		t.Error("Sweep at the end should retire the animation")
	}
	if s.Active() {
		t.Error("scheduler should be idle after retirement")
	}
	// Value returns to rest after retirement.
	if got := s.Value(KindWorkspaceSlide, start.Add(d), 7); got != 7 {
		t.Errorf("post-retirement value = %v, want rest 7", got)
	}
}

func TestScheduler_ZeroDurationCompletesImmediately(t *testing.T) {
	s := NewScheduler()
	now := time.Now()
	s.Trigger(KindWorkspaceSlide, 0, 1, now, 0, Linear)
	if got := s.Value(KindWorkspaceSlide, now, 99); got != 1 {
		t.Errorf("zero-duration value = %v, want 1", got)
	}
	if running := s.Sweep(now); running {
		t.Error("zero-duration animation should retire on first sweep")
	}
}
