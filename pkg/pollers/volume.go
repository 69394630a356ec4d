package pollers

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
)

// Volume samples the default audio sink via wpctl. It only emits when
// level or mute state changed since the last sample.
type Volume struct {
	interval time.Duration
	sink     string
	run      func(ctx context.Context, sink string) (string, error)

	known     bool
	lastPct   int
	lastMuted bool
}

func NewVolume(interval time.Duration, sink string) *Volume {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if sink == "" {
		sink = "@DEFAULT_AUDIO_SINK@"
	}
	return &Volume{interval: interval, sink: sink, run: runWpctl}
}

func (v *Volume) Name() string            { return "volume" }
func (v *Volume) Interval() time.Duration { return v.interval }

func (v *Volume) Poll(ctx context.Context) ([]engine.Event, error) {
	out, err := v.run(ctx, v.sink)
	if err != nil {
		return nil, err
	}
	pct, muted, err := parseVolume(out)
	if err != nil {
		return nil, err
	}
	if v.known && pct == v.lastPct && muted == v.lastMuted {
		return nil, nil
	}
	v.known = true
	v.lastPct = pct
	v.lastMuted = muted
	return []engine.Event{engine.VolumeEvent{Percentage: pct, Muted: muted}}, nil
}

func runWpctl(ctx context.Context, sink string) (string, error) {
	out, err := exec.CommandContext(ctx, "wpctl", "get-volume", sink).Output()
	if err != nil {
		return "", fmt.Errorf("wpctl get-volume: %w", err)
	}
	return string(out), nil
}

// parseVolume decodes wpctl output, e.g. "Volume: 0.45" or
// "Volume: 0.45 [MUTED]".
func parseVolume(out string) (int, bool, error) {
	s := strings.TrimSpace(out)
	rest, found := strings.CutPrefix(s, "Volume:")
	if !found {
		return 0, false, fmt.Errorf("unexpected wpctl output %q", s)
	}
	rest = strings.TrimSpace(rest)
	muted := false
	if level, ok := strings.CutSuffix(rest, "[MUTED]"); ok {
		muted = true
		rest = strings.TrimSpace(level)
	}
	f, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return 0, false, fmt.Errorf("unexpected wpctl level %q", rest)
	}
	pct := int(math.Round(f * 100))
	if pct < 0 {
		pct = 0
	}
	return pct, muted, nil
}
