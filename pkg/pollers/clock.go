package pollers

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
)

// Clock emits a tick every interval. Formatting happens downstream so a
// config reload can change the format without touching the poller.
type Clock struct {
	interval time.Duration
}

func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{interval: interval}
}

func (c *Clock) Name() string            { return "clock" }
func (c *Clock) Interval() time.Duration { return c.interval }

func (c *Clock) Poll(ctx context.Context) ([]engine.Event, error) {
	return []engine.Event{engine.ClockTick{Time: time.Now()}}, nil
}
