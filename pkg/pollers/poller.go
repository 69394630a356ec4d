// Package pollers gathers widget data from the system on per-source
// cadences and publishes engine events.
//
// Two source shapes exist. A Poller is sampled on a fixed interval and
// returns a batch of events per sample; sources that only emit when a
// value changed return an empty batch. A Streamer holds a long-lived
// subscription (the compositor event socket) and pushes events as they
// arrive. The Runner drives both, one goroutine per source, so a slow
// or failing source never stalls the others.
package pollers

import (
	"context"
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
)

// Poller is a sampled event source.
type Poller interface {
	// Name identifies the source in logs and the registry.
	Name() string

	// Interval is the sampling cadence.
	Interval() time.Duration

	// Poll samples the source. It may return zero events when nothing
	// changed since the previous sample.
	Poll(ctx context.Context) ([]engine.Event, error)
}

// Streamer is a subscription event source. Run blocks until ctx is
// cancelled or the subscription drops; the runner restarts it with
// backoff on failure.
type Streamer interface {
	Name() string
	Run(ctx context.Context, enqueue func(engine.Event)) error
}
