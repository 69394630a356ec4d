package pollers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
)

const (
	backoffFactorCap   = 8
	streamBackoffBase  = time.Second
	streamBackoffCap   = 30 * time.Second
	streamHealthyAfter = time.Minute
)

// Runner owns one goroutine per registered source.
type Runner struct {
	log      *slog.Logger
	enqueue  func(engine.Event)
	registry *Registry

	pollers   []Poller
	streamers []Streamer
	wg        sync.WaitGroup
}

func NewRunner(log *slog.Logger, enqueue func(engine.Event)) *Runner {
	if log == nil {
		log = slog.Default()
	}
	return &Runner{
		log:      log,
		enqueue:  enqueue,
		registry: NewRegistry(),
	}
}

func (r *Runner) Add(p Poller) { r.pollers = append(r.pollers, p) }

func (r *Runner) AddStreamer(s Streamer) { r.streamers = append(r.streamers, s) }

// Registry exposes source health for diagnostics.
func (r *Runner) Registry() *Registry { return r.registry }

// Start launches every source. Add and AddStreamer must not be called
// after Start.
func (r *Runner) Start(ctx context.Context) {
	for _, p := range r.pollers {
		r.wg.Add(1)
		go func(p Poller) {
			defer r.wg.Done()
			r.runPoller(ctx, p)
		}(p)
	}
	for _, s := range r.streamers {
		r.wg.Add(1)
		go func(s Streamer) {
			defer r.wg.Done()
			r.runStreamer(ctx, s)
		}(s)
	}
}

// Wait blocks until every source goroutine has returned.
func (r *Runner) Wait() { r.wg.Wait() }

func (r *Runner) runPoller(ctx context.Context, p Poller) {
	failures := 0
	timer := time.NewTimer(0) // first sample immediately
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		events, err := p.Poll(ctx)
		r.registry.recordRun(p.Name(), err)
		if err != nil {
			failures++
			r.log.Warn("poll failed", "source", p.Name(), "failures", failures, "err", err)
			r.enqueue(engine.DiagnosticEvent{Source: p.Name(), Err: err})
		} else {
			failures = 0
			for _, ev := range events {
				r.enqueue(ev)
			}
		}
		timer.Reset(backoff(p.Interval(), failures))
	}
}

// backoff stretches the interval by 2^failures, capped at 8x, so a
// broken source settles into a slow retry instead of hammering.
func backoff(interval time.Duration, failures int) time.Duration {
	if failures <= 0 {
		return interval
	}
	factor := 1
	for i := 0; i < failures && factor < backoffFactorCap; i++ {
		factor *= 2
	}
	return interval * time.Duration(factor)
}

func (r *Runner) runStreamer(ctx context.Context, s Streamer) {
	failures := 0
	for {
		started := time.Now()
		err := s.Run(ctx, r.enqueue)
		r.registry.recordRun(s.Name(), err)
		if ctx.Err() != nil {
			return
		}
		// A stream that held for a while earned a fresh backoff.
		if time.Since(started) >= streamHealthyAfter {
			failures = 0
		}
		failures++
		delay := backoff(streamBackoffBase, failures-1)
		if delay > streamBackoffCap {
			delay = streamBackoffCap
		}
		r.log.Warn("stream dropped, reconnecting", "source", s.Name(), "delay", delay, "err", err)
		r.enqueue(engine.DiagnosticEvent{Source: s.Name(), Err: err})

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}
