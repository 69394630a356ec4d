package pollers

import (
	"context"
	"math"
	"time"

	"github.com/distatus/battery"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
)

// Battery samples charge level and charging state. It only emits when
// either changed since the last sample.
type Battery struct {
	interval time.Duration
	read     func() (pct int, charging, present bool, err error)

	known        bool
	lastPct      int
	lastCharging bool
	lastPresent  bool
}

func NewBattery(interval time.Duration) *Battery {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Battery{interval: interval, read: readSystemBattery}
}

func (b *Battery) Name() string            { return "battery" }
func (b *Battery) Interval() time.Duration { return b.interval }

func (b *Battery) Poll(ctx context.Context) ([]engine.Event, error) {
	pct, charging, present, err := b.read()
	if err != nil {
		return nil, err
	}
	if b.known && pct == b.lastPct && charging == b.lastCharging && present == b.lastPresent {
		return nil, nil
	}
	b.known = true
	b.lastPct = pct
	b.lastCharging = charging
	b.lastPresent = present
	return []engine.Event{engine.BatteryEvent{
		Percentage: pct,
		Charging:   charging,
		Present:    present,
	}}, nil
}

func readSystemBattery() (int, bool, bool, error) {
	bats, err := battery.GetAll()
	if err != nil {
		return 0, false, false, err
	}
	if len(bats) == 0 {
		return 0, false, false, nil
	}
	bat := bats[0]
	pct := 0
	if bat.Full > 0 {
		pct = int(math.Round(bat.Current / bat.Full * 100))
	}
	if pct > 100 {
		pct = 100
	}
	return pct, bat.State == battery.Charging, true, nil
}
