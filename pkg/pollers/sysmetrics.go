package pollers

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"gitlab.com/tinyland/lab/clammy/pkg/engine"
)

// SysMetrics samples CPU and memory utilization. A failure of one probe
// degrades that value to -1; both failing is a poll error.
type SysMetrics struct {
	interval time.Duration

	known   bool
	lastCPU int
	lastMem int
}

func NewSysMetrics(interval time.Duration) *SysMetrics {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &SysMetrics{interval: interval}
}

func (s *SysMetrics) Name() string            { return "sysmetrics" }
func (s *SysMetrics) Interval() time.Duration { return s.interval }

func (s *SysMetrics) Poll(ctx context.Context) ([]engine.Event, error) {
	cpuPct := -1
	memPct := -1

	pcts, cpuErr := cpu.PercentWithContext(ctx, 0, false)
	if cpuErr == nil && len(pcts) > 0 {
		cpuPct = int(math.Round(pcts[0]))
	}
	vm, memErr := mem.VirtualMemoryWithContext(ctx)
	if memErr == nil {
		memPct = int(math.Round(vm.UsedPercent))
	}
	if cpuErr != nil && memErr != nil {
		return nil, errors.Join(cpuErr, memErr)
	}

	if s.known && cpuPct == s.lastCPU && memPct == s.lastMem {
		return nil, nil
	}
	s.known = true
	s.lastCPU = cpuPct
	s.lastMem = memPct
	return []engine.Event{engine.SysMetricsEvent{CPUPercent: cpuPct, MemPercent: memPct}}, nil
}
