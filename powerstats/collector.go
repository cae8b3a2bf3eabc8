// Package powerstats accumulates how much time the processor spends awake
// and in each low-power mode.
package powerstats

import (
	"sync"
	"time"

	"github.com/mcuos/sleepmgr/arbiter"
	"github.com/mcuos/sleepmgr/hooking"
)

// A Snapshot is a copy of the accumulated sleep statistics at one point in
// time.
type Snapshot struct {
	// UpTime is the total time since the collector started.
	UpTime time.Duration

	// ShallowSleepTime is the total time spent in the shallow low-power
	// mode.
	ShallowSleepTime time.Duration

	// DeepSleepTime is the total time spent in the deep low-power mode.
	DeepSleepTime time.Duration

	// ShallowSleepCount is the number of times the shallow mode was entered.
	ShallowSleepCount uint64

	// DeepSleepCount is the number of times the deep mode was entered.
	DeepSleepCount uint64
}

// A Collector is a hook that measures sleep durations. Attach it to an
// Arbiter; it timestamps each before-suspend/after-suspend hook pair and
// accumulates the elapsed time under the mode that was entered.
type Collector struct {
	mu    sync.Mutex
	clock Clock

	start        time.Time
	suspendedAt  time.Time
	suspendedFor arbiter.Mode

	shallowTime  time.Duration
	deepTime     time.Duration
	shallowCount uint64
	deepCount    uint64
}

// NewCollector creates a Collector that starts counting uptime now. A nil
// clock selects the system clock.
func NewCollector(clock Clock) *Collector {
	if clock == nil {
		clock = SystemClock{}
	}

	return &Collector{
		clock: clock,
		start: clock.Now(),
	}
}

// Func records suspend and resume times.
func (c *Collector) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case arbiter.HookPosBeforeSuspend:
		c.mu.Lock()
		c.suspendedAt = c.clock.Now()
		c.suspendedFor = ctx.Item.(arbiter.Mode)
		c.mu.Unlock()
	case arbiter.HookPosAfterSuspend:
		c.mu.Lock()
		elapsed := c.clock.Now().Sub(c.suspendedAt)
		if c.suspendedFor == arbiter.ModeDeep {
			c.deepTime += elapsed
			c.deepCount++
		} else {
			c.shallowTime += elapsed
			c.shallowCount++
		}
		c.mu.Unlock()
	}
}

// Snapshot returns a copy of the statistics accumulated so far.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		UpTime:            c.clock.Now().Sub(c.start),
		ShallowSleepTime:  c.shallowTime,
		DeepSleepTime:     c.deepTime,
		ShallowSleepCount: c.shallowCount,
		DeepSleepCount:    c.deepCount,
	}
}
