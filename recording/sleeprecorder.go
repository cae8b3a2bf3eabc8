package recording

import (
	"sync"
	"time"

	"github.com/mcuos/sleepmgr/arbiter"
	"github.com/mcuos/sleepmgr/hooking"
	"github.com/mcuos/sleepmgr/powerstats"
	"github.com/mcuos/sleepmgr/sleeplock"
)

const (
	transitionTable = "sleep_transitions"
	faultTable      = "lock_faults"
)

const timeFormat = "2006-01-02 15:04:05.000000000"

// SleepTransition is one completed suspend/resume cycle.
type SleepTransition struct {
	Start      string
	End        string
	Mode       string
	DurationNS int64
}

// LockFault is one reported misuse of the deep-sleep lock.
type LockFault struct {
	Time  string
	Kind  string
	Count uint32
}

// A SleepRecorder is a hook that writes sleep-manager activity into a
// DataRecorder. Attach it to the arbiter to record one row per sleep
// transition, and to the deep-sleep lock to record one row per lock fault.
type SleepRecorder struct {
	mu       sync.Mutex
	recorder DataRecorder
	clock    powerstats.Clock

	suspendedAt  time.Time
	suspendedFor arbiter.Mode
}

// NewSleepRecorder creates a SleepRecorder writing into the given
// DataRecorder. A nil clock selects the system clock.
func NewSleepRecorder(
	recorder DataRecorder,
	clock powerstats.Clock,
) *SleepRecorder {
	if clock == nil {
		clock = powerstats.SystemClock{}
	}

	r := &SleepRecorder{
		recorder: recorder,
		clock:    clock,
	}

	recorder.CreateTable(transitionTable, SleepTransition{})
	recorder.CreateTable(faultTable, LockFault{})

	return r
}

// Func records the activity that triggered the hook.
func (r *SleepRecorder) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case arbiter.HookPosBeforeSuspend:
		r.mu.Lock()
		r.suspendedAt = r.clock.Now()
		r.suspendedFor = ctx.Item.(arbiter.Mode)
		r.mu.Unlock()
	case arbiter.HookPosAfterSuspend:
		r.recordTransition()
	case sleeplock.HookPosSaturated:
		r.recordFault("saturation", ctx.Item.(uint32))
	case sleeplock.HookPosUnderflow:
		r.recordFault("underflow", ctx.Item.(uint32))
	}
}

func (r *SleepRecorder) recordTransition() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.recorder.InsertData(transitionTable, SleepTransition{
		Start:      r.suspendedAt.Format(timeFormat),
		End:        now.Format(timeFormat),
		Mode:       r.suspendedFor.String(),
		DurationNS: now.Sub(r.suspendedAt).Nanoseconds(),
	})
}

func (r *SleepRecorder) recordFault(kind string, count uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.recorder.InsertData(faultTable, LockFault{
		Time:  r.clock.Now().Format(timeFormat),
		Kind:  kind,
		Count: count,
	})
}
