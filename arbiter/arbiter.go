// Package arbiter selects and enters one low-power mode per idle
// opportunity, based on the deep-sleep lock state and the build
// configuration.
package arbiter

import (
	"github.com/mcuos/sleepmgr/hooking"
	"github.com/mcuos/sleepmgr/platform"
)

// HookPosBeforeSuspend is a hook position that triggers right before the
// processor is suspended. The hook context Item carries the selected Mode.
var HookPosBeforeSuspend = &hooking.HookPos{Name: "BeforeSuspend"}

// HookPosAfterSuspend is a hook position that triggers right after the
// processor resumes. The hook context Item carries the Mode that was
// entered.
var HookPosAfterSuspend = &hooking.HookPos{Name: "AfterSuspend"}

// LockState is the read-only view of the deep-sleep lock that the arbiter
// consults. The arbiter never mutates the lock.
type LockState interface {
	CanDeepSleep() bool
}

// An Arbiter decides, on every idle opportunity, whether the processor may
// enter the deep low-power mode or must fall back to the shallow one. Each
// decision is evaluated fresh; the arbiter keeps no memory of previous
// decisions.
type Arbiter struct {
	hooking.HookableBase

	lock       LockState
	suspender  platform.Suspender
	debugBuild bool
}

// EnterIdlePowerState chooses a low-power mode and suspends the processor
// through the platform primitive. It returns after the wake event. On a
// platform without sleep support (no suspender configured) the call is a
// no-op.
//
// This function has no error path of its own; lock misuse is reported by
// the lock, and the arbiter always succeeds in choosing some mode.
func (a *Arbiter) EnterIdlePowerState() {
	if a.suspender == nil {
		return
	}

	mode := Decide(a.debugBuild, a.lock.CanDeepSleep())

	a.InvokeHook(hooking.HookCtx{
		Domain: a,
		Pos:    HookPosBeforeSuspend,
		Item:   mode,
	})

	if mode == ModeDeep {
		a.suspender.SuspendDeep()
	} else {
		a.suspender.SuspendShallow()
	}

	a.InvokeHook(hooking.HookCtx{
		Domain: a,
		Pos:    HookPosAfterSuspend,
		Item:   mode,
	})
}

// DebugBuild tells whether the arbiter runs under a debug build
// configuration.
func (a *Arbiter) DebugBuild() bool {
	return a.debugBuild
}
