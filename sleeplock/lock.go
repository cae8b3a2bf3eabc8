// Package sleeplock provides the deep-sleep lock, a saturating reference
// count that records how many independent parties currently forbid the deep
// low-power mode.
package sleeplock

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/mcuos/sleepmgr/hooking"
)

// MaxCount is the largest number of outstanding deep-sleep locks. Lock calls
// beyond this point saturate instead of wrapping, as a wrapped counter would
// falsely report that deep sleep is permitted.
const MaxCount = math.MaxUint16

// ErrSaturated is reported when Lock is called while the counter is already
// at MaxCount. The counter is left unchanged.
var ErrSaturated = errors.New("deep-sleep lock counter saturated")

// ErrUnderflow is reported when Unlock is called while the counter is
// already zero. The counter stays at zero.
var ErrUnderflow = errors.New("deep-sleep lock counter underflow")

// HookPosLock is a hook position that triggers after a successful Lock call.
var HookPosLock = &hooking.HookPos{Name: "Lock"}

// HookPosUnlock is a hook position that triggers after a successful Unlock
// call.
var HookPosUnlock = &hooking.HookPos{Name: "Unlock"}

// HookPosSaturated is a hook position that triggers when a Lock call finds
// the counter already at MaxCount.
var HookPosSaturated = &hooking.HookPos{Name: "Saturated"}

// HookPosUnderflow is a hook position that triggers when an Unlock call
// finds the counter already at zero.
var HookPosUnderflow = &hooking.HookPos{Name: "Underflow"}

// A Lock counts the parties that currently forbid deep sleep. All operations
// are single atomic read-modify-write steps, so they are safe to call from
// any execution context, including interrupt handlers that preempt a
// thread-context caller mid-update. No operation ever blocks.
//
// The Lock does not track which caller issued an increment; callers are
// responsible for pairing their own Lock/Unlock calls.
type Lock struct {
	hooking.HookableBase

	count atomic.Uint32
}

// New creates a Lock with a zero counter, i.e., deep sleep permitted.
func New() *Lock {
	return &Lock{}
}

// Lock registers one more party that forbids deep sleep. If the counter is
// already at MaxCount, the counter is left unchanged and ErrSaturated is
// returned. Hooks attached to the Lock observe both outcomes.
func (l *Lock) Lock() error {
	for {
		old := l.count.Load()
		if old >= MaxCount {
			l.InvokeHook(hooking.HookCtx{
				Domain: l,
				Pos:    HookPosSaturated,
				Item:   old,
			})
			return ErrSaturated
		}

		if l.count.CompareAndSwap(old, old+1) {
			l.InvokeHook(hooking.HookCtx{
				Domain: l,
				Pos:    HookPosLock,
				Item:   old + 1,
			})
			return nil
		}
	}
}

// Unlock retracts one previously registered party. If the counter is already
// zero, it stays at zero and ErrUnderflow is returned, so a double unlock
// can never make CanDeepSleep report true while locks are outstanding
// elsewhere.
func (l *Lock) Unlock() error {
	for {
		old := l.count.Load()
		if old == 0 {
			l.InvokeHook(hooking.HookCtx{
				Domain: l,
				Pos:    HookPosUnderflow,
				Item:   old,
			})
			return ErrUnderflow
		}

		if l.count.CompareAndSwap(old, old-1) {
			l.InvokeHook(hooking.HookCtx{
				Domain: l,
				Pos:    HookPosUnlock,
				Item:   old - 1,
			})
			return nil
		}
	}
}

// CanDeepSleep returns true exactly when no party currently forbids deep
// sleep. The result is a single atomic load, valid at some instant during
// the call.
func (l *Lock) CanDeepSleep() bool {
	return l.count.Load() == 0
}

// Count returns the number of outstanding deep-sleep locks.
func (l *Lock) Count() uint32 {
	return l.count.Load()
}
