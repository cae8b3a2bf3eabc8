package arbiter

import (
	"github.com/mcuos/sleepmgr/platform"
)

// Builder can be used to build an Arbiter.
type Builder struct {
	lock       LockState
	suspender  platform.Suspender
	debugBuild bool
}

// MakeBuilder creates a new builder with the default configuration: release
// build, no platform sleep support.
func MakeBuilder() Builder {
	return Builder{}
}

// WithLock sets the deep-sleep lock the arbiter consults.
func (b Builder) WithLock(l LockState) Builder {
	b.lock = l
	return b
}

// WithSuspender sets the platform suspend primitives. Leaving the suspender
// unset models a platform without hardware sleep support, which makes
// EnterIdlePowerState a no-op.
func (b Builder) WithSuspender(s platform.Suspender) Builder {
	b.suspender = s
	return b
}

// WithDebugBuild marks the build as a debug/instrumented configuration, in
// which the deep mode is never entered.
func (b Builder) WithDebugBuild() Builder {
	b.debugBuild = true
	return b
}

// Build builds the arbiter.
func (b Builder) Build() *Arbiter {
	if b.lock == nil {
		panic("arbiter requires a deep-sleep lock")
	}

	return &Arbiter{
		lock:       b.lock,
		suspender:  b.suspender,
		debugBuild: b.debugBuild,
	}
}
