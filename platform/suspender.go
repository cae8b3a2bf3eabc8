// Package platform defines the boundary to the hardware sleep primitives.
// The rest of the module treats suspending the processor as opaque: a
// Suspender call returns only after an external wake event.
package platform

// A Suspender owns the hardware instructions that actually halt the
// processor core.
//
// SuspendShallow halts the core clock but keeps peripherals and their clocks
// running; any interrupt wakes it. SuspendDeep additionally powers down
// clocks and peripherals; only an external pin interrupt or a watchdog event
// wakes it. Neither call takes input or returns a value; both resume by
// returning to the caller.
type Suspender interface {
	SuspendShallow()
	SuspendDeep()
}

// NoopSuspender is the Suspender for platforms without hardware sleep
// support. Both calls return immediately. Absence of sleep support is a
// valid configuration, not a fault.
type NoopSuspender struct{}

// SuspendShallow does nothing.
func (NoopSuspender) SuspendShallow() {}

// SuspendDeep does nothing.
func (NoopSuspender) SuspendDeep() {}
