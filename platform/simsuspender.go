package platform

import (
	"sync/atomic"
)

// SimSuspender simulates a processor core for demos and tests. A suspend
// call blocks until Wake injects a wake event, mimicking the
// halt-until-interrupt behavior of the real primitives, and counts how many
// times each mode was entered.
type SimSuspender struct {
	wake chan struct{}

	shallowCount atomic.Uint64
	deepCount    atomic.Uint64
}

// NewSimSuspender creates a SimSuspender with no pending wake event.
func NewSimSuspender() *SimSuspender {
	return &SimSuspender{
		wake: make(chan struct{}, 1),
	}
}

// SuspendShallow blocks until the next wake event.
func (s *SimSuspender) SuspendShallow() {
	s.shallowCount.Add(1)
	<-s.wake
}

// SuspendDeep blocks until the next wake event.
func (s *SimSuspender) SuspendDeep() {
	s.deepCount.Add(1)
	<-s.wake
}

// Wake delivers one wake event. Wake events do not accumulate: delivering
// several while no core is suspended is the same as delivering one, like a
// level-triggered interrupt line.
func (s *SimSuspender) Wake() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// ShallowCount returns how many times SuspendShallow was entered.
func (s *SimSuspender) ShallowCount() uint64 {
	return s.shallowCount.Load()
}

// DeepCount returns how many times SuspendDeep was entered.
func (s *SimSuspender) DeepCount() uint64 {
	return s.deepCount.Load()
}
