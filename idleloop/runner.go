// Package idleloop hosts the idle path: a goroutine that re-enters a
// low-power state through the arbiter every time execution resumes.
package idleloop

import (
	"context"
	"time"

	"vawter.tech/stopper"

	"github.com/mcuos/sleepmgr/arbiter"
)

// A Runner owns the idle-loop goroutine. It repeatedly asks the arbiter to
// enter a low-power state; each return from the arbiter is a wake event,
// after which the loop immediately offers the next idle opportunity.
type Runner struct {
	arbiter *arbiter.Arbiter
	sctx    *stopper.Context
}

// NewRunner creates a Runner driving the given arbiter.
func NewRunner(a *arbiter.Arbiter) *Runner {
	return &Runner{arbiter: a}
}

// Start launches the idle loop. The loop runs until Stop is called or the
// parent context is canceled.
//
// The caller must make sure that a wake event eventually follows the stop
// request, since a suspended loop cannot observe the request until the
// platform primitive returns.
func (r *Runner) Start(ctx context.Context) {
	r.sctx = stopper.WithContext(ctx)

	r.sctx.Go(func(sctx *stopper.Context) error {
		for !sctx.IsStopping() {
			select {
			case <-sctx.Stopping():
				return nil
			default:
				r.arbiter.EnterIdlePowerState()
			}
		}

		return nil
	})
}

// Stop requests the idle loop to exit and waits for it, allowing the given
// grace period before the loop goroutine is abandoned.
func (r *Runner) Stop(grace time.Duration) error {
	r.sctx.Stop(grace)
	return r.sctx.Wait()
}
