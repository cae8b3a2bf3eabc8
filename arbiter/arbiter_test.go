package arbiter_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/mcuos/sleepmgr/arbiter"
	"github.com/mcuos/sleepmgr/hooking"
	"github.com/mcuos/sleepmgr/sleeplock"
)

type captureHook struct {
	mu   sync.Mutex
	ctxs []hooking.HookCtx
}

func (h *captureHook) Func(ctx hooking.HookCtx) {
	h.mu.Lock()
	h.ctxs = append(h.ctxs, ctx)
	h.mu.Unlock()
}

var _ = Describe("Arbiter", func() {
	var (
		mockCtrl  *gomock.Controller
		suspender *MockSuspender
		lock      *sleeplock.Lock
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		suspender = NewMockSuspender(mockCtrl)
		lock = sleeplock.New()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should enter deep sleep when no lock is held", func() {
		a := arbiter.MakeBuilder().
			WithLock(lock).
			WithSuspender(suspender).
			Build()

		suspender.EXPECT().SuspendDeep()

		a.EnterIdlePowerState()
	})

	It("should fall back to shallow sleep while locks are held", func() {
		a := arbiter.MakeBuilder().
			WithLock(lock).
			WithSuspender(suspender).
			Build()

		Expect(lock.Lock()).To(Succeed())
		Expect(lock.Lock()).To(Succeed())
		Expect(lock.Lock()).To(Succeed())

		suspender.EXPECT().SuspendShallow()

		a.EnterIdlePowerState()
	})

	It("should force shallow sleep under a debug build", func() {
		a := arbiter.MakeBuilder().
			WithLock(lock).
			WithSuspender(suspender).
			WithDebugBuild().
			Build()

		suspender.EXPECT().SuspendShallow()

		a.EnterIdlePowerState()
	})

	It("should do nothing on a platform without sleep support", func() {
		a := arbiter.MakeBuilder().
			WithLock(lock).
			Build()

		a.EnterIdlePowerState()
	})

	It("should evaluate the lock state fresh on every opportunity", func() {
		a := arbiter.MakeBuilder().
			WithLock(lock).
			WithSuspender(suspender).
			Build()

		Expect(lock.Lock()).To(Succeed())
		suspender.EXPECT().SuspendShallow()
		a.EnterIdlePowerState()

		Expect(lock.Unlock()).To(Succeed())
		suspender.EXPECT().SuspendDeep()
		a.EnterIdlePowerState()
	})

	It("should invoke hooks around the suspension", func() {
		a := arbiter.MakeBuilder().
			WithLock(lock).
			WithSuspender(suspender).
			Build()

		hook := &captureHook{}
		a.AcceptHook(hook)

		suspender.EXPECT().SuspendDeep()

		a.EnterIdlePowerState()

		Expect(hook.ctxs).To(HaveLen(2))
		Expect(hook.ctxs[0].Pos).To(Equal(arbiter.HookPosBeforeSuspend))
		Expect(hook.ctxs[0].Item).To(Equal(arbiter.ModeDeep))
		Expect(hook.ctxs[1].Pos).To(Equal(arbiter.HookPosAfterSuspend))
		Expect(hook.ctxs[1].Item).To(Equal(arbiter.ModeDeep))
	})

	It("should panic when built without a lock", func() {
		Expect(func() {
			arbiter.MakeBuilder().WithSuspender(suspender).Build()
		}).To(Panic())
	})
})
