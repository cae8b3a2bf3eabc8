package powerstats_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mcuos/sleepmgr/arbiter"
	"github.com/mcuos/sleepmgr/hooking"
	"github.com/mcuos/sleepmgr/powerstats"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

var _ = Describe("Collector", func() {
	var (
		clock     *fakeClock
		collector *powerstats.Collector
	)

	sleep := func(mode arbiter.Mode, d time.Duration) {
		collector.Func(hooking.HookCtx{
			Pos:  arbiter.HookPosBeforeSuspend,
			Item: mode,
		})
		clock.advance(d)
		collector.Func(hooking.HookCtx{
			Pos:  arbiter.HookPosAfterSuspend,
			Item: mode,
		})
	}

	BeforeEach(func() {
		clock = &fakeClock{now: time.Unix(1000, 0)}
		collector = powerstats.NewCollector(clock)
	})

	It("should start with empty statistics", func() {
		s := collector.Snapshot()

		Expect(s.UpTime).To(Equal(time.Duration(0)))
		Expect(s.ShallowSleepTime).To(Equal(time.Duration(0)))
		Expect(s.DeepSleepTime).To(Equal(time.Duration(0)))
	})

	It("should accumulate time per mode", func() {
		sleep(arbiter.ModeShallow, 10*time.Millisecond)
		sleep(arbiter.ModeDeep, 70*time.Millisecond)
		clock.advance(20 * time.Millisecond)
		sleep(arbiter.ModeDeep, 50*time.Millisecond)

		s := collector.Snapshot()

		Expect(s.UpTime).To(Equal(150 * time.Millisecond))
		Expect(s.ShallowSleepTime).To(Equal(10 * time.Millisecond))
		Expect(s.DeepSleepTime).To(Equal(120 * time.Millisecond))
		Expect(s.ShallowSleepCount).To(Equal(uint64(1)))
		Expect(s.DeepSleepCount).To(Equal(uint64(2)))
	})

	It("should ignore hook positions it does not understand", func() {
		collector.Func(hooking.HookCtx{
			Pos: &hooking.HookPos{Name: "Unrelated"},
		})

		s := collector.Snapshot()
		Expect(s.ShallowSleepCount).To(Equal(uint64(0)))
		Expect(s.DeepSleepCount).To(Equal(uint64(0)))
	})
})
