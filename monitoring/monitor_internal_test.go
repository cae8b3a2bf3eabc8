package monitoring

import (
	"net/http/httptest"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mcuos/sleepmgr/powerstats"
	"github.com/mcuos/sleepmgr/sleeplock"
)

type frozenClock struct {
	now time.Time
}

func (c frozenClock) Now() time.Time {
	return c.now
}

var _ = Describe("Monitor", func() {
	var (
		m    *Monitor
		lock *sleeplock.Lock
	)

	BeforeEach(func() {
		m = NewMonitor()
		lock = sleeplock.New()
		m.RegisterLock(lock)
	})

	It("should report the lock state", func() {
		Expect(lock.Lock()).To(Succeed())
		Expect(lock.Lock()).To(Succeed())

		w := httptest.NewRecorder()
		m.lockState(w, nil)

		Expect(w.Body.String()).To(
			MatchJSON(`{"count":2,"can_deep_sleep":false}`))
	})

	It("should report an unlocked lock as deep-sleep capable", func() {
		w := httptest.NewRecorder()
		m.lockState(w, nil)

		Expect(w.Body.String()).To(
			MatchJSON(`{"count":0,"can_deep_sleep":true}`))
	})

	It("should report sleep statistics", func() {
		stats := powerstats.NewCollector(frozenClock{time.Unix(0, 0)})
		m.RegisterStats(stats)

		w := httptest.NewRecorder()
		m.sleepStats(w, nil)

		Expect(w.Body.String()).To(MatchJSON(`{
			"up_time_ns": 0,
			"shallow_sleep_ns": 0,
			"deep_sleep_ns": 0,
			"shallow_sleep_count": 0,
			"deep_sleep_count": 0
		}`))
	})

	It("should 404 on stats when no collector is registered", func() {
		w := httptest.NewRecorder()
		m.sleepStats(w, nil)

		Expect(w.Code).To(Equal(404))
	})

	It("should list registered domains", func() {
		m.RegisterDomain("lock", lock)
		m.RegisterDomain("arbiter", struct{}{})

		w := httptest.NewRecorder()
		m.listDomains(w, nil)

		Expect(w.Body.String()).To(MatchJSON(`["lock","arbiter"]`))
	})
})
