package hooking_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mcuos/sleepmgr/hooking"
)

type recordingHook struct {
	name  string
	trace *[]string
}

func (h recordingHook) Func(_ hooking.HookCtx) {
	*h.trace = append(*h.trace, h.name)
}

var _ = Describe("HookableBase", func() {
	It("should invoke hooks in registration order", func() {
		hookable := hooking.NewHookableBase()
		trace := []string{}

		hookable.AcceptHook(recordingHook{"first", &trace})
		hookable.AcceptHook(recordingHook{"second", &trace})

		hookable.InvokeHook(hooking.HookCtx{})

		Expect(trace).To(Equal([]string{"first", "second"}))
	})

	It("should tolerate having no hooks", func() {
		hookable := hooking.NewHookableBase()

		hookable.InvokeHook(hooking.HookCtx{})
	})
})
