package sleeplock

import (
	"log"

	"github.com/mcuos/sleepmgr/hooking"
)

// FaultLogger is a hook that prints lock misuse to a logger. Attach it to a
// Lock to get a diagnostic line whenever a caller saturates or underflows
// the counter. Well-paired Lock/Unlock traffic produces no output.
type FaultLogger struct {
	hooking.LogHookBase
}

// NewFaultLogger returns a FaultLogger that writes into the given logger.
func NewFaultLogger(logger *log.Logger) *FaultLogger {
	h := new(FaultLogger)
	h.Logger = logger
	return h
}

// Func writes the fault information into the logger
func (h *FaultLogger) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case HookPosSaturated:
		h.Printf("deep-sleep lock saturated at %d, increment dropped",
			ctx.Item.(uint32))
	case HookPosUnderflow:
		h.Printf("deep-sleep lock unlocked at 0, caller pairing bug")
	}
}
