package arbiter

// Mode is a low-power mode that the processor can enter at an idle
// opportunity.
type Mode int

const (
	// ModeShallow halts the core clock while peripherals and their clocks
	// stay active. Any interrupt wakes the core.
	ModeShallow Mode = iota

	// ModeDeep additionally powers down clocks and peripherals. Only an
	// external pin interrupt or a watchdog event wakes the core.
	ModeDeep
)

// String returns the name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeShallow:
		return "shallow"
	case ModeDeep:
		return "deep"
	}

	return "unknown"
}

// Decide selects the low-power mode for one idle opportunity. A debug build
// always gets the shallow mode so the debugger stays connected; otherwise
// the deep mode is selected exactly when no deep-sleep lock is outstanding.
func Decide(debugBuild, canDeepSleep bool) Mode {
	if debugBuild {
		return ModeShallow
	}

	if canDeepSleep {
		return ModeDeep
	}

	return ModeShallow
}
