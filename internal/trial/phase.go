package trial

import (
	"fmt"
	"time"
)

// PhaseKind identifies the step a trial is in.
type PhaseKind int

const (
	// PhaseSettling waits for the cursor to stop after a click.
	PhaseSettling PhaseKind = iota
	// PhaseDelay counts the grace period before the next target appears.
	PhaseDelay
	// PhaseArmed shows the target and waits for the first movement.
	PhaseArmed
	// PhaseTiming shows the target and accumulates movement time.
	PhaseTiming
)

func (k PhaseKind) String() string {
	switch k {
	case PhaseSettling:
		return "settling"
	case PhaseDelay:
		return "delay"
	case PhaseArmed:
		return "armed"
	case PhaseTiming:
		return "timing"
	default:
		return fmt.Sprintf("PhaseKind(%d)", int(k))
	}
}

// Phase is the active trial phase. Elapsed is only meaningful for PhaseDelay
// and PhaseTiming.
type Phase struct {
	Kind    PhaseKind
	Elapsed time.Duration
}

func (p Phase) String() string {
	switch p.Kind {
	case PhaseDelay, PhaseTiming:
		return fmt.Sprintf("%s(%s)", p.Kind, p.Elapsed)
	default:
		return p.Kind.String()
	}
}

func settling() Phase { return Phase{Kind: PhaseSettling} }

func delay(elapsed time.Duration) Phase { return Phase{Kind: PhaseDelay, Elapsed: elapsed} }

func armed() Phase { return Phase{Kind: PhaseArmed} }

func timing(elapsed time.Duration) Phase { return Phase{Kind: PhaseTiming, Elapsed: elapsed} }
