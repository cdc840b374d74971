// Package trial implements the pointing trial state machine.
package trial

import (
	"fmt"
	"time"

	"github.com/verte-zerg/pointspeed/internal/model"
)

// Placer chooses the next target and its distance from the cursor.
type Placer interface {
	Generate(bounds model.Bounds, size int, from model.Point) (model.Point, float64)
}

// ClickStatus reports what a click did.
type ClickStatus int

const (
	// ClickIgnored means no target was being timed.
	ClickIgnored ClickStatus = iota
	// ClickMissed means the cursor was outside the target; timing continues.
	ClickMissed
	// ClickWarmup means the target was hit during warm-up and nothing was recorded.
	ClickWarmup
	// ClickRecorded means a measurement was emitted.
	ClickRecorded
	// ClickComplete means the final measurement was emitted and the session is over.
	ClickComplete
)

func (s ClickStatus) String() string {
	switch s {
	case ClickIgnored:
		return "ignored"
	case ClickMissed:
		return "missed"
	case ClickWarmup:
		return "warmup"
	case ClickRecorded:
		return "recorded"
	case ClickComplete:
		return "complete"
	default:
		return fmt.Sprintf("ClickStatus(%d)", int(s))
	}
}

// ClickResult is returned by OnClick. Measurement is set for ClickRecorded and
// ClickComplete.
type ClickResult struct {
	Status      ClickStatus
	Measurement model.Measurement
}

// Machine holds the state of a running experiment. It is not safe for
// concurrent use; a single loop must drive it.
type Machine struct {
	cfg    model.Experiment
	placer Placer

	phase          Phase
	targetPos      model.Point
	targetDistance float64
	cursor         model.Point
	moved          bool

	index  uint32
	warmup bool
	done   bool
}

// New constructs a Machine in the settling phase with a freshly placed target.
func New(cfg model.Experiment, placer Placer) *Machine {
	m := &Machine{
		cfg:    cfg,
		placer: placer,
		phase:  settling(),
		warmup: cfg.IgnoreFirst > 0,
	}
	m.nextTarget()
	return m
}

// Tick advances time-dependent phases by dt.
func (m *Machine) Tick(dt time.Duration) {
	switch m.phase.Kind {
	case PhaseSettling:
		if !m.moved {
			m.phase = delay(0)
		}
	case PhaseDelay:
		switch {
		case m.moved:
			m.phase = settling()
		case m.phase.Elapsed+dt >= m.cfg.Delay:
			m.phase = armed()
		default:
			m.phase = delay(m.phase.Elapsed + dt)
		}
	case PhaseArmed:
		if m.moved {
			m.phase = timing(0)
		}
	case PhaseTiming:
		m.phase = timing(m.phase.Elapsed + dt)
	default:
		panic(fmt.Sprintf("trial: unknown phase %v", m.phase.Kind))
	}
	m.moved = false
}

// OnMouseMove records a cursor sample for the current frame.
func (m *Machine) OnMouseMove(p model.Point) {
	m.cursor = p
	m.moved = true
}

// OnClick handles a left-button press at the last known cursor position.
func (m *Machine) OnClick() ClickResult {
	if m.done || m.phase.Kind != PhaseTiming {
		return ClickResult{Status: ClickIgnored}
	}
	if !m.hit(m.cursor) {
		return ClickResult{Status: ClickMissed}
	}

	elapsed := m.phase.Elapsed
	result := ClickResult{Status: ClickWarmup}
	switch {
	case m.warmup && int(m.index) >= m.cfg.IgnoreFirst:
		// The crossing click ends warm-up without being measured.
		m.warmup = false
		m.index = 0
	case m.warmup:
		m.index++
	default:
		result.Measurement = model.Measurement{
			Index:    m.index,
			Distance: m.targetDistance,
			Elapsed:  elapsed,
		}
		result.Status = ClickRecorded
		if int(m.index) >= m.cfg.Trials-1 {
			result.Status = ClickComplete
			m.done = true
		}
		m.index++
	}

	m.phase = settling()
	m.nextTarget()
	return result
}

// TargetVisible reports whether a target should be drawn.
func (m *Machine) TargetVisible() bool {
	switch m.phase.Kind {
	case PhaseArmed, PhaseTiming:
		return true
	case PhaseSettling, PhaseDelay:
		return false
	default:
		return false
	}
}

// Target returns the top-left corner of the current target.
func (m *Machine) Target() model.Point {
	return m.targetPos
}

// TargetDistance returns the distance fixed when the current target was placed.
func (m *Machine) TargetDistance() float64 {
	return m.targetDistance
}

// Phase returns the active phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Index returns the trial counter. During warm-up it counts warm-up targets.
func (m *Machine) Index() uint32 {
	return m.index
}

// Warmup reports whether clicks are still being discarded.
func (m *Machine) Warmup() bool {
	return m.warmup
}

// Done reports whether the final measurement has been emitted.
func (m *Machine) Done() bool {
	return m.done
}

// Config returns the experiment settings.
func (m *Machine) Config() model.Experiment {
	return m.cfg
}

// hit uses a closed range on x and a half-open range on y.
func (m *Machine) hit(p model.Point) bool {
	size := float64(m.cfg.TargetSize)
	x1, y1 := m.targetPos.X, m.targetPos.Y
	x2, y2 := x1+size, y1+size
	return x1 <= p.X && p.X <= x2 && y1 <= p.Y && p.Y < y2
}

func (m *Machine) nextTarget() {
	m.targetPos, m.targetDistance = m.placer.Generate(m.cfg.Bounds, m.cfg.TargetSize, m.cursor)
}
