// Package session connects the trial state machine to the report output.
package session

import (
	"fmt"
	"time"

	"github.com/verte-zerg/pointspeed/internal/model"
	"github.com/verte-zerg/pointspeed/internal/report"
	"github.com/verte-zerg/pointspeed/internal/trial"
)

// Session drives one experiment and writes its results.
type Session struct {
	machine  *trial.Machine
	out      *report.Writer
	recorded int
	last     trial.ClickStatus
}

// New starts a session and writes the output header.
func New(cfg model.Experiment, placer trial.Placer, out *report.Writer) (*Session, error) {
	if err := out.WriteHeader(cfg.Bounds); err != nil {
		return nil, err
	}
	return &Session{
		machine: trial.New(cfg, placer),
		out:     out,
	}, nil
}

// Move forwards a cursor sample.
func (s *Session) Move(p model.Point) {
	s.machine.OnMouseMove(p)
}

// Click forwards a left-button press. It reports done once the final
// measurement has been written and flushed.
func (s *Session) Click() (bool, error) {
	res := s.machine.OnClick()
	s.last = res.Status
	switch res.Status {
	case trial.ClickRecorded, trial.ClickComplete:
		s.recorded++
		if err := s.out.WriteMeasurement(res.Measurement); err != nil {
			return false, err
		}
	case trial.ClickIgnored, trial.ClickMissed, trial.ClickWarmup:
		return false, nil
	default:
		return false, fmt.Errorf("unexpected click status %v", res.Status)
	}
	if res.Status != trial.ClickComplete {
		return false, nil
	}
	if err := s.out.Flush(); err != nil {
		return true, err
	}
	return true, nil
}

// Tick advances the session clock.
func (s *Session) Tick(dt time.Duration) {
	s.machine.Tick(dt)
}

// Target returns the target origin and whether it should be drawn.
func (s *Session) Target() (model.Point, bool) {
	return s.machine.Target(), s.machine.TargetVisible()
}

// TargetSize returns the side length of the target square.
func (s *Session) TargetSize() int {
	return s.machine.Config().TargetSize
}

// Phase returns the active trial phase.
func (s *Session) Phase() trial.Phase {
	return s.machine.Phase()
}

// Progress returns the number of recorded trials and the session total.
func (s *Session) Progress() (int, int) {
	return s.recorded, s.machine.Config().Trials
}

// Warmup reports whether clicks are still warm-up clicks, and how many
// warm-up targets have been hit so far.
func (s *Session) Warmup() (bool, int) {
	if !s.machine.Warmup() {
		return false, 0
	}
	return true, int(s.machine.Index())
}

// LastClick returns the status of the most recent click.
func (s *Session) LastClick() trial.ClickStatus {
	return s.last
}

// Done reports whether every trial has been recorded.
func (s *Session) Done() bool {
	return s.machine.Done()
}

// Close flushes any buffered output.
func (s *Session) Close() error {
	return s.out.Flush()
}
