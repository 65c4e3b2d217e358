// File: game/stepper.go
package game

import (
	"time"

	"github.com/lguibr/tiltmaze/utils"
)

// Stepper converts irregular wall-clock frames into a whole number of
// fixed-size physics steps using an accumulator. Rendering cadence and
// simulation cadence stay decoupled: a slow frame yields several steps, a
// fast one may yield none.
type Stepper struct {
	step        time.Duration
	max         time.Duration
	last        time.Time
	accumulator time.Duration
}

// NewStepper creates a stepper with the configured step period and frame
// delta cap.
func NewStepper(cfg utils.Config) *Stepper {
	return &Stepper{step: cfg.PhysicsStepPeriod, max: cfg.MaxFrameDelta}
}

// Advance records a new frame time and returns how many whole physics steps
// are now due. The very first call only establishes the reference time and
// returns zero. The wall-clock delta is capped so a stall (debugger pause,
// suspended process) cannot produce a burst of catch-up steps.
func (s *Stepper) Advance(now time.Time) int {
	if s.last.IsZero() {
		s.last = now
		return 0
	}
	delta := now.Sub(s.last)
	s.last = now
	if delta < 0 {
		return 0
	}
	if delta > s.max {
		delta = s.max
	}
	s.accumulator += delta

	steps := 0
	for s.accumulator >= s.step {
		s.accumulator -= s.step
		steps++
	}
	return steps
}

// Reset drops the reference time and any accumulated remainder, so the next
// Advance starts a fresh frame sequence. Used when the simulation resumes
// after a pause.
func (s *Stepper) Reset() {
	s.last = time.Time{}
	s.accumulator = 0
}
