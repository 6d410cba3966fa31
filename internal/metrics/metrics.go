// Package metrics provides step-handler-based observers that summarize an
// integration run.
package metrics

import (
	"math"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Metric is a named scalar summary accumulated over an integration run.
// Metrics observing committed steps also implement [ode.StepHandler].
type Metric interface {
	Name() string
	Value() float64
	Reset()
}

// StepCount counts committed steps.
type StepCount struct {
	steps int
}

func NewStepCount() *StepCount { return &StepCount{} }

func (s *StepCount) Name() string { return "steps" }

func (s *StepCount) HandleStep(interp ode.Interpolator, isLast bool) { s.steps++ }

func (s *StepCount) Value() float64 { return float64(s.steps) }

func (s *StepCount) Reset() { s.steps = 0 }

// EnergyDrift tracks the maximal relative energy drift of a Hamiltonian
// system, evaluated at committed step ends.
type EnergyDrift struct {
	sys      ode.Hamiltonian
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(sys ode.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{sys: sys}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) HandleStep(interp ode.Interpolator, isLast bool) {
	energy := e.sys.Energy(interp.StateAt(interp.CurrentTime()))
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++
	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
