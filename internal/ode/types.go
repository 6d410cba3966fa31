package ode

import "math"

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// StateAndDerivative is an integration state captured at a fixed time
// together with the derivative of the state at that time. Once a value is
// used as a step boundary it must not be mutated.
type StateAndDerivative struct {
	Time       float64
	State      State
	Derivative State
}

func (s StateAndDerivative) Clone() StateAndDerivative {
	return StateAndDerivative{
		Time:       s.Time,
		State:      s.State.Clone(),
		Derivative: s.Derivative.Clone(),
	}
}

// System is the right-hand side of an ODE. Derivatives must be a pure
// function of (t, y) for dense output to be meaningful.
type System interface {
	Dimension() int
	Derivatives(t float64, y State) State
}

// Hamiltonian is implemented by systems with a conserved energy.
type Hamiltonian interface {
	Energy(y State) float64
}

// Stepper advances the state by a single step of size h, returning the
// state and derivative at the step end and an interpolator valid inside
// the step.
type Stepper interface {
	Step(sys System, from StateAndDerivative, h float64) (StateAndDerivative, Interpolator, error)
}

// Interpolator answers state queries inside one completed step without
// further derivative evaluations. PreviousTime and CurrentTime report the
// soft bounds; queries slightly outside them are permitted during event
// bisection.
type Interpolator interface {
	PreviousTime() float64
	CurrentTime() float64
	IsForward() bool
	StateAt(t float64) State
	DerivativeAt(t float64) State

	// Restrict returns a view of the same step narrowed to soft bounds,
	// as handed to step handlers after event truncation.
	Restrict(softPrev, softCur float64) Interpolator
}

// StepHandler receives every committed step. Handlers must not retain the
// interpolator past the call.
type StepHandler interface {
	HandleStep(interp Interpolator, isLast bool)
}

// StepHandlerFunc adapts a function to the StepHandler interface.
type StepHandlerFunc func(interp Interpolator, isLast bool)

func (f StepHandlerFunc) HandleStep(interp Interpolator, isLast bool) { f(interp, isLast) }
