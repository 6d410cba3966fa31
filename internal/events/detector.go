// Package events implements discrete event detection for ODE integration:
// switching functions whose sign changes mark events, bracketed root
// location on the dense output, and the per-step intersection of all
// registered detectors.
package events

import (
	"fmt"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Action selects what the integration does after an event.
type Action int

const (
	// Continue proceeds with the truncated step as-is.
	Continue Action = iota
	// ResetDerivatives recomputes the derivative at the event time
	// without changing the state vector.
	ResetDerivatives
	// ResetState replaces the state vector with the detector's
	// NewState result and recomputes derivatives from it.
	ResetState
	// Stop terminates the integration at the event time.
	Stop
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case ResetDerivatives:
		return "reset-derivatives"
	case ResetState:
		return "reset-state"
	case Stop:
		return "stop"
	}
	return "unknown"
}

// ParseAction resolves an action name as used in run configurations.
func ParseAction(s string) (Action, error) {
	switch s {
	case "continue", "":
		return Continue, nil
	case "reset-derivatives":
		return ResetDerivatives, nil
	case "reset-state":
		return ResetState, nil
	case "stop":
		return Stop, nil
	}
	return Continue, fmt.Errorf("unknown event action: %s", s)
}

// Detector defines a switching function g whose sign changes mark events.
//
// Contract: after an event is declared at t*, the sign of g just past t*
// must be the opposite of its sign just before. The engine cannot verify
// this; a violating detector surfaces as [ode.ErrNoBracketing] on a later
// step.
type Detector interface {
	// G is the switching function. It must be continuous inside a step.
	G(t float64, y ode.State) float64

	// Occurred is called once the event time has been located.
	// increasing reports whether g crosses from negative to positive.
	Occurred(t float64, y ode.State, increasing bool) Action

	// NewState supplies the replacement state after a ResetState action.
	// Detectors that never return ResetState should return y unchanged.
	NewState(t float64, y ode.State) ode.State
}

// TimeTrigger fires when the integration time crosses T.
type TimeTrigger struct {
	T      float64
	Action Action
}

func (d TimeTrigger) G(t float64, y ode.State) float64 { return t - d.T }

func (d TimeTrigger) Occurred(t float64, y ode.State, increasing bool) Action { return d.Action }

func (d TimeTrigger) NewState(t float64, y ode.State) ode.State { return y }

// Threshold fires when state component Index crosses Value.
type Threshold struct {
	Index  int
	Value  float64
	Action Action
}

func (d Threshold) G(t float64, y ode.State) float64 { return y[d.Index] - d.Value }

func (d Threshold) Occurred(t float64, y ode.State, increasing bool) Action { return d.Action }

func (d Threshold) NewState(t float64, y ode.State) ode.State { return y }
