// Package sim drives ODE integrations: it loops a fixed-step stepper over
// the requested time span, intersects every tentative step with the event
// controller, and emits committed steps to registered handlers.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/VincentCucchietti/hipparchus/internal/events"
	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Integrator owns the main integration loop. Configure it with step
// handlers and event detectors before calling Integrate; a single
// instance must not be used concurrently.
type Integrator struct {
	stepper  ode.Stepper
	step     float64
	handlers []ode.StepHandler
	events   *events.Controller
}

// New builds a driver around a stepper and a positive nominal step size.
// The sign of the actual steps follows the integration direction.
func New(stepper ode.Stepper, step float64) (*Integrator, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step size must be positive, got %g", step)
	}
	return &Integrator{
		stepper:  stepper,
		step:     step,
		handlers: make([]ode.StepHandler, 0),
		events:   events.NewController(),
	}, nil
}

func (g *Integrator) AddStepHandler(h ode.StepHandler) {
	g.handlers = append(g.handlers, h)
}

// AddEventDetector registers a detector before integration starts.
// Registration order breaks ties between detectors firing at the same
// time: the earliest registered wins.
func (g *Integrator) AddEventDetector(d events.Detector, maxCheck, convergence float64, maxIter int) {
	g.events.Add(d, maxCheck, convergence, maxIter)
}

// Integrate advances the system from (t0, y0) until finalTime or a Stop
// event, whichever comes first, and returns the state, derivative and
// time where the integration ended. On error the returned state is the
// last committed one; steps already emitted to handlers stand.
func (g *Integrator) Integrate(ctx context.Context, sys ode.System, y0 ode.State, t0, finalTime float64) (ode.StateAndDerivative, error) {
	if len(y0) != sys.Dimension() {
		return ode.StateAndDerivative{}, fmt.Errorf("%w: state has %d components, system wants %d",
			ode.ErrDimensionMismatch, len(y0), sys.Dimension())
	}

	cur := ode.StateAndDerivative{
		Time:       t0,
		State:      y0.Clone(),
		Derivative: sys.Derivatives(t0, y0),
	}
	if finalTime == t0 {
		return cur, nil
	}

	forward := finalTime > t0
	g.events.Reinitialize(t0, cur.State)

	// Termination is judged at step-size scale: a committed step ending
	// within tol of finalTime is the last one.
	tol := 1e-10 * g.step

	stepSize := clipStep(g.step, forward, cur.Time, finalTime)
	stepCount := 0

	for {
		select {
		case <-ctx.Done():
			return cur, &ode.IntegrationError{Step: stepCount, Time: cur.Time, Wrapped: ctx.Err()}
		default:
		}

		end, interp, err := g.stepper.Step(sys, cur, stepSize)
		if err != nil {
			return cur, &ode.IntegrationError{Step: stepCount, Time: cur.Time, Wrapped: err}
		}

		var fired *events.Monitor
		if !g.events.Empty() {
			fired, err = g.events.EvaluateStep(interp)
			if err != nil {
				return cur, &ode.IntegrationError{Step: stepCount, Time: cur.Time, Wrapped: err}
			}
		}

		var isLast bool
		if fired != nil {
			cur, isLast, err = g.commitEvent(sys, interp, cur, fired, forward, finalTime, tol)
			if err != nil {
				return cur, &ode.IntegrationError{Step: stepCount, Time: cur.Time, Wrapped: err}
			}
		} else {
			isLast = reached(forward, end.Time, finalTime, tol)
			g.notify(interp, isLast)
			g.events.StepAccepted(end.Time, end.State, nil)
			cur = end
		}
		stepCount++
		if isLast {
			return cur, nil
		}

		stepSize = clipStep(g.step, forward, cur.Time, finalTime)
	}
}

// commitEvent truncates the tentative step at the located event, runs the
// detector's handler and applies its action.
func (g *Integrator) commitEvent(sys ode.System, interp ode.Interpolator, from ode.StateAndDerivative,
	fired *events.Monitor, forward bool, finalTime, tol float64) (ode.StateAndDerivative, bool, error) {

	te := fired.PendingTime()
	y := interp.StateAt(te)
	action := fired.Accept(te, y)

	var next ode.StateAndDerivative
	switch action {
	case events.Stop:
		next = ode.StateAndDerivative{Time: te, State: y, Derivative: interp.DerivativeAt(te)}
	case events.ResetState:
		newY := fired.Detector().NewState(te, y)
		if len(newY) != sys.Dimension() {
			return from, false, fmt.Errorf("%w: reset state has %d components, system wants %d",
				ode.ErrDimensionMismatch, len(newY), sys.Dimension())
		}
		next = ode.StateAndDerivative{Time: te, State: newY.Clone(), Derivative: sys.Derivatives(te, newY)}
	case events.ResetDerivatives:
		next = ode.StateAndDerivative{Time: te, State: y, Derivative: sys.Derivatives(te, y)}
	default:
		next = ode.StateAndDerivative{Time: te, State: y, Derivative: interp.DerivativeAt(te)}
	}

	isLast := action == events.Stop || reached(forward, te, finalTime, tol)
	g.notify(interp.Restrict(from.Time, te), isLast)

	if action == events.ResetState {
		g.events.Reinitialize(te, next.State)
	} else {
		g.events.StepAccepted(te, next.State, fired)
	}
	return next, isLast, nil
}

func (g *Integrator) notify(interp ode.Interpolator, isLast bool) {
	for _, h := range g.handlers {
		h.HandleStep(interp, isLast)
	}
}

// clipStep returns the signed step from t toward finalTime, shrunk so the
// step never overshoots.
func clipStep(step float64, forward bool, t, finalTime float64) float64 {
	h := step
	if !forward {
		h = -step
	}
	if remaining := finalTime - t; math.Abs(h) >= math.Abs(remaining) {
		h = remaining
	}
	return h
}

func reached(forward bool, t, finalTime, tol float64) bool {
	if forward {
		return t >= finalTime-tol
	}
	return t <= finalTime+tol
}
