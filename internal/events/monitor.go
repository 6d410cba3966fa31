package events

import (
	"math"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Monitor tracks one registered detector across steps: the sign of g at
// the current step start, and the located crossing inside the step under
// evaluation, if any.
type Monitor struct {
	detector    Detector
	maxCheck    float64
	convergence float64
	maxIter     int

	g0Positive  bool
	pending     bool
	pendingTime float64
}

func NewMonitor(d Detector, maxCheck, convergence float64, maxIter int) *Monitor {
	return &Monitor{
		detector:    d,
		maxCheck:    maxCheck,
		convergence: convergence,
		maxIter:     maxIter,
	}
}

func (m *Monitor) Detector() Detector { return m.detector }

// Reinitialize samples the switching function sign at a fresh step start.
// Called at integration start and after a state reset.
func (m *Monitor) Reinitialize(t float64, y ode.State) {
	m.g0Positive = m.detector.G(t, y) >= 0
	m.pending = false
}

// EvaluateStep scans the step covered by interp for a sign change,
// sampling at most maxCheck apart, and locates the earliest crossing by
// bisection on the dense output. It reports whether an event is pending.
func (m *Monitor) EvaluateStep(interp ode.Interpolator) (bool, error) {
	m.pending = false
	t0 := interp.PreviousTime()
	t1 := interp.CurrentTime()
	dt := t1 - t0

	n := 1
	if m.maxCheck > 0 {
		n = int(math.Ceil(math.Abs(dt) / m.maxCheck))
		if n < 1 {
			n = 1
		}
	}
	h := dt / float64(n)

	g := func(t float64) float64 { return m.detector.G(t, interp.StateAt(t)) }

	ta := t0
	for i := 0; i < n; i++ {
		tb := t1
		if i < n-1 {
			tb = t0 + float64(i+1)*h
		}
		if (g(tb) >= 0) != m.g0Positive {
			root, err := Bisect(g, ta, tb, m.convergence, m.maxIter)
			if err != nil {
				return false, err
			}
			m.pending = true
			m.pendingTime = root
			return true, nil
		}
		ta = tb
	}
	return false, nil
}

// PendingTime returns the located crossing of the last EvaluateStep call.
func (m *Monitor) PendingTime() float64 { return m.pendingTime }

// Accept commits the pending event: it invokes the detector's handler
// with the crossing direction and folds the tracked sign, since by
// contract g alternates across the event.
func (m *Monitor) Accept(t float64, y ode.State) Action {
	increasing := !m.g0Positive
	m.g0Positive = !m.g0Positive
	m.pending = false
	return m.detector.Occurred(t, y, increasing)
}

// Advance re-anchors the sign baseline at a committed step end for
// monitors that did not fire during the step.
func (m *Monitor) Advance(t float64, y ode.State) {
	m.g0Positive = m.detector.G(t, y) >= 0
}
