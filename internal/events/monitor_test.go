package events

import (
	"errors"
	"math"
	"testing"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// lineInterp is a trivial dense output whose single state component is
// the time itself, so detectors see g(t, {t}).
type lineInterp struct {
	t0, t1 float64
}

func (l lineInterp) PreviousTime() float64 { return l.t0 }
func (l lineInterp) CurrentTime() float64  { return l.t1 }
func (l lineInterp) IsForward() bool       { return l.t1 > l.t0 }

func (l lineInterp) StateAt(t float64) ode.State      { return ode.State{t} }
func (l lineInterp) DerivativeAt(t float64) ode.State { return ode.State{1} }

func (l lineInterp) Restrict(softPrev, softCur float64) ode.Interpolator {
	return lineInterp{softPrev, softCur}
}

type funcDetector struct {
	g      func(t float64, y ode.State) float64
	action Action
}

func (d *funcDetector) G(t float64, y ode.State) float64 { return d.g(t, y) }

func (d *funcDetector) Occurred(t float64, y ode.State, increasing bool) Action { return d.action }

func (d *funcDetector) NewState(t float64, y ode.State) ode.State { return y }

func TestMonitorLocatesCrossing(t *testing.T) {
	m := NewMonitor(TimeTrigger{T: 0.5, Action: Stop}, 0.1, 1e-9, 100)
	m.Reinitialize(0, ode.State{0})

	occurred, err := m.EvaluateStep(lineInterp{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !occurred {
		t.Fatal("expected a pending event")
	}
	if math.Abs(m.PendingTime()-0.5) > 1e-8 {
		t.Errorf("located at %.12f, want 0.5", m.PendingTime())
	}
}

func TestMonitorNoCrossing(t *testing.T) {
	m := NewMonitor(TimeTrigger{T: 5, Action: Stop}, 0.1, 1e-9, 100)
	m.Reinitialize(0, ode.State{0})

	occurred, err := m.EvaluateStep(lineInterp{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if occurred {
		t.Error("expected no event")
	}
}

func TestMonitorBackwardCrossing(t *testing.T) {
	m := NewMonitor(TimeTrigger{T: 0.5, Action: Stop}, 0.1, 1e-9, 100)
	m.Reinitialize(1, ode.State{1})

	occurred, err := m.EvaluateStep(lineInterp{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !occurred {
		t.Fatal("expected a pending event")
	}
	if math.Abs(m.PendingTime()-0.5) > 1e-8 {
		t.Errorf("located at %.12f, want 0.5", m.PendingTime())
	}
}

func TestMonitorSignFoldsAfterAccept(t *testing.T) {
	m := NewMonitor(TimeTrigger{T: 0.5, Action: Continue}, 0.1, 1e-9, 100)
	m.Reinitialize(0, ode.State{0})

	occurred, err := m.EvaluateStep(lineInterp{0, 1})
	if err != nil || !occurred {
		t.Fatalf("occurred=%v err=%v", occurred, err)
	}

	te := m.PendingTime()
	if action := m.Accept(te, ode.State{te}); action != Continue {
		t.Errorf("expected Continue, got %v", action)
	}

	// After the fold the baseline is positive and the rest of the step
	// holds no further crossing.
	occurred, err = m.EvaluateStep(lineInterp{te, 1})
	if err != nil {
		t.Fatal(err)
	}
	if occurred {
		t.Error("same crossing reported twice")
	}
}

func TestMonitorMaxCheckCatchesShortExcursion(t *testing.T) {
	// g dips negative only on (0.4, 0.6). Endpoint sampling alone misses
	// it; subdividing at maxCheck resolution must not.
	dip := &funcDetector{
		g: func(tt float64, y ode.State) float64 { return (tt - 0.4) * (tt - 0.6) },
	}

	coarse := NewMonitor(dip, 1, 1e-9, 100)
	coarse.Reinitialize(0, ode.State{0})
	occurred, err := coarse.EvaluateStep(lineInterp{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if occurred {
		t.Error("endpoint sampling should miss the excursion")
	}

	fine := NewMonitor(dip, 0.05, 1e-9, 100)
	fine.Reinitialize(0, ode.State{0})
	occurred, err = fine.EvaluateStep(lineInterp{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if !occurred {
		t.Fatal("subdivided scan missed the excursion")
	}
	if math.Abs(fine.PendingTime()-0.4) > 1e-8 {
		t.Errorf("located at %.12f, want first crossing 0.4", fine.PendingTime())
	}
}

func TestMonitorContractViolation(t *testing.T) {
	// When a detector breaks the alternation contract the tracked sign
	// drifts out of sync with g, and the next scan reports a crossing
	// that bisection cannot bracket.
	m := NewMonitor(&funcDetector{
		g: func(tt float64, y ode.State) float64 { return tt - 0.5 },
	}, 1, 1e-9, 100)

	m.Reinitialize(0, ode.State{0})
	occurred, err := m.EvaluateStep(lineInterp{0, 1})
	if err != nil || !occurred {
		t.Fatalf("occurred=%v err=%v", occurred, err)
	}
	m.Accept(m.PendingTime(), ode.State{m.PendingTime()})

	// Force the baseline out of sync: fold again without a real event.
	m.Accept(m.PendingTime(), ode.State{m.PendingTime()})

	_, err = m.EvaluateStep(lineInterp{0.6, 1})
	if !errors.Is(err, ode.ErrNoBracketing) {
		t.Errorf("expected ErrNoBracketing, got %v", err)
	}
}
