package events

import (
	"math"
	"testing"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

func TestControllerEarliestWins(t *testing.T) {
	c := NewController()
	late := TimeTrigger{T: 0.7, Action: Stop}
	early := TimeTrigger{T: 0.3, Action: Stop}
	c.Add(late, 0.1, 1e-9, 100)
	c.Add(early, 0.1, 1e-9, 100)
	c.Reinitialize(0, ode.State{0})

	fired, err := c.EvaluateStep(lineInterp{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if fired == nil {
		t.Fatal("expected an event")
	}
	if math.Abs(fired.PendingTime()-0.3) > 1e-8 {
		t.Errorf("expected the crossing at 0.3, got %.12f", fired.PendingTime())
	}
}

func TestControllerBackwardEarliestWins(t *testing.T) {
	c := NewController()
	c.Add(TimeTrigger{T: 0.3, Action: Stop}, 0.1, 1e-9, 100)
	c.Add(TimeTrigger{T: 0.7, Action: Stop}, 0.1, 1e-9, 100)
	c.Reinitialize(1, ode.State{1})

	fired, err := c.EvaluateStep(lineInterp{1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if fired == nil {
		t.Fatal("expected an event")
	}
	// Integrating backward, the crossing nearer the step start comes
	// first.
	if math.Abs(fired.PendingTime()-0.7) > 1e-8 {
		t.Errorf("expected the crossing at 0.7, got %.12f", fired.PendingTime())
	}
}

func TestControllerRegistrationOrderBreaksTies(t *testing.T) {
	first := &funcDetector{g: func(tt float64, y ode.State) float64 { return tt - 0.5 }}
	second := &funcDetector{g: func(tt float64, y ode.State) float64 { return tt - 0.5 }}

	c := NewController()
	c.Add(first, 0.1, 1e-9, 100)
	c.Add(second, 0.1, 1e-9, 100)
	c.Reinitialize(0, ode.State{0})

	fired, err := c.EvaluateStep(lineInterp{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if fired == nil {
		t.Fatal("expected an event")
	}
	if fired.Detector() != Detector(first) {
		t.Error("tie must go to the first registered detector")
	}
}

func TestControllerEmpty(t *testing.T) {
	c := NewController()
	if !c.Empty() {
		t.Error("expected empty controller")
	}

	fired, err := c.EvaluateStep(lineInterp{0, 1})
	if err != nil {
		t.Fatal(err)
	}
	if fired != nil {
		t.Error("empty controller reported an event")
	}
}

func TestControllerStepAcceptedSkipsFired(t *testing.T) {
	c := NewController()
	c.Add(TimeTrigger{T: 0.5, Action: Continue}, 0.1, 1e-9, 100)
	c.Add(TimeTrigger{T: 5, Action: Stop}, 0.1, 1e-9, 100)
	c.Reinitialize(0, ode.State{0})

	fired, err := c.EvaluateStep(lineInterp{0, 1})
	if err != nil || fired == nil {
		t.Fatalf("fired=%v err=%v", fired, err)
	}

	te := fired.PendingTime()
	fired.Accept(te, ode.State{te})
	c.StepAccepted(te, ode.State{te}, fired)

	// The fired monitor's baseline was folded by Accept; re-scanning the
	// remainder of the span must not replay the handled crossing.
	fired2, err := c.EvaluateStep(lineInterp{te, 1})
	if err != nil {
		t.Fatal(err)
	}
	if fired2 != nil {
		t.Errorf("unexpected second event at %.12f", fired2.PendingTime())
	}
}
