package models

import (
	"math"
	"testing"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()

	d := p.Derivatives(0, ode.State{0, 0})
	if d[0] != 0 || d[1] != 0 {
		t.Errorf("hanging at rest should not accelerate: got %v", d)
	}
}

func TestPendulumRestoring(t *testing.T) {
	p := NewPendulum()

	d := p.Derivatives(0, ode.State{0.5, 0})
	if d[1] >= 0 {
		t.Errorf("positive displacement should give negative acceleration, got %g", d[1])
	}

	d = p.Derivatives(0, ode.State{-0.5, 0})
	if d[1] <= 0 {
		t.Errorf("negative displacement should give positive acceleration, got %g", d[1])
	}
}

func TestPendulumEnergy(t *testing.T) {
	p := NewPendulum()

	if e := p.Energy(ode.State{0, 0}); e != 0 {
		t.Errorf("rest energy: got %g, want 0", e)
	}

	// Inverted pendulum: potential energy 2gL.
	e := p.Energy(ode.State{math.Pi, 0})
	if math.Abs(e-2*p.Gravity*p.Length) > 1e-12 {
		t.Errorf("inverted energy: got %g, want %g", e, 2*p.Gravity*p.Length)
	}
}
