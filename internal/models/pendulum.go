package models

import (
	"math"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Pendulum is the undamped nonlinear pendulum θ'' = -(g/L)·sin θ, as
// state [angle, angular velocity].
type Pendulum struct {
	Length  float64
	Gravity float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Length:  1.0,
		Gravity: 9.81,
	}
}

func (p *Pendulum) Dimension() int {
	return 2
}

func (p *Pendulum) Derivatives(t float64, y ode.State) ode.State {
	theta := y[0]
	omega := y[1]
	return ode.State{omega, -p.Gravity / p.Length * math.Sin(theta)}
}

func (p *Pendulum) Energy(y ode.State) float64 {
	return 0.5*p.Length*p.Length*y[1]*y[1] + p.Gravity*p.Length*(1-math.Cos(y[0]))
}
