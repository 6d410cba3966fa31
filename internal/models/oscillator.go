package models

import "github.com/VincentCucchietti/hipparchus/internal/ode"

// Oscillator is the undamped harmonic oscillator x'' = -ω²x, as state
// [position, velocity].
type Oscillator struct {
	Omega float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega: 1.0}
}

func (o *Oscillator) Dimension() int {
	return 2
}

func (o *Oscillator) Derivatives(t float64, y ode.State) ode.State {
	return ode.State{y[1], -o.Omega * o.Omega * y[0]}
}

func (o *Oscillator) Energy(y ode.State) float64 {
	return 0.5*y[1]*y[1] + 0.5*o.Omega*o.Omega*y[0]*y[0]
}
