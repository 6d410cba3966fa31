package models

import "github.com/VincentCucchietti/hipparchus/internal/ode"

// Exponential is y' = k·y, with exact solution y0·exp(k·t).
type Exponential struct {
	Rate float64
}

func NewExponential() *Exponential {
	return &Exponential{Rate: 1.0}
}

func (e *Exponential) Dimension() int {
	return 1
}

func (e *Exponential) Derivatives(t float64, y ode.State) ode.State {
	return ode.State{e.Rate * y[0]}
}
