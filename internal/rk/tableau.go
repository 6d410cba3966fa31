// Package rk implements explicit fixed-step Runge-Kutta methods driven by
// Butcher tableau data, together with dense output over completed steps.
package rk

import (
	"fmt"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Tableau holds the constant data of one explicit Runge-Kutta method:
//
//	 0  |
//	c1  | a00
//	c2  | a10  a11
//	... |        ...
//	    |------------------
//	    |  b0   b1  ...  bs
//
// C omits the leading zero and A omits the empty first row, so row i of A
// carries exactly i+1 coefficients. Order conditions are not verified; the
// engine only enforces the shapes.
type Tableau struct {
	Name  string
	Order int
	C     []float64
	A     [][]float64
	B     []float64

	// Dense holds the continuous-extension weights: stage l contributes
	// b_l(θ) = θ·(Dense[l][0] + θ·(Dense[l][1] + θ·Dense[l][2])) to the
	// state at the normalized time θ. Dense[l] must satisfy b_l(1) = B[l].
	// When nil, interpolation falls back to cubic Hermite over the step
	// boundaries.
	Dense [][3]float64
}

func (t Tableau) Stages() int { return len(t.B) }

// Validate checks the tableau shapes. It does not check order conditions:
// consistency is the tableau author's responsibility.
func (t Tableau) Validate() error {
	stages := len(t.B)
	if stages == 0 {
		return fmt.Errorf("%w: %s has no output weights", ode.ErrBadTableau, t.Name)
	}
	if len(t.C) != stages-1 {
		return fmt.Errorf("%w: %s has %d time fractions, want %d",
			ode.ErrBadTableau, t.Name, len(t.C), stages-1)
	}
	if len(t.A) != stages-1 {
		return fmt.Errorf("%w: %s has %d coupling rows, want %d",
			ode.ErrBadTableau, t.Name, len(t.A), stages-1)
	}
	for i, row := range t.A {
		if len(row) != i+1 {
			return fmt.Errorf("%w: %s coupling row %d has %d entries, want %d",
				ode.ErrBadTableau, t.Name, i, len(row), i+1)
		}
	}
	if t.Dense != nil && len(t.Dense) != stages {
		return fmt.Errorf("%w: %s has %d dense weight rows, want %d",
			ode.ErrBadTableau, t.Name, len(t.Dense), stages)
	}
	return nil
}

// denseWeight evaluates the continuous-extension weight of stage l at θ.
func (t Tableau) denseWeight(l int, theta float64) float64 {
	d := t.Dense[l]
	return theta * (d[0] + theta*(d[1]+theta*d[2]))
}

// denseWeightDot evaluates dθ b_l(θ), the derivative weight of stage l.
func (t Tableau) denseWeightDot(l int, theta float64) float64 {
	d := t.Dense[l]
	return d[0] + theta*(2*d[1]+theta*3*d[2])
}
