// Package analysis provides numerical diagnostics for integration
// methods: empirical convergence order and chaos indicators.
package analysis

import (
	"math"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
)

// GlobalError integrates sys over [t0, t1] with a fixed step and returns
// the euclidean distance between the numerical and the exact end state.
func GlobalError(sys ode.System, tab rk.Tableau, y0 ode.State, t0, t1, h float64, exact ode.State) (float64, error) {
	stepper, err := rk.NewStepper(tab)
	if err != nil {
		return 0, err
	}

	cur := ode.StateAndDerivative{
		Time:       t0,
		State:      y0.Clone(),
		Derivative: sys.Derivatives(t0, y0),
	}
	steps := int(math.Round((t1 - t0) / h))
	for i := 0; i < steps; i++ {
		next, _, err := stepper.Step(sys, cur, h)
		if err != nil {
			return 0, err
		}
		cur = next
	}

	diff := make(ode.State, len(exact))
	for i := range exact {
		diff[i] = cur.State[i] - exact[i]
	}
	return diff.Norm(), nil
}

// EstimateOrder measures the empirical convergence order of a method on a
// reference problem: the global error is sampled at h and h/2 and the
// order read off the error ratio. The estimate approaches the method's
// theoretical order as h shrinks into the asymptotic regime.
func EstimateOrder(sys ode.System, tab rk.Tableau, y0 ode.State, t0, t1, h float64, exact ode.State) (float64, error) {
	coarse, err := GlobalError(sys, tab, y0, t0, t1, h, exact)
	if err != nil {
		return 0, err
	}
	fine, err := GlobalError(sys, tab, y0, t0, t1, h/2, exact)
	if err != nil {
		return 0, err
	}
	if fine == 0 || coarse == 0 {
		return math.Inf(1), nil
	}
	return math.Log2(coarse / fine), nil
}
