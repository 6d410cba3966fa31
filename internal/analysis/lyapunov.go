package analysis

import (
	"math"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
)

// LyapunovExponent estimates the largest Lyapunov exponent by the
// trajectory separation method: a reference and a perturbed trajectory
// are advanced in lockstep, the log growth of their separation is
// accumulated, and the separation is renormalized to stay small. A
// clearly positive result indicates chaotic dynamics.
func LyapunovExponent(sys ode.System, tab rk.Tableau, y0 ode.State, h, duration, perturbation float64) (float64, error) {
	if len(y0) == 0 || perturbation <= 0 {
		return 0, nil
	}

	stepper, err := rk.NewStepper(tab)
	if err != nil {
		return 0, err
	}
	shadow, err := rk.NewStepper(tab)
	if err != nil {
		return 0, err
	}

	y := y0.Clone()
	yp := y0.Clone()
	yp[0] += perturbation

	t := 0.0
	sumLog := 0.0
	count := 0

	for t < duration {
		y = stepper.SingleStep(sys, t, y, t+h)
		yp = shadow.SingleStep(sys, t, yp, t+h)
		t += h

		sep := 0.0
		for i := range y {
			d := yp[i] - y[i]
			sep += d * d
		}
		sep = math.Sqrt(sep)
		if sep == 0 {
			continue
		}

		sumLog += math.Log(sep / perturbation)
		count++

		// Renormalize so the separation stays in the linear regime.
		scale := perturbation / sep
		for i := range yp {
			yp[i] = y[i] + (yp[i]-y[i])*scale
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * h), nil
}
