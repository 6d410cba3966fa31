package rk

import (
	"fmt"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Stepper advances an ODE system by single fixed-size steps of the method
// described by its tableau. A Stepper is not safe for concurrent use; the
// stage arrays of each step are freshly allocated and handed to the step's
// interpolator.
type Stepper struct {
	tab  Tableau
	yTmp ode.State
}

// NewStepper builds a stepper for the given tableau. Malformed tableaus
// are rejected here, before any integration starts.
func NewStepper(tab Tableau) (*Stepper, error) {
	if err := tab.Validate(); err != nil {
		return nil, err
	}
	return &Stepper{tab: tab}, nil
}

func (s *Stepper) Tableau() Tableau { return s.tab }

func (s *Stepper) ensureScratch(n int) {
	if len(s.yTmp) != n {
		s.yTmp = make(ode.State, n)
	}
}

// Step advances the state from one step boundary by h. The derivative
// already known at the step start is reused as stage 0, so exactly
// Stages() evaluations of sys are performed: stages-1 intermediate ones
// plus the derivative at the step end.
func (s *Stepper) Step(sys ode.System, from ode.StateAndDerivative, h float64) (ode.StateAndDerivative, ode.Interpolator, error) {
	n := sys.Dimension()
	if len(from.State) != n {
		return ode.StateAndDerivative{}, nil, fmt.Errorf("%w: state has %d components, system wants %d",
			ode.ErrDimensionMismatch, len(from.State), n)
	}
	if len(from.Derivative) != n {
		return ode.StateAndDerivative{}, nil, fmt.Errorf("%w: derivative has %d components, system wants %d",
			ode.ErrDimensionMismatch, len(from.Derivative), n)
	}
	s.ensureScratch(n)

	stages := s.tab.Stages()
	y := from.State
	yDotK := make([]ode.State, stages)
	yDotK[0] = from.Derivative.Clone()

	for k := 1; k < stages; k++ {
		a := s.tab.A[k-1]
		for j := 0; j < n; j++ {
			sum := a[0] * yDotK[0][j]
			for l := 1; l < k; l++ {
				sum += a[l] * yDotK[l][j]
			}
			s.yTmp[j] = y[j] + h*sum
		}
		yDotK[k] = sys.Derivatives(from.Time+h*s.tab.C[k-1], s.yTmp)
	}

	yEnd := make(ode.State, n)
	for j := 0; j < n; j++ {
		sum := s.tab.B[0] * yDotK[0][j]
		for l := 1; l < stages; l++ {
			sum += s.tab.B[l] * yDotK[l][j]
		}
		yEnd[j] = y[j] + h*sum
	}

	tEnd := from.Time + h
	end := ode.StateAndDerivative{
		Time:       tEnd,
		State:      yEnd,
		Derivative: sys.Derivatives(tEnd, yEnd),
	}
	interp := newInterpolator(s.tab, h > 0, yDotK, from, end)
	return end, interp, nil
}

// SingleStep integrates from t0 to t in one stride, without handlers,
// events, dense output or sanity checks. It is intended for embedding in
// outer loops where setup cost matters; it performs exactly Stages()
// derivative evaluations.
func (s *Stepper) SingleStep(sys ode.System, t0 float64, y0 ode.State, t float64) ode.State {
	n := len(y0)
	s.ensureScratch(n)

	stages := s.tab.Stages()
	h := t - t0
	yDotK := make([]ode.State, stages)
	yDotK[0] = sys.Derivatives(t0, y0)

	for k := 1; k < stages; k++ {
		a := s.tab.A[k-1]
		for j := 0; j < n; j++ {
			sum := a[0] * yDotK[0][j]
			for l := 1; l < k; l++ {
				sum += a[l] * yDotK[l][j]
			}
			s.yTmp[j] = y0[j] + h*sum
		}
		yDotK[k] = sys.Derivatives(t0+h*s.tab.C[k-1], s.yTmp)
	}

	y := make(ode.State, n)
	for j := 0; j < n; j++ {
		sum := s.tab.B[0] * yDotK[0][j]
		for l := 1; l < stages; l++ {
			sum += s.tab.B[l] * yDotK[l][j]
		}
		y[j] = y0[j] + h*sum
	}
	return y
}
