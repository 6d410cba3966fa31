package sim

import (
	"context"
	"sync"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Sweep integrates the same problem once per step size, concurrently.
// Steppers are not safe for concurrent use, so every run builds its own
// through NewStepper.
type Sweep struct {
	NewStepper func() (ode.Stepper, error)
}

func NewSweep(newStepper func() (ode.Stepper, error)) *Sweep {
	return &Sweep{NewStepper: newStepper}
}

// Run returns the end state of each integration, in step order. The first
// failing run aborts the sweep.
func (s *Sweep) Run(ctx context.Context, sys ode.System, y0 ode.State, t0, finalTime float64, steps []float64) ([]ode.StateAndDerivative, error) {
	results := make([]ode.StateAndDerivative, len(steps))
	errs := make([]error, len(steps))

	var wg sync.WaitGroup
	for i, step := range steps {
		wg.Add(1)
		go func(idx int, step float64) {
			defer wg.Done()

			stepper, err := s.NewStepper()
			if err != nil {
				errs[idx] = err
				return
			}
			integ, err := New(stepper, step)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = integ.Integrate(ctx, sys, y0.Clone(), t0, finalTime)
		}(i, step)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
