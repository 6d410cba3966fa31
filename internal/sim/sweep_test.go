package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
	"github.com/VincentCucchietti/hipparchus/internal/sim"
)

var _ = Describe("Sweep", func() {
	var sys oscillator

	newStepper := func() (ode.Stepper, error) {
		return rk.NewStepper(rk.Classical())
	}

	It("runs every step size and orders the results", func() {
		sweep := sim.NewSweep(newStepper)
		steps := []float64{0.1, 0.05, 0.025}

		results, err := sweep.Run(context.Background(), sys, ode.State{1, 0}, 0, 2, steps)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(3))

		// Every run covers the full span and the error shrinks with the
		// step size.
		prevErr := math.Inf(1)
		for _, r := range results {
			Expect(r.Time).To(BeNumerically("~", 2, 1e-9))
			e := math.Abs(r.State[0] - math.Cos(2))
			Expect(e).To(BeNumerically("<", prevErr))
			prevErr = e
		}
	})

	It("propagates stepper construction failures", func() {
		sweep := sim.NewSweep(func() (ode.Stepper, error) {
			return rk.NewStepper(rk.Tableau{Name: "broken", B: []float64{1, 1}})
		})
		_, err := sweep.Run(context.Background(), sys, ode.State{1, 0}, 0, 1, []float64{0.1})
		Expect(err).To(MatchError(ode.ErrBadTableau))
	})
})
