package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/sim"
)

var _ = Describe("Recorder", func() {
	var sys oscillator

	run := func(rec *sim.Recorder, step, t0, t1 float64) {
		integ := newIntegrator(step)
		integ.AddStepHandler(rec)
		_, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, t0, t1)
		Expect(err).NotTo(HaveOccurred())
	}

	It("records step boundaries without a cadence", func() {
		rec := sim.NewRecorder(0)
		run(rec, 0.25, 0, 1)

		Expect(rec.Times).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
		Expect(rec.States).To(HaveLen(5))
	})

	It("samples the dense output at the configured cadence", func() {
		// Cadence finer than the step: samples come from inside steps.
		rec := sim.NewRecorder(0.125)
		run(rec, 0.25, 0, 1)

		Expect(rec.Times).To(Equal([]float64{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 0.875, 1}))
	})

	It("samples coarser than the step size", func() {
		rec := sim.NewRecorder(0.5)
		run(rec, 0.125, 0, 1)

		Expect(rec.Times).To(Equal([]float64{0, 0.5, 1}))
	})

	It("follows backward integrations", func() {
		rec := sim.NewRecorder(0.25)
		run(rec, 0.25, 1, 0)

		Expect(rec.Times).To(Equal([]float64{1, 0.75, 0.5, 0.25, 0}))
	})

	It("is reusable after Reset", func() {
		rec := sim.NewRecorder(0.25)
		run(rec, 0.25, 0, 1)
		rec.Reset()
		run(rec, 0.25, 0, 1)

		Expect(rec.Times).To(Equal([]float64{0, 0.25, 0.5, 0.75, 1}))
	})
})
