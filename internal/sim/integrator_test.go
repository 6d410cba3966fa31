package sim_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/VincentCucchietti/hipparchus/internal/events"
	"github.com/VincentCucchietti/hipparchus/internal/models"
	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
	"github.com/VincentCucchietti/hipparchus/internal/sim"
)

func newIntegrator(step float64) *sim.Integrator {
	stepper, err := rk.NewStepper(rk.Classical())
	Expect(err).NotTo(HaveOccurred())
	integ, err := sim.New(stepper, step)
	Expect(err).NotTo(HaveOccurred())
	return integ
}

var _ = Describe("Integrator", func() {
	var sys oscillator

	It("rejects a non-positive step size", func() {
		stepper, err := rk.NewStepper(rk.Classical())
		Expect(err).NotTo(HaveOccurred())
		_, err = sim.New(stepper, 0)
		Expect(err).To(HaveOccurred())
		_, err = sim.New(stepper, -0.1)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an initial state of the wrong dimension", func() {
		integ := newIntegrator(0.01)
		_, err := integ.Integrate(context.Background(), sys, ode.State{1}, 0, 1)
		Expect(err).To(MatchError(ode.ErrDimensionMismatch))
	})

	It("returns immediately on an empty time span", func() {
		integ := newIntegrator(0.01)
		log := newBoundaryLog()
		integ.AddStepHandler(log)

		end, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, 3, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(end.Time).To(Equal(3.0))
		Expect(end.State).To(Equal(ode.State{1, 0}))
		Expect(log.cur).To(BeEmpty())
	})

	It("integrates the oscillator to the final time", func() {
		integ := newIntegrator(0.01)
		end, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, 0, 10)
		Expect(err).NotTo(HaveOccurred())

		Expect(end.Time).To(BeNumerically("~", 10, 1e-9))
		Expect(end.State[0]).To(BeNumerically("~", math.Cos(10), 1e-7))
		Expect(end.State[1]).To(BeNumerically("~", -math.Sin(10), 1e-7))
	})

	It("integrates backward", func() {
		integ := newIntegrator(0.01)
		end, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, 0, -5)
		Expect(err).NotTo(HaveOccurred())

		Expect(end.Time).To(BeNumerically("~", -5, 1e-9))
		Expect(end.State[0]).To(BeNumerically("~", math.Cos(5), 1e-7))
		Expect(end.State[1]).To(BeNumerically("~", math.Sin(5), 1e-7))
	})

	It("clips the last step instead of overshooting", func() {
		integ := newIntegrator(0.3)
		log := newBoundaryLog()
		integ.AddStepHandler(log)

		_, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, 0, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(log.cur).To(HaveLen(4))
		Expect(log.cur[3]).To(BeNumerically("~", 1, 1e-12))
	})

	It("emits contiguous steps to handlers", func() {
		integ := newIntegrator(0.07)
		log := newBoundaryLog()
		integ.AddStepHandler(log)

		_, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, 0, 2)
		Expect(err).NotTo(HaveOccurred())

		Expect(log.prev[0]).To(Equal(0.0))
		for i := 1; i < len(log.prev); i++ {
			Expect(log.prev[i]).To(Equal(log.cur[i-1]))
		}
	})

	It("aborts when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		integ := newIntegrator(0.01)
		_, err := integ.Integrate(ctx, sys, ode.State{1, 0}, 0, 10)
		Expect(err).To(MatchError(context.Canceled))

		var ie *ode.IntegrationError
		Expect(errors.As(err, &ie)).To(BeTrue())
	})

	Describe("event handling", func() {
		It("stops at a time trigger", func() {
			integ := newIntegrator(0.1)
			integ.AddEventDetector(events.TimeTrigger{T: 2.5, Action: events.Stop}, 0.1, 1e-9, 100)

			end, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, 0, 10)
			Expect(err).NotTo(HaveOccurred())

			Expect(end.Time).To(BeNumerically("~", 2.5, 1e-8))
			Expect(end.State[0]).To(BeNumerically("~", math.Cos(2.5), 1e-6))
		})

		It("locates a state threshold crossing", func() {
			integ := newIntegrator(0.1)
			integ.AddEventDetector(events.Threshold{Index: 0, Value: 0.5, Action: events.Stop}, 0.1, 1e-10, 100)

			end, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, 0, 10)
			Expect(err).NotTo(HaveOccurred())

			// cos(t) crosses 0.5 at t = π/3.
			Expect(end.Time).To(BeNumerically("~", math.Pi/3, 1e-5))
			Expect(end.State[0]).To(BeNumerically("~", 0.5, 1e-5))
		})

		It("truncates the step at a Continue event and keeps going", func() {
			integ := newIntegrator(0.1)
			log := newBoundaryLog()
			integ.AddStepHandler(log)
			integ.AddEventDetector(events.TimeTrigger{T: 0.25, Action: events.Continue}, 0.1, 1e-9, 100)

			end, err := integ.Integrate(context.Background(), sys, ode.State{1, 0}, 0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(end.Time).To(BeNumerically("~", 1, 1e-9))

			found := false
			for _, tc := range log.cur {
				if math.Abs(tc-0.25) < 1e-8 {
					found = true
				}
			}
			Expect(found).To(BeTrue(), "no committed step ends at the event time")
		})

		It("matches the event-free trajectory when no detector fires", func() {
			plain := newIntegrator(0.05)
			endPlain, err := plain.Integrate(context.Background(), sys, ode.State{1, 0}, 0, 3)
			Expect(err).NotTo(HaveOccurred())

			armed := newIntegrator(0.05)
			armed.AddEventDetector(events.TimeTrigger{T: 100, Action: events.Stop}, 0.1, 1e-9, 100)
			endArmed, err := armed.Integrate(context.Background(), sys, ode.State{1, 0}, 0, 3)
			Expect(err).NotTo(HaveOccurred())

			Expect(endArmed.Time).To(Equal(endPlain.Time))
			Expect(endArmed.State).To(Equal(endPlain.State))
		})

		It("resets the state on a bounce", func() {
			ball := models.NewBouncer()
			detector := models.NewBounceDetector(0.5)

			integ := newIntegrator(0.02)
			log := newBoundaryLog()
			integ.AddStepHandler(log)
			integ.AddEventDetector(detector, 0.05, 1e-10, 100)

			end, err := integ.Integrate(context.Background(), ball, ode.State{2, 0}, 0, 1.2)
			Expect(err).NotTo(HaveOccurred())
			Expect(end.Time).To(BeNumerically("~", 1.2, 1e-9))

			// First impact at √(2h/g), after which the ball climbs again.
			impact := math.Sqrt(2 * 2 / ball.Gravity)
			Expect(impact).To(BeNumerically("<", 1.2))
			Expect(log.minHeight).To(BeNumerically(">", -1e-6))
			Expect(end.State[0]).To(BeNumerically(">", 0))
		})
	})
})
