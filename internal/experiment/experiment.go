package experiment

import (
	"context"
	"fmt"

	"github.com/VincentCucchietti/hipparchus/internal/config"
	"github.com/VincentCucchietti/hipparchus/internal/metrics"
	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
	"github.com/VincentCucchietti/hipparchus/internal/sim"
)

// Experiment assembles one integration run from its configuration: the
// equation system, the method, the event detectors and the observers.
type Experiment struct {
	cfg      *config.Config
	sys      ode.System
	integ    *sim.Integrator
	recorder *sim.Recorder
	metrics  []metrics.Metric
}

func New(cfg *config.Config, registry *Registry) (*Experiment, error) {
	sys, err := registry.GetModel(cfg.Model)
	if err != nil {
		return nil, err
	}

	tab, err := registry.GetMethod(cfg.Method)
	if err != nil {
		return nil, err
	}

	stepper, err := rk.NewStepper(tab)
	if err != nil {
		return nil, err
	}

	integ, err := sim.New(stepper, cfg.Step)
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		cfg:      cfg,
		sys:      sys,
		integ:    integ,
		recorder: sim.NewRecorder(cfg.Sample),
	}
	integ.AddStepHandler(e.recorder)

	e.metrics = append(e.metrics, metrics.NewStepCount())
	if h, ok := sys.(ode.Hamiltonian); ok {
		e.metrics = append(e.metrics, metrics.NewEnergyDrift(h))
	}

	for _, dc := range cfg.Detectors {
		dc = dc.Defaulted()
		d, err := registry.GetDetector(dc)
		if err != nil {
			return nil, err
		}
		counted := metrics.NewEventCount(d)
		e.metrics = append(e.metrics, counted)
		integ.AddEventDetector(counted, dc.MaxCheck, dc.Convergence, dc.MaxIterations)
	}

	for _, m := range e.metrics {
		if h, ok := m.(ode.StepHandler); ok {
			integ.AddStepHandler(h)
		}
	}

	return e, nil
}

func (e *Experiment) Run(ctx context.Context) (ode.StateAndDerivative, error) {
	y0 := ode.State(e.cfg.GetInitState())
	if len(y0) != e.sys.Dimension() {
		return ode.StateAndDerivative{}, fmt.Errorf("%w: init state has %d components, model %s wants %d",
			ode.ErrDimensionMismatch, len(y0), e.cfg.Model, e.sys.Dimension())
	}
	return e.integ.Integrate(ctx, e.sys, y0, e.cfg.Start, e.cfg.Final)
}

// Integrator exposes the underlying driver for adding observers.
func (e *Experiment) Integrator() *sim.Integrator { return e.integ }

func (e *Experiment) System() ode.System { return e.sys }

func (e *Experiment) Recorder() *sim.Recorder { return e.recorder }

func (e *Experiment) Metrics() map[string]float64 {
	out := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
