package experiment

import (
	"fmt"

	"github.com/VincentCucchietti/hipparchus/internal/config"
	"github.com/VincentCucchietti/hipparchus/internal/events"
	"github.com/VincentCucchietti/hipparchus/internal/models"
	"github.com/VincentCucchietti/hipparchus/internal/ode"
	"github.com/VincentCucchietti/hipparchus/internal/rk"
)

type Registry struct {
	models map[string]func() ode.System
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() ode.System),
	}

	r.models["exponential"] = func() ode.System { return models.NewExponential() }
	r.models["oscillator"] = func() ode.System { return models.NewOscillator() }
	r.models["pendulum"] = func() ode.System { return models.NewPendulum() }
	r.models["bouncer"] = func() ode.System { return models.NewBouncer() }

	return r
}

func (r *Registry) GetModel(name string) (ode.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetMethod(name string) (rk.Tableau, error) {
	return rk.MethodByName(name)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	return names
}

func (r *Registry) ListMethods() []rk.Tableau {
	return rk.Methods()
}

// GetDetector builds a detector from its run configuration.
func (r *Registry) GetDetector(cfg config.DetectorConfig) (events.Detector, error) {
	action, err := events.ParseAction(cfg.Action)
	if err != nil {
		return nil, err
	}
	switch cfg.Type {
	case "time":
		return events.TimeTrigger{T: cfg.At, Action: action}, nil
	case "threshold":
		return events.Threshold{Index: cfg.Index, Value: cfg.Value, Action: action}, nil
	case "bounce":
		restitution := cfg.Restitution
		if restitution == 0 {
			restitution = 1
		}
		return models.NewBounceDetector(restitution), nil
	}
	return nil, fmt.Errorf("unknown detector type: %s", cfg.Type)
}
