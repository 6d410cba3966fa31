package events

import "github.com/VincentCucchietti/hipparchus/internal/ode"

// Controller intersects tentative steps with the sign changes of every
// registered detector. Registration order is significant: when two
// detectors locate the same crossing time, the first registered wins.
type Controller struct {
	monitors []*Monitor
}

func NewController() *Controller {
	return &Controller{monitors: make([]*Monitor, 0)}
}

func (c *Controller) Add(d Detector, maxCheck, convergence float64, maxIter int) {
	c.monitors = append(c.monitors, NewMonitor(d, maxCheck, convergence, maxIter))
}

func (c *Controller) Empty() bool { return len(c.monitors) == 0 }

// Reinitialize re-anchors every monitor at a fresh state, at integration
// start and after a state reset.
func (c *Controller) Reinitialize(t float64, y ode.State) {
	for _, m := range c.monitors {
		m.Reinitialize(t, y)
	}
}

// EvaluateStep scans the step for events from all monitors and returns
// the monitor owning the earliest crossing in the integration direction,
// or nil when the step is event-free.
func (c *Controller) EvaluateStep(interp ode.Interpolator) (*Monitor, error) {
	var first *Monitor
	for _, m := range c.monitors {
		occurred, err := m.EvaluateStep(interp)
		if err != nil {
			return nil, err
		}
		if !occurred {
			continue
		}
		if first == nil {
			first = m
			continue
		}
		if interp.IsForward() {
			if m.PendingTime() < first.PendingTime() {
				first = m
			}
		} else if m.PendingTime() > first.PendingTime() {
			first = m
		}
	}
	return first, nil
}

// StepAccepted re-anchors the sign baselines at the committed step end.
// fired, when non-nil, identifies the monitor whose event was just
// handled; its baseline is folded by Accept rather than resampled, since
// g sits at its root there.
func (c *Controller) StepAccepted(t float64, y ode.State, fired *Monitor) {
	for _, m := range c.monitors {
		if m != fired {
			m.Advance(t, y)
		}
	}
}
