package metrics

import (
	"github.com/VincentCucchietti/hipparchus/internal/events"
	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// EventCount wraps a detector and counts the events it handles. Register
// the wrapper in place of the wrapped detector.
type EventCount struct {
	events.Detector
	count int
}

func NewEventCount(d events.Detector) *EventCount {
	return &EventCount{Detector: d}
}

func (c *EventCount) Occurred(t float64, y ode.State, increasing bool) events.Action {
	c.count++
	return c.Detector.Occurred(t, y, increasing)
}

func (c *EventCount) Name() string { return "events" }

func (c *EventCount) Value() float64 { return float64(c.count) }

func (c *EventCount) Reset() { c.count = 0 }
