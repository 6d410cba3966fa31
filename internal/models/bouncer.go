package models

import (
	"github.com/VincentCucchietti/hipparchus/internal/events"
	"github.com/VincentCucchietti/hipparchus/internal/ode"
)

// Bouncer is a ball in free fall, as state [height, velocity]. Pair it
// with a BounceDetector to reflect the velocity at ground impacts.
type Bouncer struct {
	Gravity float64
}

func NewBouncer() *Bouncer {
	return &Bouncer{Gravity: 9.81}
}

func (b *Bouncer) Dimension() int {
	return 2
}

func (b *Bouncer) Derivatives(t float64, y ode.State) ode.State {
	return ode.State{y[1], -b.Gravity}
}

// BounceDetector fires when the height crosses zero while falling and
// reflects the velocity, scaled by the restitution coefficient.
type BounceDetector struct {
	Restitution float64
}

func NewBounceDetector(restitution float64) *BounceDetector {
	return &BounceDetector{Restitution: restitution}
}

func (d *BounceDetector) G(t float64, y ode.State) float64 {
	return y[0]
}

func (d *BounceDetector) Occurred(t float64, y ode.State, increasing bool) events.Action {
	if increasing {
		return events.Continue
	}
	return events.ResetState
}

func (d *BounceDetector) NewState(t float64, y ode.State) ode.State {
	return ode.State{y[0], -d.Restitution * y[1]}
}
