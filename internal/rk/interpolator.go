package rk

import "github.com/VincentCucchietti/hipparchus/internal/ode"

// Interpolator is the dense output of one completed Runge-Kutta step. It
// reuses the step's stage derivatives through the method's continuous
// extension, parameterized by the normalized fraction
// θ = (t − stepStart)/h, and never evaluates the equations again.
//
// Queries at the exact hard boundaries return the boundary values stored
// at step completion, so the step-end state is reproduced bit-for-bit.
// Soft bounds narrow the step handed to step handlers after event
// truncation; queries slightly outside them are tolerated, which event
// bisection relies on.
type Interpolator struct {
	tab      Tableau
	forward  bool
	h        float64
	stages   []ode.State
	prev     ode.StateAndDerivative
	cur      ode.StateAndDerivative
	softPrev float64
	softCur  float64
}

func newInterpolator(tab Tableau, forward bool, stages []ode.State, prev, cur ode.StateAndDerivative) *Interpolator {
	return &Interpolator{
		tab:      tab,
		forward:  forward,
		h:        cur.Time - prev.Time,
		stages:   stages,
		prev:     prev,
		cur:      cur,
		softPrev: prev.Time,
		softCur:  cur.Time,
	}
}

// Rebuild reconstructs an interpolator from archived step data. The
// boundary derivatives of prev and cur must be the ones captured when the
// step was committed.
func Rebuild(tab Tableau, forward bool, stages []ode.State, prev, cur ode.StateAndDerivative) *Interpolator {
	return newInterpolator(tab, forward, stages, prev, cur)
}

func (in *Interpolator) PreviousTime() float64 { return in.softPrev }
func (in *Interpolator) CurrentTime() float64  { return in.softCur }
func (in *Interpolator) IsForward() bool       { return in.forward }

// GlobalPreviousState returns the hard start boundary of the step.
func (in *Interpolator) GlobalPreviousState() ode.StateAndDerivative { return in.prev }

// GlobalCurrentState returns the hard end boundary of the step.
func (in *Interpolator) GlobalCurrentState() ode.StateAndDerivative { return in.cur }

// StageDerivatives exposes the stage slopes for archival. Callers must
// not mutate the returned slices.
func (in *Interpolator) StageDerivatives() []ode.State { return in.stages }

// TableauName identifies the method, for archival reconstruction.
func (in *Interpolator) TableauName() string { return in.tab.Name }

// Restrict returns a view of the same step narrowed to [softPrev, softCur].
// The underlying stage data is shared; only the advertised bounds change.
func (in *Interpolator) Restrict(softPrev, softCur float64) ode.Interpolator {
	r := *in
	r.softPrev = softPrev
	r.softCur = softCur
	return &r
}

// StateAt interpolates the state at t inside the step.
func (in *Interpolator) StateAt(t float64) ode.State {
	if t == in.prev.Time {
		return in.prev.State.Clone()
	}
	if t == in.cur.Time {
		return in.cur.State.Clone()
	}

	theta := (t - in.prev.Time) / in.h
	n := len(in.prev.State)
	y := make(ode.State, n)

	if in.tab.Dense != nil {
		for j := 0; j < n; j++ {
			sum := in.tab.denseWeight(0, theta) * in.stages[0][j]
			for l := 1; l < len(in.stages); l++ {
				sum += in.tab.denseWeight(l, theta) * in.stages[l][j]
			}
			y[j] = in.prev.State[j] + in.h*sum
		}
		return y
	}

	// Hermite fallback for tableaus without dense weights: cubic over the
	// boundary states and derivatives, exact at both ends.
	h00 := (1 + 2*theta) * (1 - theta) * (1 - theta)
	h10 := theta * (1 - theta) * (1 - theta)
	h01 := theta * theta * (3 - 2*theta)
	h11 := theta * theta * (theta - 1)
	for j := 0; j < n; j++ {
		y[j] = h00*in.prev.State[j] + h01*in.cur.State[j] +
			in.h*(h10*in.prev.Derivative[j]+h11*in.cur.Derivative[j])
	}
	return y
}

// DerivativeAt interpolates the state derivative at t inside the step.
func (in *Interpolator) DerivativeAt(t float64) ode.State {
	if t == in.prev.Time {
		return in.prev.Derivative.Clone()
	}
	if t == in.cur.Time {
		return in.cur.Derivative.Clone()
	}

	theta := (t - in.prev.Time) / in.h
	n := len(in.prev.State)
	yDot := make(ode.State, n)

	if in.tab.Dense != nil {
		for j := 0; j < n; j++ {
			sum := in.tab.denseWeightDot(0, theta) * in.stages[0][j]
			for l := 1; l < len(in.stages); l++ {
				sum += in.tab.denseWeightDot(l, theta) * in.stages[l][j]
			}
			yDot[j] = sum
		}
		return yDot
	}

	d00 := 6 * theta * (theta - 1)
	d10 := 1 - 4*theta + 3*theta*theta
	d11 := theta * (3*theta - 2)
	for j := 0; j < n; j++ {
		yDot[j] = d00*(in.prev.State[j]-in.cur.State[j])/in.h +
			d10*in.prev.Derivative[j] + d11*in.cur.Derivative[j]
	}
	return yDot
}
