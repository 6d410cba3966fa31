package sim

import "github.com/VincentCucchietti/hipparchus/internal/ode"

// Recorder is a step handler that collects a trajectory. With a positive
// Sample cadence it queries the dense output at evenly spaced times, so
// the recorded resolution is independent of the step size; otherwise it
// records committed step boundaries.
type Recorder struct {
	Sample float64

	Times  []float64
	States []ode.State

	started bool
	next    float64
}

func NewRecorder(sample float64) *Recorder {
	return &Recorder{Sample: sample}
}

func (r *Recorder) HandleStep(interp ode.Interpolator, isLast bool) {
	if !r.started {
		r.started = true
		t := interp.PreviousTime()
		r.record(t, interp.StateAt(t))
		r.next = t + r.dir(interp)*r.Sample
	}

	tEnd := interp.CurrentTime()
	if r.Sample > 0 {
		for r.before(interp, r.next, tEnd) {
			r.record(r.next, interp.StateAt(r.next))
			r.next += r.dir(interp) * r.Sample
		}
	}
	if r.Sample <= 0 || isLast {
		if len(r.Times) == 0 || r.Times[len(r.Times)-1] != tEnd {
			r.record(tEnd, interp.StateAt(tEnd))
		}
	}
}

// Reset clears the recorded trajectory so the recorder can be reused.
func (r *Recorder) Reset() {
	r.Times = nil
	r.States = nil
	r.started = false
}

func (r *Recorder) record(t float64, y ode.State) {
	r.Times = append(r.Times, t)
	r.States = append(r.States, y)
}

func (r *Recorder) dir(interp ode.Interpolator) float64 {
	if interp.IsForward() {
		return 1
	}
	return -1
}

func (r *Recorder) before(interp ode.Interpolator, t, bound float64) bool {
	if interp.IsForward() {
		return t <= bound
	}
	return t >= bound
}
