package astro

// StopCondition decides, after each accepted step, whether the propagation
// should stop. It is never evaluated before the initial state is recorded.
type StopCondition interface {
	ShouldStop(epoch float64, state []float64) bool
}

// TimeTermination stops the propagation at the first post-step epoch at or
// past the target. With fixed steps the target is generally not hit
// exactly: the recorded trajectory overshoots the target by less than one
// step, and no interpolation back to the target is performed.
type TimeTermination struct {
	Target  float64
	forward bool
}

// NewTimeTermination returns a time termination condition; the step sign
// selects forward or backward comparison.
func NewTimeTermination(target, step float64) TimeTermination {
	return TimeTermination{Target: target, forward: step > 0}
}

// ShouldStop implements the StopCondition interface.
func (t TimeTermination) ShouldStop(epoch float64, state []float64) bool {
	if t.forward {
		return epoch >= t.Target
	}
	return epoch <= t.Target
}
