package astro

import "fmt"

// TrajectoryPoint is one recorded instant of a propagation: the epoch, the
// 6-component inertial state and the named dependent variables. Immutable
// once appended.
type TrajectoryPoint struct {
	Epoch              float64
	State              []float64
	DependentVariables map[string]float64
}

// StateHistory is the append-only, chronologically ordered record of one
// propagation. It is owned by a single Mission run; epochs are strictly
// monotonic in the propagation direction and the first entry is the
// configured initial condition, exactly as provided.
type StateHistory struct {
	start   float64
	forward bool
	points  []TrajectoryPoint
}

// NewStateHistory returns an empty history starting at the given epoch.
func NewStateHistory(start float64, forward bool) *StateHistory {
	return &StateHistory{start: start, forward: forward}
}

// append records a new trajectory point, copying the state. It enforces
// strict epoch monotonicity in the propagation direction.
func (h *StateHistory) append(epoch float64, state []float64, depVars map[string]float64) error {
	if len(h.points) == 0 && epoch != h.start {
		return fmt.Errorf("first recorded epoch %f differs from start epoch %f", epoch, h.start)
	}
	if len(h.points) > 0 {
		last := h.points[len(h.points)-1].Epoch
		if (h.forward && epoch <= last) || (!h.forward && epoch >= last) {
			return fmt.Errorf("epoch %f breaks history monotonicity (last %f)", epoch, last)
		}
	}
	recorded := make([]float64, len(state))
	copy(recorded, state)
	h.points = append(h.points, TrajectoryPoint{epoch, recorded, depVars})
	return nil
}

// Len returns the number of recorded points.
func (h *StateHistory) Len() int {
	return len(h.points)
}

// At returns the i-th recorded point.
func (h *StateHistory) At(i int) TrajectoryPoint {
	return h.points[i]
}

// First returns the initial recorded point.
func (h *StateHistory) First() TrajectoryPoint {
	return h.points[0]
}

// Last returns the most recently recorded point.
func (h *StateHistory) Last() TrajectoryPoint {
	return h.points[len(h.points)-1]
}

// Points returns the ordered sequence of recorded points. The returned
// slice is the backing store; treat it as read-only.
func (h *StateHistory) Points() []TrajectoryPoint {
	return h.points
}
