package astro

import (
	"fmt"
	"math"

	"github.com/go-kit/log"
)

// DefaultMaxSteps is the safety fuse on the number of integration steps of
// one propagation, for callers which do not set their own.
const DefaultMaxSteps = 10000000

// ConfigurationError is returned before a propagation starts when the run
// is not properly set up (zero step, end epoch unreachable, ...).
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// MaxStepsError is returned when the step fuse blows. It is distinct from
// normal termination so a misconfigured run is never confused with a
// successful one.
type MaxStepsError struct {
	Steps int
}

func (e MaxStepsError) Error() string {
	return fmt.Sprintf("propagation exceeded the maximum of %d steps", e.Steps)
}

/* Handles the astrodynamical propagations. */

// Mission defines a propagation run and owns its state history. The loop is
// strictly sequential and CPU bound: given the same initial state, bodies,
// step and epochs, two runs produce bit-identical histories.
type Mission struct {
	Name             string
	model            *AccelerationModel
	geodetic         *GeodeticComputer // nil means no dependent variables
	stop             StopCondition
	initial          []float64
	start, end, step float64
	maxSteps         int
	logger           log.Logger
}

// NewMission validates the run configuration and returns a mission ready to
// propagate. The initial state is a 6-component position/velocity vector in
// the inertial frame of the model's central body; epochs and the step are
// in seconds, the step sign giving the propagation direction.
func NewMission(name string, model *AccelerationModel, initial []float64, start, end, step float64) (*Mission, error) {
	if model == nil {
		return nil, ConfigurationError{"no acceleration model provided"}
	}
	if len(initial) != 6 {
		return nil, ConfigurationError{fmt.Sprintf("initial state must have 6 components, got %d", len(initial))}
	}
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, ConfigurationError{fmt.Sprintf("step size must be a nonzero finite number, got %v", step)}
	}
	if (end-start)*step < 0 {
		return nil, ConfigurationError{fmt.Sprintf("end epoch %f unreachable from %f with step %f", end, start, step)}
	}
	state := make([]float64, 6)
	copy(state, initial)
	return &Mission{
		Name:     name,
		model:    model,
		stop:     NewTimeTermination(end, step),
		initial:  state,
		start:    start,
		end:      end,
		step:     step,
		maxSteps: DefaultMaxSteps,
		logger:   log.NewNopLogger(),
	}, nil
}

// SetGeodetic enables latitude/longitude dependent variables for each
// recorded point. Without it the run proceeds with states only.
func (m *Mission) SetGeodetic(g *GeodeticComputer) {
	m.geodetic = g
}

// SetMaxSteps overrides the step fuse.
func (m *Mission) SetMaxSteps(steps int) {
	if steps > 0 {
		m.maxSteps = steps
	}
}

// SetLogger sets the structured logger of the run.
func (m *Mission) SetLogger(l log.Logger) {
	if l != nil {
		m.logger = l
	}
}

// SetStopCondition replaces the default time termination.
func (m *Mission) SetStopCondition(s StopCondition) {
	if s != nil {
		m.stop = s
	}
}

func (m *Mission) dependentVars(epoch float64, state []float64) map[string]float64 {
	if m.geodetic == nil {
		return nil
	}
	return m.geodetic.Compute(epoch, state)
}

// Propagate runs the loop: advance one step, evaluate the stop condition,
// derive the dependent variables and record the point, until termination or
// the step fuse. The initial state is always recorded first, before any
// integration. On failure the partial history is returned alongside the
// error for diagnosis.
func (m *Mission) Propagate() (*StateHistory, error) {
	hist := NewStateHistory(m.start, m.step > 0)
	rk4, err := NewRK4(m.step, m.model.Derivative)
	if err != nil {
		return hist, err
	}
	if err := hist.append(m.start, m.initial, m.dependentVars(m.start, m.initial)); err != nil {
		return hist, err
	}
	m.logger.Log("level", "info", "subsys", "astro", "mission", m.Name, "status", "starting",
		"central", m.model.Central.Name, "start", m.start, "end", m.end, "step", m.step)

	t := m.start
	x := make([]float64, 6)
	copy(x, m.initial)
	for steps := 0; ; steps++ {
		if steps >= m.maxSteps {
			m.logger.Log("level", "critical", "subsys", "astro", "mission", m.Name, "status", "killed", "steps", steps)
			return hist, MaxStepsError{m.maxSteps}
		}
		t, x, err = rk4.Advance(t, x)
		if err != nil {
			m.logger.Log("level", "critical", "subsys", "astro", "mission", m.Name, "status", "aborted", "err", err)
			return hist, err
		}
		done := m.stop.ShouldStop(t, x)
		if err := hist.append(t, x, m.dependentVars(t, x)); err != nil {
			return hist, err
		}
		if done {
			break
		}
	}
	m.logger.Log("level", "notice", "subsys", "astro", "mission", m.Name, "status", "finished",
		"steps", hist.Len()-1, "elapsed(s)", t-m.start)
	return hist, nil
}
