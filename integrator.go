package astro

import (
	"fmt"
	"math"
)

// NonFiniteStateError is returned when an integration step produced a NaN
// or infinite state component.
type NonFiniteStateError struct {
	Epoch     float64
	Component int
}

func (e NonFiniteStateError) Error() string {
	return fmt.Sprintf("non-finite state component %d after step to epoch %f", e.Component, e.Epoch)
}

// Derivative is the ODE right-hand side f(t, x). It must not mutate x.
type Derivative func(t float64, x []float64) ([]float64, error)

// RK4 advances a state vector with the classical fixed-step 4-stage
// Runge-Kutta formula. The step sign gives the propagation direction; local
// truncation error is O(h⁵), global error O(h⁴) for smooth derivatives.
type RK4 struct {
	Step float64
	Func Derivative
}

// NewRK4 returns a new fixed-step RK4 integrator.
func NewRK4(step float64, f Derivative) (*RK4, error) {
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil, ConfigurationError{fmt.Sprintf("step size must be a nonzero finite number, got %v", step)}
	}
	if f == nil {
		return nil, ConfigurationError{"derivative function may not be nil"}
	}
	return &RK4{Step: step, Func: f}, nil
}

// Advance performs one step from (t, x) and returns the next epoch and
// state. The input state is left untouched; a step either completes fully
// or fails.
func (r *RK4) Advance(t float64, x []float64) (float64, []float64, error) {
	const (
		half     = 1 / 2.0
		oneSixth = 1 / 6.0
		oneThird = 1 / 3.0
	)
	h := r.Step
	n := len(x)
	tState := make([]float64, n)

	k1, err := r.Func(t, x)
	if err != nil {
		return t, nil, err
	}
	for i := 0; i < n; i++ {
		tState[i] = x[i] + h*k1[i]*half
	}
	k2, err := r.Func(t+h*half, tState)
	if err != nil {
		return t, nil, err
	}
	for i := 0; i < n; i++ {
		tState[i] = x[i] + h*k2[i]*half
	}
	k3, err := r.Func(t+h*half, tState)
	if err != nil {
		return t, nil, err
	}
	for i := 0; i < n; i++ {
		tState[i] = x[i] + h*k3[i]
	}
	k4, err := r.Func(t+h, tState)
	if err != nil {
		return t, nil, err
	}

	tNext := t + h
	next := make([]float64, n)
	for i := 0; i < n; i++ {
		next[i] = x[i] + h*(oneSixth*(k1[i]+k4[i])+oneThird*(k2[i]+k3[i]))
		if math.IsNaN(next[i]) || math.IsInf(next[i], 0) {
			return t, nil, NonFiniteStateError{tNext, i}
		}
	}
	return tNext, next, nil
}
