package astro

import (
	"fmt"
	"math"
)

// MinBodySeparation is the default minimum spacecraft-to-body distance (m)
// below which the point-mass acceleration is considered singular.
const MinBodySeparation = 1.0

// SingularGeometryError is returned when the spacecraft position coincides
// (within the configured separation) with a body position.
type SingularGeometryError struct {
	Body       string
	Epoch      float64
	Separation float64
}

func (e SingularGeometryError) Error() string {
	return fmt.Sprintf("singular geometry: spacecraft within %g m of %s at epoch %f", e.Separation, e.Body, e.Epoch)
}

// AccelerationLaw computes the inertial acceleration (m/s²) imparted on the
// spacecraft by one body. This is a closed set of variants: point-mass
// gravity today, spherical harmonics would slot in here.
type AccelerationLaw interface {
	Accelerate(epoch float64, scR, bodyR []float64, body CelestialBody) ([]float64, error)
}

// PointMassGravity is the Newtonian point-mass attraction law,
// −μ·(r_sc − r_body)/|r_sc − r_body|³.
type PointMassGravity struct {
	MinSeparation float64 // Zero means MinBodySeparation.
}

// Accelerate implements the AccelerationLaw interface.
func (g PointMassGravity) Accelerate(epoch float64, scR, bodyR []float64, body CelestialBody) ([]float64, error) {
	minSep := g.MinSeparation
	if minSep == 0 {
		minSep = MinBodySeparation
	}
	rel := make([]float64, 3)
	for i := 0; i < 3; i++ {
		rel[i] = scR[i] - bodyR[i]
	}
	d := norm(rel)
	if d < minSep {
		return nil, SingularGeometryError{body.Name, epoch, d}
	}
	factor := -body.μ / math.Pow(d, 3)
	return []float64{factor * rel[0], factor * rel[1], factor * rel[2]}, nil
}

// BodyAccelerations enumerates the acceleration laws exerted by one body.
type BodyAccelerations struct {
	Body string
	Laws []AccelerationLaw
}

type contribution struct {
	body CelestialBody
	law  AccelerationLaw
}

// AccelerationModel sums the configured per-body accelerations acting on a
// spacecraft propagated about a central body. This is the direct Cowell
// formulation: the central body appears in the sum like any other
// contributor, no reference trajectory is subtracted.
type AccelerationModel struct {
	Central       CelestialBody
	registry      *BodyRegistry
	contributions []contribution
}

// NewAccelerationModel validates the {body → laws} configuration against
// the registry and returns the assembled model. The central body must be
// registered and have a strictly positive gravitational parameter.
func NewAccelerationModel(reg *BodyRegistry, centralBody string, settings []BodyAccelerations) (*AccelerationModel, error) {
	central, err := reg.Body(centralBody)
	if err != nil {
		return nil, err
	}
	if central.μ <= 0 {
		return nil, fmt.Errorf("central body %s has non-positive gravitational parameter", central.Name)
	}
	model := &AccelerationModel{Central: central, registry: reg}
	for _, setting := range settings {
		body, err := reg.Body(setting.Body)
		if err != nil {
			return nil, err
		}
		if len(setting.Laws) == 0 {
			return nil, fmt.Errorf("body %s configured without any acceleration law", body.Name)
		}
		for _, law := range setting.Laws {
			model.contributions = append(model.contributions, contribution{body, law})
		}
	}
	return model, nil
}

// PointMassModel is a convenience constructor: point-mass gravity from the
// central body and each perturbing body, in the provided order.
func PointMassModel(reg *BodyRegistry, centralBody string, perturbingBodies ...string) (*AccelerationModel, error) {
	settings := []BodyAccelerations{{Body: centralBody, Laws: []AccelerationLaw{PointMassGravity{}}}}
	for _, name := range perturbingBodies {
		settings = append(settings, BodyAccelerations{Body: name, Laws: []AccelerationLaw{PointMassGravity{}}})
	}
	return NewAccelerationModel(reg, centralBody, settings)
}

// Acceleration returns the total inertial acceleration (m/s²) on the
// spacecraft at the given epoch and state. Side-effect free, safe to call
// repeatedly for the same inputs.
func (m *AccelerationModel) Acceleration(epoch float64, state []float64) ([]float64, error) {
	scR := state[:3]
	total := make([]float64, 3)
	for _, c := range m.contributions {
		bodyR, _, err := m.registry.StateAt(c.body.Name, epoch)
		if err != nil {
			return nil, err
		}
		acc, err := c.law.Accelerate(epoch, scR, bodyR, c.body)
		if err != nil {
			return nil, err
		}
		for i := 0; i < 3; i++ {
			total[i] += acc[i]
		}
	}
	return total, nil
}

// Derivative returns the 6-dimensional ODE right-hand side
// f(t, x) = [velocity, acceleration] for the integrator.
func (m *AccelerationModel) Derivative(epoch float64, state []float64) ([]float64, error) {
	acc, err := m.Acceleration(epoch, state)
	if err != nil {
		return nil, err
	}
	return []float64{state[3], state[4], state[5], acc[0], acc[1], acc[2]}, nil
}
