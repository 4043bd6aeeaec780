package astro

import "math"

// Names of the dependent variables computed by the GeodeticComputer.
const (
	VarLatitude  = "latitude"
	VarLongitude = "longitude"
)

// GeodeticComputer derives the body-fixed latitude and longitude of the
// spacecraft over a body, from the inertial state and the body's rotation
// model.
type GeodeticComputer struct {
	body  CelestialBody
	model RotationModel
}

// NewGeodeticComputer returns a geodetic computer for the named body. It
// fails with an UndefinedFrameError when the registry holds no rotation
// model for that body.
func NewGeodeticComputer(reg *BodyRegistry, bodyName string) (*GeodeticComputer, error) {
	body, err := reg.Body(bodyName)
	if err != nil {
		return nil, err
	}
	model, err := reg.RotationModel(bodyName)
	if err != nil {
		return nil, err
	}
	return &GeodeticComputer{body, model}, nil
}

// Compute returns the named dependent variables for the given inertial
// state: latitude = asin(z/|r|) and longitude = atan2(y, x) in the
// body-fixed frame, radians, longitude normalized to (−π, π].
func (g *GeodeticComputer) Compute(epoch float64, state []float64) map[string]float64 {
	fixed := MxV33(g.model.InertialToBodyFixed(epoch), state[:3])
	lat := math.Asin(fixed[2] / norm(fixed))
	lon := wrapPi(math.Atan2(fixed[1], fixed[0]))
	return map[string]float64{VarLatitude: lat, VarLongitude: lon}
}
