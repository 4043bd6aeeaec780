package astro

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

const (
	eccentricityε = 1e-10 // Below this an orbit is treated as circular.
	angleε        = 1e-10 // Below this an inclination is treated as equatorial.
	distanceε     = 2e4   // 20 km, for orbit equality checks.
)

// InvalidElementsError is returned when the provided classical orbital
// elements do not describe a bound, non-degenerate conic (a>0, 0≤e<1).
type InvalidElementsError struct {
	A, E float64
}

func (e InvalidElementsError) Error() string {
	return fmt.Sprintf("invalid orbital elements: a=%g m, e=%g (need a>0 and 0<=e<1)", e.A, e.E)
}

// Orbit defines an orbit via its classical orbital elements about a given
// origin body. All distances in meters, all angles in radians.
type Orbit struct {
	a, e, i, Ω, ω, ν float64
	Origin           CelestialBody
}

// NewOrbitFromOE creates an orbit from the classical orbital elements:
// semi-major axis (m), eccentricity, inclination, longitude of the ascending
// node, argument of periapsis and true anomaly (radians). Only bound,
// non-degenerate conics are accepted.
func NewOrbitFromOE(a, e, i, Ω, ω, ν float64, c CelestialBody) (*Orbit, error) {
	if a <= 0 || e < 0 || e >= 1 || math.IsNaN(a) || math.IsNaN(e) {
		return nil, InvalidElementsError{a, e}
	}
	return &Orbit{a, e, wrap2Pi(i), wrap2Pi(Ω), wrap2Pi(ω), wrap2Pi(ν), c}, nil
}

// NewOrbitFromRV returns the orbital elements from the R and V vectors,
// expressed in the inertial frame centered on the origin body.
// From Vallado's RV2COE, page 113.
func NewOrbitFromRV(R, V []float64, c CelestialBody) *Orbit {
	hVec := cross(R, V)
	n := cross([]float64{0, 0, 1}, hVec)
	v := norm(V)
	r := norm(R)
	ξ := (v*v)/2 - c.μ/r
	a := -c.μ / (2 * ξ)
	eVec := make([]float64, 3)
	for i := 0; i < 3; i++ {
		eVec[i] = ((v*v-c.μ/r)*R[i] - dot(R, V)*V[i]) / c.μ
	}
	e := norm(eVec)
	i := math.Acos(hVec[2] / norm(hVec))
	ω := math.Acos(dot(n, eVec) / (norm(n) * e))
	if math.IsNaN(ω) {
		ω = 0
	}
	if eVec[2] < 0 {
		ω = 2*math.Pi - ω
	}
	Ω := math.Acos(n[0] / norm(n))
	if math.IsNaN(Ω) {
		Ω = 0
	} else if n[1] < 0 {
		Ω = 2*math.Pi - Ω
	}
	cosν := dot(eVec, R) / (e * r)
	if abscosν := math.Abs(cosν); abscosν > 1 && scalar.EqualWithinAbs(abscosν, 1, 1e-12) {
		// Welcome to the edge case which took about 1.5 hours of my time.
		cosν = sign(cosν) // GTFO NaN!
	}
	ν := math.Acos(cosν)
	if dot(R, V) < 0 {
		ν = 2*math.Pi - ν
	}
	return &Orbit{a, e, wrap2Pi(i), wrap2Pi(Ω), wrap2Pi(ω), wrap2Pi(ν), c}
}

// Elements returns the six classical orbital elements.
func (o Orbit) Elements() (a, e, i, Ω, ω, ν float64) {
	return o.a, o.e, o.i, o.Ω, o.ω, o.ν
}

// RV returns the inertial position (m) and velocity (m/s) vectors.
func (o Orbit) RV() ([]float64, []float64) {
	p := o.SemiParameter()
	// Support special orbits.
	ν := o.ν
	ω := o.ω
	Ω := o.Ω
	if o.e < eccentricityε {
		ω = 0
		if o.i < angleε {
			// Circular equatorial
			Ω = 0
			ν = o.TrueLongλ()
		} else {
			// Circular inclined
			ν = o.ArgLatitudeU()
		}
	} else if o.i < angleε {
		Ω = 0
		ω = o.Tildeω()
	}

	sinν, cosν := math.Sincos(ν)
	R := []float64{p * cosν / (1 + o.e*cosν), p * sinν / (1 + o.e*cosν), 0}
	R = PQW2ECI(o.i, ω, Ω, R)

	V := []float64{-math.Sqrt(o.Origin.μ/p) * sinν, math.Sqrt(o.Origin.μ/p) * (o.e + cosν), 0}
	V = PQW2ECI(o.i, ω, Ω, V)
	return R, V
}

// R returns the radius vector.
func (o Orbit) R() (R []float64) {
	R, _ = o.RV()
	return R
}

// V returns the velocity vector.
func (o Orbit) V() (V []float64) {
	_, V = o.RV()
	return V
}

// RNorm returns the norm of the radius vector, but without computing the
// radius vector itself.
func (o Orbit) RNorm() float64 {
	return o.SemiParameter() / (1 + o.e*math.Cos(o.ν))
}

// VNorm returns the norm of the velocity vector via the vis-viva relation.
func (o Orbit) VNorm() float64 {
	return math.Sqrt(2 * (o.Origin.μ/o.RNorm() + o.Energyξ()))
}

// Energyξ returns the specific mechanical energy ξ.
func (o Orbit) Energyξ() float64 {
	return -o.Origin.μ / (2 * o.a)
}

// SemiParameter returns the semi-parameter p.
func (o Orbit) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// Apoapsis returns the apoapsis radius.
func (o Orbit) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the periapsis radius.
func (o Orbit) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// Period returns the orbital period in seconds.
func (o Orbit) Period() float64 {
	return 2 * math.Pi * math.Sqrt(math.Pow(o.a, 3)/o.Origin.μ)
}

// Tildeω returns the longitude of periapsis.
func (o Orbit) Tildeω() float64 {
	return wrap2Pi(o.ω + o.Ω)
}

// TrueLongλ returns the *approximate* true longitude (cf. Vallado page 103).
// NOTE: One should only need this for equatorial orbits.
func (o Orbit) TrueLongλ() float64 {
	return wrap2Pi(o.ω + o.Ω + o.ν)
}

// ArgLatitudeU returns the argument of latitude.
func (o Orbit) ArgLatitudeU() float64 {
	return wrap2Pi(o.ν + o.ω)
}

// SinCosE returns the eccentric anomaly trig functions (sin and cos).
func (o Orbit) SinCosE() (sinE, cosE float64) {
	sinν, cosν := math.Sincos(o.ν)
	denom := 1 + o.e*cosν
	sinE = math.Sqrt(1-o.e*o.e) * sinν / denom
	cosE = (o.e + cosν) / denom
	return
}

// String implements the Stringer interface (hence the value receiver).
func (o Orbit) String() string {
	return fmt.Sprintf("a=%.1f e=%.6f i=%.4f Ω=%.4f ω=%.4f ν=%.4f", o.a, o.e, o.i, o.Ω, o.ω, o.ν)
}

// Equals returns whether two orbits are identical within the conversion
// tolerances.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if !o.Origin.Equals(o1.Origin) {
		return false, fmt.Errorf("different origin")
	}
	if !scalar.EqualWithinAbs(o.a, o1.a, distanceε) {
		return false, fmt.Errorf("semi major axis invalid")
	}
	if !scalar.EqualWithinAbs(o.e, o1.e, 1e-6) {
		return false, fmt.Errorf("eccentricity invalid")
	}
	for _, it := range []struct {
		name   string
		θ0, θ1 float64
	}{{"inclination", o.i, o1.i}, {"RAAN", o.Ω, o1.Ω}, {"argument of periapsis", o.ω, o1.ω}, {"true anomaly", o.ν, o1.ν}} {
		if !scalar.EqualWithinAbs(wrapPi(it.θ0-it.θ1), 0, 1e-6) {
			return false, fmt.Errorf("%s invalid", it.name)
		}
	}
	return true, nil
}
