package astro

import (
	"fmt"
	"math"
)

// Ephemeris supplies the inertial position (m) and velocity (m/s) of one
// body at a given epoch, in the frame of the body registry.
type Ephemeris interface {
	StateAt(epoch float64) (R, V []float64)
}

// FixedEphemeris pins a body at a constant state. Its zero value is the
// frame origin, which is what the central body of a propagation uses.
type FixedEphemeris struct {
	R, V []float64
}

// StateAt implements the Ephemeris interface.
func (f FixedEphemeris) StateAt(epoch float64) ([]float64, []float64) {
	R, V := []float64{0, 0, 0}, []float64{0, 0, 0}
	if f.R != nil {
		copy(R, f.R)
	}
	if f.V != nil {
		copy(V, f.V)
	}
	return R, V
}

// KeplerianEphemeris propagates a body along an unperturbed two-body orbit
// from its elements at a reference epoch, by advancing the mean anomaly and
// solving Kepler's equation.
type KeplerianEphemeris struct {
	orbit    Orbit
	refEpoch float64
	n        float64 // Mean motion.
	m0       float64 // Mean anomaly at the reference epoch.
}

// NewKeplerianEphemeris returns an analytic two-body ephemeris for the
// provided osculating orbit at the reference epoch.
func NewKeplerianEphemeris(o *Orbit, refEpoch float64) *KeplerianEphemeris {
	sinE, cosE := o.SinCosE()
	E := math.Atan2(sinE, cosE)
	m0 := wrap2Pi(E - o.e*math.Sin(E))
	n := math.Sqrt(o.Origin.μ / math.Pow(o.a, 3))
	return &KeplerianEphemeris{*o, refEpoch, n, m0}
}

// StateAt implements the Ephemeris interface.
func (k *KeplerianEphemeris) StateAt(epoch float64) ([]float64, []float64) {
	M := wrap2Pi(k.m0 + k.n*(epoch-k.refEpoch))
	E := solveKepler(M, k.orbit.e)
	sinE, cosE := math.Sincos(E)
	ν := math.Atan2(math.Sqrt(1-k.orbit.e*k.orbit.e)*sinE, cosE-k.orbit.e)
	o := k.orbit
	o.ν = wrap2Pi(ν)
	return o.RV()
}

// solveKepler returns the eccentric anomaly for the given mean anomaly and
// eccentricity via Newton iterations on E - e·sin(E) = M.
func solveKepler(M, e float64) float64 {
	E := M
	if e > 0.8 {
		E = math.Pi
	}
	for iter := 0; iter < 50; iter++ {
		δ := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= δ
		if math.Abs(δ) < 1e-13 {
			break
		}
	}
	return E
}

// UndefinedFrameError is returned when a body-fixed frame query is made for
// a body which has no registered rotation model.
type UndefinedFrameError struct {
	Body string
}

func (e UndefinedFrameError) Error() string {
	return fmt.Sprintf("no rotation model registered for body '%s'", e.Body)
}

type registryEntry struct {
	body     CelestialBody
	eph      Ephemeris
	rotation RotationModel
}

// BodyRegistry resolves body names to bulk properties, ephemerides and
// rotation models. It must be fully populated before a propagation starts
// and is read-only afterwards; there is no hidden global registry.
type BodyRegistry struct {
	entries map[string]*registryEntry
}

// NewBodyRegistry returns an empty registry.
func NewBodyRegistry() *BodyRegistry {
	return &BodyRegistry{entries: make(map[string]*registryEntry)}
}

// Register adds a body and its ephemeris to the registry, replacing any
// previous entry of the same name.
func (r *BodyRegistry) Register(body CelestialBody, eph Ephemeris) {
	r.entries[body.Name] = &registryEntry{body: body, eph: eph}
}

// Body returns the bulk properties of the named body.
func (r *BodyRegistry) Body(name string) (CelestialBody, error) {
	entry, found := r.entries[name]
	if !found {
		return CelestialBody{}, fmt.Errorf("body '%s' not in registry", name)
	}
	return entry.body, nil
}

// StateAt returns the inertial position and velocity of the named body.
func (r *BodyRegistry) StateAt(name string, epoch float64) ([]float64, []float64, error) {
	entry, found := r.entries[name]
	if !found {
		return nil, nil, fmt.Errorf("body '%s' not in registry", name)
	}
	R, V := entry.eph.StateAt(epoch)
	return R, V, nil
}

// SetRotationModel attaches a body-fixed rotation model to the named body.
func (r *BodyRegistry) SetRotationModel(name string, m RotationModel) error {
	entry, found := r.entries[name]
	if !found {
		return fmt.Errorf("body '%s' not in registry", name)
	}
	entry.rotation = m
	return nil
}

// RotationModel returns the rotation model of the named body, or an
// UndefinedFrameError if none is registered.
func (r *BodyRegistry) RotationModel(name string) (RotationModel, error) {
	entry, found := r.entries[name]
	if !found || entry.rotation == nil {
		return nil, UndefinedFrameError{name}
	}
	return entry.rotation, nil
}

// MarsRotationModel is the IAU uniform rotation model of Mars (constant
// pole, linear prime meridian).
var MarsRotationModel = UniformRotationModel{
	PoleRA:        317.68143 * deg2rad,
	PoleDec:       52.88650 * deg2rad,
	PrimeMeridian: 176.630 * deg2rad,
	Rate:          350.89198226 * deg2rad / 86400,
}

// DefaultMarsSystem returns a registry with Mars pinned at the frame origin
// and Phobos and Deimos on analytic Keplerian ephemerides, with the Mars
// rotation model attached.
func DefaultMarsSystem() *BodyRegistry {
	reg := NewBodyRegistry()
	reg.Register(Mars, FixedEphemeris{})
	phobosOrbit, _ := NewOrbitFromOE(9.3772e6, 0.0151, 1.075*deg2rad, 0, 0, 0, Mars)
	reg.Register(Phobos, NewKeplerianEphemeris(phobosOrbit, 0))
	deimosOrbit, _ := NewOrbitFromOE(2.34632e7, 0.00033, 1.788*deg2rad, 0, 0, 0, Mars)
	reg.Register(Deimos, NewKeplerianEphemeris(deimosOrbit, 0))
	reg.SetRotationModel(Mars.Name, MarsRotationModel)
	return reg
}
