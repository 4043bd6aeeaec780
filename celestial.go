package astro

import (
	"fmt"
	"strings"
)

// CelestialBody defines a celestial body by its bulk properties. Immutable
// for the duration of a propagation; position and velocity queries live in
// the BodyRegistry, not here.
type CelestialBody struct {
	Name   string
	Radius float64 // Mean radius in meters.
	μ      float64 // Gravitational parameter in m³/s².
}

// NewBody returns a celestial body from its name, mean radius (m) and
// gravitational parameter (m³/s²).
func NewBody(name string, radius, gm float64) CelestialBody {
	return CelestialBody{name, radius, gm}
}

// GM returns μ (which is unexported because it's a lowercase letter).
func (c CelestialBody) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialBody) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial body is the same.
func (c CelestialBody) Equals(b CelestialBody) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.μ == b.μ
}

// BodyFromString returns the body from its name among the built-in Mars
// system bodies.
func BodyFromString(name string) (CelestialBody, error) {
	switch strings.ToLower(name) {
	case "mars":
		return Mars, nil
	case "phobos":
		return Phobos, nil
	case "deimos":
		return Deimos, nil
	default:
		return CelestialBody{}, fmt.Errorf("undefined body '%s'", name)
	}
}

/* Definitions */

// Mars is the vacation place.
var Mars = CelestialBody{"Mars", 3.396e6, 4.282837e13}

// Phobos is the bigger, lower and doomed moon of Mars.
var Phobos = CelestialBody{"Phobos", 1.108e4, 7.112e5}

// Deimos is the smaller, outer moon of Mars.
var Deimos = CelestialBody{"Deimos", 6.2e3, 9.85e4}
