package astro

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// RotationModel computes the orientation of a body-fixed frame with respect
// to the inertial frame at a given epoch. Implementations must return an
// orthonormal 3x3 matrix which maps inertial vectors into the body-fixed
// frame.
type RotationModel interface {
	InertialToBodyFixed(epoch float64) *mat.Dense
}

// UniformRotationModel is an IAU-style rotation model: a fixed pole (right
// ascension and declination of the rotation axis in the inertial frame) and
// a prime meridian spinning at a constant rate. All angles in radians, the
// rate in radians per second, referenced to epoch zero (J2000).
type UniformRotationModel struct {
	PoleRA        float64 // Right ascension of the north pole.
	PoleDec       float64 // Declination of the north pole.
	PrimeMeridian float64 // Prime meridian angle at epoch zero.
	Rate          float64 // Spin rate about the pole.
}

// InertialToBodyFixed implements the RotationModel interface.
// The transformation is R3(W) R1(π/2−δ) R3(π/2+α) per the IAU convention.
func (u UniformRotationModel) InertialToBodyFixed(epoch float64) *mat.Dense {
	w := wrap2Pi(u.PrimeMeridian + u.Rate*epoch)
	var m mat.Dense
	m.Mul(R3(w), R1(math.Pi/2-u.PoleDec))
	m.Mul(&m, R3(math.Pi/2+u.PoleRA))
	return &m
}

// PQW2ECI converts a given vector from the perifocal frame to the inertial
// frame via the classical 3-1-3 sequence (−ω about h, −i, −Ω).
func PQW2ECI(i, ω, Ω float64, vI []float64) []float64 {
	return Rot313Vec(-ω, -i, -Ω, vI)
}

// Rot313Vec rotates a vector by the provided 3-1-3 Euler angles.
func Rot313Vec(θ1, θ2, θ3 float64, vI []float64) []float64 {
	return MxV33(R3R1R3(θ1, θ2, θ3), vI)
}

// R3R1R3 performs a 3-1-3 Euler parameter rotation.
// From Schaub and Junkins (the one in Vallado is wrong... surprisingly, right? =/)
func R3R1R3(θ1, θ2, θ3 float64) *mat.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

// R1 rotation about the 1st axis.
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat.Dense, v []float64) (o []float64) {
	vVec := mat.NewVecDense(len(v), v)
	var rVec mat.VecDense
	rVec.MulVec(m, vVec)
	return []float64{rVec.AtVec(0), rVec.AtVec(1), rVec.AtVec(2)}
}
