// Package wide implements fixed-width 4-lane arithmetic for batched
// constraint kernels. Lanes are plain float32 arrays so the same code runs
// everywhere; the compiler is free to vectorize the lane loops. Batched
// solving is a throughput choice, not a semantic one: a scalar loop over the
// same pairs produces the same result up to rounding.
package wide

import gomath "math"

// Lanes is the batch width shared by all wide kernels.
const Lanes = 4

// F32 holds one scalar per lane.
type F32 [Lanes]float32

// Splat returns an F32 with every lane set to s.
func Splat(s float32) F32 {
	return F32{s, s, s, s}
}

// Add returns a + b per lane.
func (a F32) Add(b F32) F32 {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

// Sub returns a - b per lane.
func (a F32) Sub(b F32) F32 {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// Mul returns a * b per lane.
func (a F32) Mul(b F32) F32 {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

// Div returns a / b per lane.
func (a F32) Div(b F32) F32 {
	for i := range a {
		a[i] /= b[i]
	}
	return a
}

// Neg returns -a per lane.
func (a F32) Neg() F32 {
	for i := range a {
		a[i] = -a[i]
	}
	return a
}

// Max returns the per-lane maximum of a and b.
func (a F32) Max(b F32) F32 {
	for i := range a {
		if b[i] > a[i] {
			a[i] = b[i]
		}
	}
	return a
}

// Sqrt returns the per-lane square root.
func (a F32) Sqrt() F32 {
	for i := range a {
		a[i] = float32(gomath.Sqrt(float64(a[i])))
	}
	return a
}

// Vec3 holds four 3-vectors in structure-of-arrays layout.
type Vec3 struct {
	X, Y, Z F32
}

// Sub returns a - b per lane.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X.Sub(b.X), a.Y.Sub(b.Y), a.Z.Sub(b.Z)}
}

// Scale multiplies every lane's vector by that lane's scalar.
func (a Vec3) Scale(s F32) Vec3 {
	return Vec3{a.X.Mul(s), a.Y.Mul(s), a.Z.Mul(s)}
}

// Div divides every lane's vector by that lane's scalar.
func (a Vec3) Div(s F32) Vec3 {
	return Vec3{a.X.Div(s), a.Y.Div(s), a.Z.Div(s)}
}

// LengthSq returns the per-lane squared magnitude.
func (a Vec3) LengthSq() F32 {
	return a.X.Mul(a.X).Add(a.Y.Mul(a.Y)).Add(a.Z.Mul(a.Z))
}

// Length returns the per-lane magnitude.
func (a Vec3) Length() F32 {
	return a.LengthSq().Sqrt()
}
