package core

import "math"

// ONB is an orthonormal basis around a surface normal. W is the normal
// direction.
type ONB struct {
	U, V, W Vec3
}

// NewONB builds an orthonormal frame from the given normal using the
// branchless construction of Duff et al., "Building an Orthonormal Basis,
// Revisited", JCGT Vol. 6 No. 1, 2017.
func NewONB(normal Vec3) ONB {
	w := normal.Normalize()

	sign := math.Copysign(1.0, w.Z)
	a := -1.0 / (sign + w.Z)
	b := w.X * w.Y * a

	u := NewVec3(1.0+sign*w.X*w.X*a, sign*b, -sign*w.X)
	v := NewVec3(b, sign+w.Y*w.Y*a, -w.Y)

	return ONB{U: u, V: v, W: w}
}

// Local transforms a vector from basis coordinates to world space
func (o ONB) Local(v Vec3) Vec3 {
	return o.U.Multiply(v.X).Add(o.V.Multiply(v.Y)).Add(o.W.Multiply(v.Z))
}
