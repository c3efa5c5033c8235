package core

import "math"

// Ray represents a ray with an origin, direction and time. InvDirection holds
// the per-axis reciprocal of the direction for AABB slab tests; components may
// be ±Inf when the direction is axis-aligned and the slab test handles that.
// Rays are immutable once constructed.
type Ray struct {
	Origin       Vec3
	Direction    Vec3
	InvDirection Vec3
	Time         float64
}

// NewRay creates a new ray at the given time, precomputing the reciprocal
// direction.
func NewRay(origin, direction Vec3, time float64) Ray {
	return Ray{
		Origin:       origin,
		Direction:    direction,
		InvDirection: Vec3{X: 1.0 / direction.X, Y: 1.0 / direction.Y, Z: 1.0 / direction.Z},
		Time:         time,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

const (
	offsetOrigin     = 1.0 / 32.0
	offsetFloatScale = 1.0 / 65536.0
	offsetIntScale   = 256.0
)

// OffsetPoint nudges p off the surface along the normal n using an integer
// offset of the floating point representation. The offset grows with the
// magnitude of p, so it stays effective far from the world origin where a
// fixed epsilon would vanish in rounding. Used to restart rays from meshes
// whose shading normal differs from the geometric normal; n must be the
// geometric normal.
//
// Reference: Wächter & Binder, "A Fast and Robust Method for Avoiding
// Self-Intersection", Ray Tracing Gems ch. 6.
func OffsetPoint(p, n Vec3) Vec3 {
	return Vec3{
		X: offsetComponent(p.X, n.X),
		Y: offsetComponent(p.Y, n.Y),
		Z: offsetComponent(p.Z, n.Z),
	}
}

func offsetComponent(p, n float64) float64 {
	// Near the origin the integer offset underflows, use a small float offset.
	if math.Abs(p) < offsetOrigin {
		return p + offsetFloatScale*n
	}

	ofi := int64(offsetIntScale * n)
	if p < 0 {
		ofi = -ofi
	}
	return math.Float64frombits(uint64(int64(math.Float64bits(p)) + ofi))
}
