package geometry

import "pathtracer/pkg/core"

// Box is an axis-aligned box assembled from six rectangles. Each face
// orients its normal against the incoming ray, so no explicit flipping is
// needed for the near and far faces.
type Box struct {
	Min, Max core.Vec3
	sides    *World
}

// NewBox creates an axis-aligned box spanning [min, max]
func NewBox(min, max core.Vec3, material core.Material) *Box {
	sides := NewWorld()

	sides.Add(
		NewRect(RectXY, min.X, max.X, min.Y, max.Y, max.Z, material),
		NewRect(RectXY, min.X, max.X, min.Y, max.Y, min.Z, material),
		NewRect(RectXZ, min.X, max.X, min.Z, max.Z, max.Y, material),
		NewRect(RectXZ, min.X, max.X, min.Z, max.Z, min.Y, material),
		NewRect(RectYZ, min.Y, max.Y, min.Z, max.Z, max.X, material),
		NewRect(RectYZ, min.Y, max.Y, min.Z, max.Z, min.X, material),
	)

	return &Box{Min: min, Max: max, sides: sides}
}

// Hit forwards to the six faces
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return b.sides.Hit(ray, tMin, tMax)
}

// BoundingBox returns the box's own extent
func (b *Box) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
