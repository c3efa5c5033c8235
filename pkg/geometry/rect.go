package geometry

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// RectAxis selects the plane a rectangle lies in.
type RectAxis int

const (
	RectXY RectAxis = iota
	RectYZ
	RectXZ
)

// Padding applied to the fixed axis of a rectangle's bounding box so the BVH
// slab test never sees a degenerate zero-thickness box.
const rectPadding = 1e-4

// Rect is an axis-aligned rectangle at offset K along its fixed axis. For XY
// rectangles A spans X and B spans Y; for YZ, A spans Y and B spans Z; for XZ,
// A spans X and B spans Z.
type Rect struct {
	Axis           RectAxis
	A0, A1, B0, B1 float64
	K              float64
	Material       core.Material
}

// NewRect creates an axis-aligned rectangle
func NewRect(axis RectAxis, a0, a1, b0, b1, k float64, material core.Material) *Rect {
	return &Rect{
		Axis:     axis,
		A0:       a0,
		A1:       a1,
		B0:       b0,
		B1:       b1,
		K:        k,
		Material: material,
	}
}

// NewRectXY creates a rectangle in the z=k plane spanning [x0,x1]x[y0,y1]
func NewRectXY(x0, x1, y0, y1, k float64, material core.Material) *Rect {
	return NewRect(RectXY, x0, x1, y0, y1, k, material)
}

// NewRectYZ creates a rectangle in the x=k plane spanning [y0,y1]x[z0,z1]
func NewRectYZ(y0, y1, z0, z1, k float64, material core.Material) *Rect {
	return NewRect(RectYZ, y0, y1, z0, z1, k, material)
}

// NewRectXZ creates a rectangle in the y=k plane spanning [x0,x1]x[z0,z1]
func NewRectXZ(x0, x1, z0, z1, k float64, material core.Material) *Rect {
	return NewRect(RectXZ, x0, x1, z0, z1, k, material)
}

// Normal returns the rectangle's fixed outward normal
func (r *Rect) Normal() core.Vec3 {
	switch r.Axis {
	case RectXY:
		return core.NewVec3(0, 0, 1)
	case RectYZ:
		return core.NewVec3(1, 0, 0)
	default:
		return core.NewVec3(0, 1, 0)
	}
}

// axisIndices returns the fixed axis and the two in-plane axes as Vec3
// component indices
func (r *Rect) axisIndices() (fixed, a, b int) {
	switch r.Axis {
	case RectXY:
		return 2, 0, 1
	case RectYZ:
		return 0, 1, 2
	default:
		return 1, 0, 2
	}
}

// Hit solves the single linear plane equation for t, then bounds-checks the
// two in-plane coordinates
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	fixed, aAxis, bAxis := r.axisIndices()

	direction := ray.Direction.Axis(fixed)
	if direction == 0 {
		return nil, false // parallel to the plane
	}

	t := (r.K - ray.Origin.Axis(fixed)) / direction
	if t < tMin || t > tMax {
		return nil, false
	}

	a := ray.Origin.Axis(aAxis) + t*ray.Direction.Axis(aAxis)
	b := ray.Origin.Axis(bAxis) + t*ray.Direction.Axis(bAxis)
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return nil, false
	}

	hit := &core.HitRecord{
		T:        t,
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Point:    ray.At(t),
		Material: r.Material,
	}

	normal := r.Normal()
	hit.SetFaceNormal(ray, normal, normal)

	return hit, true
}

// BoundingBox returns the rectangle's extent padded along the fixed axis
func (r *Rect) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	switch r.Axis {
	case RectXY:
		return core.NewAABB(
			core.NewVec3(r.A0, r.B0, r.K-rectPadding),
			core.NewVec3(r.A1, r.B1, r.K+rectPadding),
		), true
	case RectYZ:
		return core.NewAABB(
			core.NewVec3(r.K-rectPadding, r.A0, r.B0),
			core.NewVec3(r.K+rectPadding, r.A1, r.B1),
		), true
	default:
		return core.NewAABB(
			core.NewVec3(r.A0, r.K-rectPadding, r.B0),
			core.NewVec3(r.A1, r.K+rectPadding, r.B1),
		), true
	}
}

// Area returns the rectangle's surface area
func (r *Rect) Area() float64 {
	return (r.A1 - r.A0) * (r.B1 - r.B0)
}

// PDFValue converts the rectangle's area density to a solid-angle density as
// seen from origin: dist² / (|cosθ| · area). Returns zero when the rectangle
// is missed, degenerate, or seen edge-on.
func (r *Rect) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := r.Hit(core.NewRay(origin, direction, 0), 0.001, math.MaxFloat64)
	if !ok {
		return 0
	}

	area := r.Area()
	if area <= 0 {
		return 0
	}

	distanceSquared := hit.T * hit.T * direction.LengthSquared()
	cosine := math.Abs(direction.Dot(hit.GeometricNormal)) / direction.Length()
	if cosine == 0 {
		return 0
	}

	return distanceSquared / (cosine * area)
}

// PDFGenerate draws a direction from origin toward a uniform random point on
// the rectangle
func (r *Rect) PDFGenerate(origin core.Vec3, rng *rand.Rand) core.Vec3 {
	a := r.A0 + rng.Float64()*(r.A1-r.A0)
	b := r.B0 + rng.Float64()*(r.B1-r.B0)

	var point core.Vec3
	switch r.Axis {
	case RectXY:
		point = core.NewVec3(a, b, r.K)
	case RectYZ:
		point = core.NewVec3(r.K, a, b)
	default:
		point = core.NewVec3(a, r.K, b)
	}

	return point.Subtract(origin)
}
