package geometry

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// Translate shifts a wrapped primitive by a fixed offset. The ray is moved
// into the primitive's local frame for intersection and the hit point moved
// back out.
type Translate struct {
	Offset core.Vec3
	Child  core.Hitable
}

// NewTranslate wraps a primitive with a translation
func NewTranslate(offset core.Vec3, child core.Hitable) *Translate {
	return &Translate{Offset: offset, Child: child}
}

// Hit intersects with the offset ray and restores the hit point
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	moved := core.NewRay(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, ok := t.Child.Hit(moved, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox shifts the child's box by the offset
func (t *Translate) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := t.Child.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}
	return core.NewAABB(box.Min.Add(t.Offset), box.Max.Add(t.Offset)), true
}

// RotateY rotates a wrapped primitive about the Y axis. Rays are rotated into
// the primitive's frame, hit points and normals rotated back out.
type RotateY struct {
	Child    core.Hitable
	sinTheta float64
	cosTheta float64
}

// NewRotateY wraps a primitive with a rotation of angle degrees about Y
func NewRotateY(angleDegrees float64, child core.Hitable) *RotateY {
	radians := angleDegrees * math.Pi / 180.0
	return &RotateY{
		Child:    child,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}
}

// rotate applies the rotation by the stored angle; inverse rotation negates
// the sine term
func (r *RotateY) rotate(v core.Vec3, inverse bool) core.Vec3 {
	sin := r.sinTheta
	if inverse {
		sin = -sin
	}
	return core.Vec3{
		X: r.cosTheta*v.X + sin*v.Z,
		Y: v.Y,
		Z: -sin*v.X + r.cosTheta*v.Z,
	}
}

// Hit rotates the ray into the child's frame and the hit back into world
// space
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	rotated := core.NewRay(r.rotate(ray.Origin, true), r.rotate(ray.Direction, true), ray.Time)

	hit, ok := r.Child.Hit(rotated, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.Point = r.rotate(hit.Point, false)
	hit.GeometricNormal = r.rotate(hit.GeometricNormal, false)
	hit.ShadingNormal = r.rotate(hit.ShadingNormal, false)
	return hit, true
}

// BoundingBox transforms all 8 corners of the child's box and bounds the
// result. Rotating only the min/max corners would under-cover the rotated
// geometry.
func (r *RotateY) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	box, ok := r.Child.BoundingBox(t0, t1)
	if !ok {
		return core.AABB{}, false
	}

	corners := make([]core.Vec3, 0, 8)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				corner := core.Vec3{
					X: float64(i)*box.Max.X + float64(1-i)*box.Min.X,
					Y: float64(j)*box.Max.Y + float64(1-j)*box.Min.Y,
					Z: float64(k)*box.Max.Z + float64(1-k)*box.Min.Z,
				}
				corners = append(corners, r.rotate(corner, false))
			}
		}
	}

	return core.NewAABBFromPoints(corners...), true
}

// FlipNormals inverts the orientation of a wrapped primitive, turning its
// front faces into back faces. Used for the inward-facing walls of boxes and
// for one-sided lights.
type FlipNormals struct {
	Child core.Hitable
}

// NewFlipNormals wraps a primitive with inverted normals
func NewFlipNormals(child core.Hitable) *FlipNormals {
	return &FlipNormals{Child: child}
}

// Hit forwards to the child and flips the resulting orientation
func (f *FlipNormals) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	hit, ok := f.Child.Hit(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	hit.GeometricNormal = hit.GeometricNormal.Negate()
	hit.ShadingNormal = hit.ShadingNormal.Negate()
	hit.FrontFace = !hit.FrontFace
	return hit, true
}

// BoundingBox is unchanged by flipping
func (f *FlipNormals) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return f.Child.BoundingBox(t0, t1)
}

// PDFValue forwards to the child when it is sampleable, so a flipped area
// light can still be a sampling target
func (f *FlipNormals) PDFValue(origin, direction core.Vec3) float64 {
	if s, ok := f.Child.(core.Sampleable); ok {
		return s.PDFValue(origin, direction)
	}
	return 0
}

// PDFGenerate forwards to the child when it is sampleable
func (f *FlipNormals) PDFGenerate(origin core.Vec3, rng *rand.Rand) core.Vec3 {
	if s, ok := f.Child.(core.Sampleable); ok {
		return s.PDFGenerate(origin, rng)
	}
	return core.NewVec3(1, 0, 0)
}
