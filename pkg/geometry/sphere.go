package geometry

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// Sphere is a possibly moving sphere. The center travels linearly from
// Center0 at StartTime to Center1 at EndTime; a static sphere has both centers
// equal.
type Sphere struct {
	Center0, Center1   core.Vec3
	StartTime, EndTime float64
	Radius             float64
	Material           core.Material
}

// NewSphere creates a static sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center0:  center,
		Center1:  center,
		Radius:   radius,
		Material: material,
	}
}

// NewMovingSphere creates a sphere whose center moves linearly from center0 to
// center1 over [startTime, endTime]
func NewMovingSphere(center0, center1 core.Vec3, startTime, endTime, radius float64, material core.Material) *Sphere {
	return &Sphere{
		Center0:   center0,
		Center1:   center1,
		StartTime: startTime,
		EndTime:   endTime,
		Radius:    radius,
		Material:  material,
	}
}

// Center returns the sphere center at the given time
func (s *Sphere) Center(time float64) core.Vec3 {
	if s.StartTime == s.EndTime {
		return s.Center0
	}
	progress := (time - s.StartTime) / (s.EndTime - s.StartTime)
	return s.Center0.Add(s.Center1.Subtract(s.Center0).Multiply(progress))
}

// Hit tests if a ray intersects the sphere, preferring the smaller positive
// root within [tMin, tMax]
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	center := s.Center(ray.Time)
	oc := ray.Origin.Subtract(center)

	// Quadratic a·t² + 2b·t + c = 0 with b halved
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return nil, false
		}
	}

	hit := &core.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	outwardNormal := hit.Point.Subtract(center).Multiply(1.0 / s.Radius)
	hit.U, hit.V = sphereUV(outwardNormal)
	hit.SetFaceNormal(ray, outwardNormal, outwardNormal)

	return hit, true
}

// sphereUV maps a unit normal to spherical surface coordinates
func sphereUV(normal core.Vec3) (u, v float64) {
	phi := math.Atan2(normal.Z, normal.X)
	theta := math.Asin(max(-1.0, min(1.0, normal.Y)))
	u = 1.0 - (phi+math.Pi)/(2.0*math.Pi)
	v = (theta + math.Pi/2.0) / math.Pi
	return u, v
}

// BoundingBox returns a box covering the sphere over the whole time window.
// The radius may be negative for hollow shells, so its magnitude is used.
func (s *Sphere) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	r := math.Abs(s.Radius)
	radius := core.NewVec3(r, r, r)

	box0 := core.NewAABB(s.Center(t0).Subtract(radius), s.Center(t0).Add(radius))
	box1 := core.NewAABB(s.Center(t1).Subtract(radius), s.Center(t1).Add(radius))

	return box0.SurroundingBox(box1), true
}

// PDFValue returns the solid-angle density of sampling the sphere from origin
// along direction. The sphere subtends a cone; sampling is uniform within it.
func (s *Sphere) PDFValue(origin, direction core.Vec3) float64 {
	if _, ok := s.Hit(core.NewRay(origin, direction, s.StartTime), 0.001, math.MaxFloat64); !ok {
		return 0
	}

	center := s.Center(s.StartTime)
	distanceSquared := center.Subtract(origin).LengthSquared()
	if distanceSquared <= s.Radius*s.Radius {
		// Origin inside the sphere, the cone is undefined
		return 0
	}

	cosThetaMax := math.Sqrt(1.0 - s.Radius*s.Radius/distanceSquared)
	solidAngle := 2.0 * math.Pi * (1.0 - cosThetaMax)
	if solidAngle <= 0 {
		return 0
	}
	return 1.0 / solidAngle
}

// PDFGenerate draws a direction from origin toward the sphere, uniform within
// the cone the sphere subtends
func (s *Sphere) PDFGenerate(origin core.Vec3, rng *rand.Rand) core.Vec3 {
	toCenter := s.Center(s.StartTime).Subtract(origin)
	distanceSquared := toCenter.LengthSquared()

	basis := core.NewONB(toCenter)
	return basis.Local(core.SampleToSphere(s.Radius, distanceSquared, rng))
}
