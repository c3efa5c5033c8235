package geometry

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// Padding applied to triangle bounding boxes so axis-aligned triangles never
// produce a zero-thickness box.
const trianglePadding = 1e-4

// Triangle is a single triangle with per-vertex shading normals. The
// geometric normal is the flat face normal from the edge cross product; the
// shading normal is barycentric-interpolated and may legitimately differ, in
// which case the integrator restarts rays with an offset along the geometric
// normal.
type Triangle struct {
	V0, V1, V2 core.Vec3
	N0, N1, N2 core.Vec3
	Material   core.Material

	faceNormal core.Vec3 // cached flat normal
	bbox       core.AABB // cached bounding box
}

// NewTriangle creates a flat-shaded triangle; all vertex normals equal the
// face normal
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	normal := v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()
	return NewSmoothTriangle(v0, v1, v2, normal, normal, normal, material)
}

// NewSmoothTriangle creates a triangle with explicit per-vertex normals
func NewSmoothTriangle(v0, v1, v2, n0, n1, n2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		N0:       n0.Normalize(),
		N1:       n1.Normalize(),
		N2:       n2.Normalize(),
		Material: material,
	}
	t.faceNormal = v1.Subtract(v0).Cross(v2.Subtract(v0)).Normalize()

	bounds := core.NewAABBFromPoints(v0, v1, v2)
	padding := core.NewVec3(trianglePadding, trianglePadding, trianglePadding)
	t.bbox = core.NewAABB(bounds.Min.Subtract(padding), bounds.Max.Add(padding))

	return t
}

// Hit implements Möller-Trumbore ray/triangle intersection.
//
// Reference: Tomas Möller, Ben Trumbore, "Fast, Minimum Storage Ray/Triangle
// Intersection", Journal of Graphics Tools Vol. 2 Issue 1, 1997.
func (tr *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)

	pvec := ray.Direction.Cross(edge2)
	determinant := edge1.Dot(pvec)

	// Near-zero determinant: ray parallel to the triangle plane
	if math.Abs(determinant) < epsilon {
		return nil, false
	}

	invDeterminant := 1.0 / determinant

	tvec := ray.Origin.Subtract(tr.V0)
	u := tvec.Dot(pvec) * invDeterminant
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	qvec := tvec.Cross(edge1)
	v := ray.Direction.Dot(qvec) * invDeterminant
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	t := edge2.Dot(qvec) * invDeterminant
	if t < tMin || t > tMax {
		return nil, false
	}

	shadingNormal := tr.N0.Multiply(1.0 - u - v).
		Add(tr.N1.Multiply(u)).
		Add(tr.N2.Multiply(v)).
		Normalize()

	hit := &core.HitRecord{
		T:        t,
		U:        u,
		V:        v,
		Point:    ray.At(t),
		Material: tr.Material,
	}
	hit.SetFaceNormal(ray, tr.faceNormal, shadingNormal)

	return hit, true
}

// BoundingBox returns the padded box over the three vertices
func (tr *Triangle) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return tr.bbox, true
}

// FaceNormal returns the flat geometric normal
func (tr *Triangle) FaceNormal() core.Vec3 {
	return tr.faceNormal
}

// Mesh groups triangles under a private BVH so a model is one Hitable from
// the scene's point of view.
type Mesh struct {
	root *BVHNode
	bbox core.AABB
}

// NewMesh builds a mesh from triangles. Fails on an empty triangle list.
func NewMesh(triangles []*Triangle, time0, time1 float64) (*Mesh, error) {
	objects := make([]core.Hitable, len(triangles))
	for i, tr := range triangles {
		objects[i] = tr
	}

	root, err := NewBVH(objects, time0, time1)
	if err != nil {
		return nil, err
	}

	bbox, _ := root.BoundingBox(time0, time1)
	return &Mesh{root: root, bbox: bbox}, nil
}

// Hit forwards to the mesh's internal BVH
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return m.root.Hit(ray, tMin, tMax)
}

// BoundingBox returns the cached box over all triangles
func (m *Mesh) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return m.bbox, true
}

var _ core.Sampleable = (*Triangle)(nil)

// PDFValue converts the triangle's area density to a solid-angle density as
// seen from origin, zero when the triangle is missed or degenerate
func (tr *Triangle) PDFValue(origin, direction core.Vec3) float64 {
	hit, ok := tr.Hit(core.NewRay(origin, direction, 0), 0.001, math.MaxFloat64)
	if !ok {
		return 0
	}

	area := 0.5 * tr.V1.Subtract(tr.V0).Cross(tr.V2.Subtract(tr.V0)).Length()
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

// PDFGenerate draws a direction toward a uniform random point on the triangle
func (tr *Triangle) PDFGenerate(origin core.Vec3, rng *rand.Rand) core.Vec3 {
	// Uniform barycentric sample via the square-root warp
	r1 := math.Sqrt(rng.Float64())
	r2 := rng.Float64()

	a := 1.0 - r1
	b := r1 * (1.0 - r2)

	point := tr.V0.Multiply(a).
		Add(tr.V1.Multiply(b)).
		Add(tr.V2.Multiply(1.0 - a - b))

	return point.Subtract(origin)
}
