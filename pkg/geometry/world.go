package geometry

import "pathtracer/pkg/core"

// World is an ordered collection of primitives with linear-scan intersection.
// It is the input to BVH construction and the brute-force oracle in tests; it
// is not traversed at render time once a BVH exists.
type World struct {
	Objects []core.Hitable
}

// NewWorld creates an empty world
func NewWorld() *World {
	return &World{}
}

// Add appends a primitive to the world
func (w *World) Add(objects ...core.Hitable) {
	w.Objects = append(w.Objects, objects...)
}

// Hit scans every primitive and returns the closest hit, tightening tMax as
// hits are found
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closest *core.HitRecord
	closestSoFar := tMax

	for _, object := range w.Objects {
		if hit, ok := object.Hit(ray, tMin, closestSoFar); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}

	return closest, closest != nil
}

// BoundingBox returns the union box over every primitive; false when the
// world is empty or any primitive lacks a box
func (w *World) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	if len(w.Objects) == 0 {
		return core.AABB{}, false
	}

	var union core.AABB
	for i, object := range w.Objects {
		box, ok := object.BoundingBox(t0, t1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			union = box
		} else {
			union = union.SurroundingBox(box)
		}
	}

	return union, true
}
