package geometry

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// Volume is a constant-density participating medium bounded by a child
// primitive. A ray entering the boundary scatters after an exponentially
// distributed free path; if the sampled path leaves the boundary first, the
// ray passes through.
type Volume struct {
	Boundary core.Hitable
	Density  float64
	Phase    core.Material
}

// NewVolume creates a constant medium inside boundary with the given density
// and phase material (typically Isotropic)
func NewVolume(boundary core.Hitable, density float64, phase core.Material) *Volume {
	return &Volume{Boundary: boundary, Density: density, Phase: phase}
}

// Hit finds the entry and exit of the boundary, then samples a scattering
// distance inside it. The stdlib global generator supplies the free-path
// draw: the Hitable contract carries no generator, and the locked global is
// safe from concurrent workers.
func (v *Volume) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	entry, ok := v.Boundary.Hit(ray, -math.MaxFloat64, math.MaxFloat64)
	if !ok {
		return nil, false
	}

	exit, ok := v.Boundary.Hit(ray, entry.T+1e-4, math.MaxFloat64)
	if !ok {
		return nil, false
	}

	tEnter := math.Max(entry.T, tMin)
	tExit := math.Min(exit.T, tMax)
	if tEnter >= tExit {
		return nil, false
	}
	if tEnter < 0 {
		tEnter = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (tExit - tEnter) * rayLength
	hitDistance := -math.Log(rand.Float64()) / v.Density

	if hitDistance >= distanceInside {
		return nil, false
	}

	t := tEnter + hitDistance/rayLength

	return &core.HitRecord{
		T:     t,
		Point: ray.At(t),
		// The normal is arbitrary for a scattering event inside a medium
		GeometricNormal: core.NewVec3(1, 0, 0),
		ShadingNormal:   core.NewVec3(1, 0, 0),
		FrontFace:       true,
		Material:        v.Phase,
	}, true
}

// BoundingBox is the boundary's box
func (v *Volume) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return v.Boundary.BoundingBox(t0, t1)
}
