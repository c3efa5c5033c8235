package material

import (
	"math/rand"

	"pathtracer/pkg/core"
)

// Reflective is a metal surface. Fuzz perturbs the mirror direction inside a
// sphere of the given radius; 0 is a perfect mirror.
type Reflective struct {
	Albedo core.Vec3
	Fuzz   float64
}

// NewReflective creates a metal material, clamping fuzz to [0, 1]
func NewReflective(albedo core.Vec3, fuzz float64) *Reflective {
	if fuzz < 0 {
		fuzz = 0
	}
	if fuzz > 1 {
		fuzz = 1
	}
	return &Reflective{Albedo: albedo, Fuzz: fuzz}
}

// reflect mirrors v about the normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// Scatter produces the mirrored ray. Fuzzed rays that end up under the
// surface are absorbed.
func (m *Reflective) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.ScatterRecord, bool) {
	reflected := reflect(rayIn.Direction.Normalize(), hit.ShadingNormal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SampleUnitSphere(rng).Multiply(m.Fuzz))
	}

	if reflected.Dot(hit.ShadingNormal) <= 0 {
		return core.ScatterRecord{}, false
	}

	return core.ScatterRecord{
		Specular:    true,
		SpecularRay: core.NewRay(hit.Point, reflected, rayIn.Time),
		Attenuation: m.Albedo,
	}, true
}

// Emitted returns black
func (m *Reflective) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{}
}

// ScatteringPDF is zero; the mirror direction is a delta distribution
func (m *Reflective) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 0
}
