package material

import (
	"math/rand"

	"pathtracer/pkg/core"
)

// Light is a one-sided diffuse emitter. It absorbs every incoming ray and
// emits only from its front face, so the back of an area light stays dark.
type Light struct {
	Emission Texture
}

// NewLight creates an emissive material with uniform radiance
func NewLight(emission core.Vec3) *Light {
	return &Light{Emission: NewSolidColor(emission)}
}

// NewTexturedLight creates an emissive material with textured radiance
func NewTexturedLight(emission Texture) *Light {
	return &Light{Emission: emission}
}

// Scatter absorbs the ray; lights never bounce
func (l *Light) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.ScatterRecord, bool) {
	return core.ScatterRecord{}, false
}

// Emitted returns the radiance for front-face hits and black otherwise
func (l *Light) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	if !hit.FrontFace {
		return core.Vec3{}
	}
	return l.Emission.Value(hit.U, hit.V, hit.Point)
}

// ScatteringPDF is zero; lights do not scatter
func (l *Light) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 0
}
