package material

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// Isotropic is the phase function for participating media: scattering is
// uniform over the full sphere regardless of the incoming direction.
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates a uniform phase function with a solid color
func NewIsotropic(albedo core.Vec3) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// Scatter samples a uniform direction on the sphere
func (i *Isotropic) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.ScatterRecord, bool) {
	return core.ScatterRecord{
		Specular:    false,
		Attenuation: i.Albedo.Value(hit.U, hit.V, hit.Point),
		PDF:         core.NewSpherePDF(),
	}, true
}

// Emitted returns black
func (i *Isotropic) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{}
}

// ScatteringPDF is the uniform 1/(4π) for every direction
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 1.0 / (4.0 * math.Pi)
}
