package material

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// Diffuse is a matte material using the Oren-Nayar reflectance model. Sigma
// is the surface roughness in radians; zero degrades exactly to Lambertian.
//
// Scattered directions are drawn from a cosine density about the shading
// normal, and the roughness correction rides on the ScatteringPDF term so the
// throughput update stays albedo * ScatteringPDF / samplePDF.
type Diffuse struct {
	Albedo Texture
	a, b   float64 // Oren-Nayar coefficients precomputed from sigma
}

// NewDiffuse creates a matte material with a solid color and roughness sigma
// in radians
func NewDiffuse(albedo core.Vec3, sigma float64) *Diffuse {
	return NewTexturedDiffuse(NewSolidColor(albedo), sigma)
}

// NewTexturedDiffuse creates a matte material with a texture and roughness
// sigma in radians
func NewTexturedDiffuse(albedo Texture, sigma float64) *Diffuse {
	sigma2 := sigma * sigma
	return &Diffuse{
		Albedo: albedo,
		a:      1.0 - sigma2/(2.0*(sigma2+0.33)),
		b:      0.45 * sigma2 / (sigma2 + 0.09),
	}
}

// Scatter sets up cosine sampling about the shading normal
func (d *Diffuse) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.ScatterRecord, bool) {
	return core.ScatterRecord{
		Specular:    false,
		Attenuation: d.Albedo.Value(hit.U, hit.V, hit.Point),
		PDF:         core.NewCosinePDF(hit.ShadingNormal),
	}, true
}

// Emitted returns black; diffuse surfaces do not emit
func (d *Diffuse) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{}
}

// ScatteringPDF evaluates (BRDF * cos) / albedo for the scattered direction.
// For sigma=0 this is the Lambertian cos(theta)/pi.
func (d *Diffuse) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	normal := hit.ShadingNormal
	wi := scattered.Direction.Normalize()
	wo := rayIn.Direction.Normalize().Negate()

	cosThetaI := wi.Dot(normal)
	if cosThetaI <= 0 {
		return 0
	}

	lambert := cosThetaI / math.Pi
	if d.b == 0 {
		return lambert
	}

	cosThetaO := wo.Dot(normal)
	if cosThetaO <= 0 {
		// Grazing view through a bent shading normal; keep the Lambertian
		// term rather than turning the surface black
		return lambert
	}

	sinThetaI := math.Sqrt(math.Max(0, 1.0-cosThetaI*cosThetaI))
	sinThetaO := math.Sqrt(math.Max(0, 1.0-cosThetaO*cosThetaO))

	// cos of the azimuthal angle between the two directions in the tangent
	// plane
	cosPhiDiff := 0.0
	if sinThetaI > 1e-4 && sinThetaO > 1e-4 {
		tangentI := wi.Subtract(normal.Multiply(cosThetaI)).Normalize()
		tangentO := wo.Subtract(normal.Multiply(cosThetaO)).Normalize()
		cosPhiDiff = math.Max(0, tangentI.Dot(tangentO))
	}

	sinAlpha := math.Max(sinThetaI, sinThetaO)
	tanBeta := math.Min(sinThetaI, sinThetaO) / math.Max(cosThetaI, cosThetaO)

	return lambert * (d.a + d.b*cosPhiDiff*sinAlpha*tanBeta)
}
