package material

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// Refractive is clear glass: it refracts by Snell's law, totals out to
// reflection past the critical angle, and chooses stochastically between the
// two by the Schlick Fresnel approximation.
type Refractive struct {
	RefractiveIndex float64
}

// NewRefractive creates a glass material with the given index of refraction
func NewRefractive(refractiveIndex float64) *Refractive {
	return &Refractive{RefractiveIndex: refractiveIndex}
}

// schlick approximates the Fresnel reflectance at the given angle
func schlick(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// refract bends uv through a surface with normal n by Snell's law
func refract(uv, n core.Vec3, etaRatio float64) core.Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	perpendicular := uv.Add(n.Multiply(cosTheta)).Multiply(etaRatio)
	parallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - perpendicular.LengthSquared())))
	return perpendicular.Add(parallel)
}

// Scatter refracts or reflects the incoming ray
func (d *Refractive) Scatter(rayIn core.Ray, hit *core.HitRecord, rng *rand.Rand) (core.ScatterRecord, bool) {
	refractionRatio := d.RefractiveIndex
	if hit.FrontFace {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	unitDirection := rayIn.Direction.Normalize()
	cosTheta := math.Min(unitDirection.Negate().Dot(hit.ShadingNormal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || schlick(cosTheta, refractionRatio) > rng.Float64() {
		direction = reflect(unitDirection, hit.ShadingNormal)
	} else {
		direction = refract(unitDirection, hit.ShadingNormal, refractionRatio)
	}

	return core.ScatterRecord{
		Specular:    true,
		SpecularRay: core.NewRay(hit.Point, direction, rayIn.Time),
		Attenuation: core.NewVec3(1, 1, 1),
	}, true
}

// Emitted returns black
func (d *Refractive) Emitted(rayIn core.Ray, hit *core.HitRecord) core.Vec3 {
	return core.Vec3{}
}

// ScatteringPDF is zero; refraction is a delta distribution
func (d *Refractive) ScatteringPDF(rayIn core.Ray, hit *core.HitRecord, scattered core.Ray) float64 {
	return 0
}
