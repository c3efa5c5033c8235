package core

import (
	"math"
	"math/rand"
)

// PDF is a sampling strategy over directions plus its density evaluator.
// Value returns the solid-angle density (>= 0) of drawing the given direction;
// Generate draws a direction from the strategy.
type PDF interface {
	Value(direction Vec3) float64
	Generate(rng *rand.Rand) Vec3
}

// CosinePDF samples the hemisphere around a normal with density cos(θ)/π.
type CosinePDF struct {
	basis ONB
}

// NewCosinePDF creates a cosine-weighted PDF over the hemisphere around normal
func NewCosinePDF(normal Vec3) *CosinePDF {
	return &CosinePDF{basis: NewONB(normal)}
}

// Value returns cos(θ)/π for directions above the surface, zero below.
// The density integrates to one over the hemisphere.
func (p *CosinePDF) Value(direction Vec3) float64 {
	cosine := direction.Normalize().Dot(p.basis.W)
	if cosine <= 0 {
		return 0
	}
	return cosine / math.Pi
}

// Generate draws a cosine-weighted direction around the normal
func (p *CosinePDF) Generate(rng *rand.Rand) Vec3 {
	return p.basis.Local(SampleCosineDirection(rng))
}

// HitablePDF samples directions from a fixed origin toward a target primitive,
// typically a light source.
type HitablePDF struct {
	target Sampleable
	origin Vec3
}

// NewHitablePDF creates a PDF that samples directions toward target from origin
func NewHitablePDF(target Sampleable, origin Vec3) *HitablePDF {
	return &HitablePDF{target: target, origin: origin}
}

// Value returns the solid-angle density of reaching the target along
// direction; zero when the target cannot be hit that way.
func (p *HitablePDF) Value(direction Vec3) float64 {
	return p.target.PDFValue(p.origin, direction)
}

// Generate draws a direction from the origin toward the target
func (p *HitablePDF) Generate(rng *rand.Rand) Vec3 {
	return p.target.PDFGenerate(p.origin, rng)
}

// SpherePDF samples uniformly over the full sphere of directions, used by
// isotropic phase functions.
type SpherePDF struct{}

// NewSpherePDF creates a uniform PDF over all directions
func NewSpherePDF() *SpherePDF {
	return &SpherePDF{}
}

// Value is the constant 1/(4π)
func (p *SpherePDF) Value(direction Vec3) float64 {
	return 1.0 / (4.0 * math.Pi)
}

// Generate draws a uniform direction on the unit sphere
func (p *SpherePDF) Generate(rng *rand.Rand) Vec3 {
	return SampleUnitSphere(rng)
}

// MixturePDF combines two strategies with fixed 0.5 weight. Mixing material
// sampling with light sampling keeps the estimator defined wherever either
// strategy has density.
type MixturePDF struct {
	a, b PDF
}

// NewMixturePDF creates an even mixture of two PDFs
func NewMixturePDF(a, b PDF) *MixturePDF {
	return &MixturePDF{a: a, b: b}
}

// Value is the arithmetic mean of the two component densities
func (p *MixturePDF) Value(direction Vec3) float64 {
	return 0.5*p.a.Value(direction) + 0.5*p.b.Value(direction)
}

// Generate flips a fair coin to choose which component samples
func (p *MixturePDF) Generate(rng *rand.Rand) Vec3 {
	if rng.Float64() < 0.5 {
		return p.a.Generate(rng)
	}
	return p.b.Generate(rng)
}
