package core

import "math/rand"

// Hitable is the common contract over everything a ray can intersect:
// primitives, transform wrappers and BVH nodes. BoundingBox reports false when
// no finite box exists for the time window; scene construction treats that as
// a hard error rather than guessing.
type Hitable interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox(t0, t1 float64) (AABB, bool)
}

// Sampleable is implemented by primitives that can be importance-sampled as
// light sources. PDFValue returns the solid-angle density of sampling the
// given direction from origin (zero when the primitive cannot be reached that
// way, never a division by zero); PDFGenerate draws a direction from origin
// toward the primitive.
type Sampleable interface {
	Hitable
	PDFValue(origin, direction Vec3) float64
	PDFGenerate(origin Vec3, rng *rand.Rand) Vec3
}

// HitRecord describes a ray-primitive intersection. It is a transient value,
// created and consumed within a single bounce. The material reference is
// shared with the primitive and outlives the record.
type HitRecord struct {
	T               float64 // Ray parameter at the hit
	U, V            float64 // Surface parametrization at the hit
	Point           Vec3    // World-space hit point
	GeometricNormal Vec3    // Normal of the raw geometry
	ShadingNormal   Vec3    // Interpolated/perturbed normal, equals GeometricNormal for analytic shapes
	FrontFace       bool    // Whether the ray arrived against the outward normal
	Material        Material
}

// SetFaceNormal orients both normals against the incoming ray and records
// which side was hit. outwardGeometric decides the side; the shading normal is
// flipped together with it so the two stay consistent.
func (h *HitRecord) SetFaceNormal(ray Ray, outwardGeometric, outwardShading Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardGeometric) < 0
	if h.FrontFace {
		h.GeometricNormal = outwardGeometric
		h.ShadingNormal = outwardShading
	} else {
		h.GeometricNormal = outwardGeometric.Negate()
		h.ShadingNormal = outwardShading.Negate()
	}
}

// ScatterRecord is produced by a material on scatter. Specular transport
// carries a deterministic ray and no PDF; diffuse transport carries a PDF to
// be mixed with light sampling by the integrator.
type ScatterRecord struct {
	Specular    bool
	SpecularRay Ray  // Valid only when Specular
	Attenuation Vec3 // Per-bounce color attenuation
	PDF         PDF  // Valid only when !Specular
}

// Material maps a ray/surface interaction to emitted radiance and a sampled
// scatter event. Implementations are immutable after construction and shared
// across primitives and render workers.
type Material interface {
	// Scatter samples an outgoing event; false means the ray was absorbed.
	Scatter(rayIn Ray, hit *HitRecord, rng *rand.Rand) (ScatterRecord, bool)

	// Emitted returns the radiance emitted toward the incoming ray.
	// Non-emissive materials return black.
	Emitted(rayIn Ray, hit *HitRecord) Vec3

	// ScatteringPDF evaluates the material's own density for the scattered
	// direction. Only meaningful for non-specular materials.
	ScatteringPDF(rayIn Ray, hit *HitRecord, scattered Ray) float64
}
