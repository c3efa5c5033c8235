package integrator

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// PathTracer estimates radiance along camera rays with unidirectional path
// tracing. At diffuse surfaces it samples the next direction from an even
// mixture of the material's density and a density toward the scene light,
// which keeps direct illumination usable at low sample counts without biasing
// the estimator.
type PathTracer struct {
	// MaxBounces caps the path length.
	MaxBounces int

	// RouletteStart is the bounce index after which Russian roulette may
	// terminate the path.
	RouletteStart int

	// Light is the primitive sampled for direct lighting. Nil disables
	// light sampling and paths follow the material density alone.
	Light core.Sampleable

	// Atmosphere enables the sky gradient for escaping rays; when false
	// escaping rays contribute black, as in an enclosed scene.
	Atmosphere bool
}

// rouletteFloor keeps the termination probability away from zero so bright
// paths still terminate.
const rouletteFloor = 0.05

// NewPathTracer creates an integrator with the given path limits
func NewPathTracer(maxBounces, rouletteStart int, light core.Sampleable, atmosphere bool) *PathTracer {
	return &PathTracer{
		MaxBounces:    maxBounces,
		RouletteStart: rouletteStart,
		Light:         light,
		Atmosphere:    atmosphere,
	}
}

// background returns the radiance for a ray that escaped the scene
func (pt *PathTracer) background(ray core.Ray) core.Vec3 {
	if !pt.Atmosphere {
		return core.Vec3{}
	}
	unit := ray.Direction.Normalize()
	t := 0.5 * (unit.Y + 1.0)
	white := core.NewVec3(1.0, 1.0, 1.0)
	blue := core.NewVec3(0.5, 0.7, 1.0)
	return white.Multiply(1.0 - t).Add(blue.Multiply(t))
}

// Li returns the radiance estimate for one camera ray. The walk is
// iterative: throughput accumulates per-bounce attenuation and emission is
// added as surfaces are reached, so there is no recursion to unwind.
func (pt *PathTracer) Li(ray core.Ray, world core.Hitable, rng *rand.Rand) core.Vec3 {
	color := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for bounce := 0; bounce <= pt.MaxBounces; bounce++ {
		hit, ok := world.Hit(ray, 0.001, math.MaxFloat64)
		if !ok {
			color = color.Add(throughput.MultiplyVec(pt.background(ray)))
			break
		}

		color = color.Add(throughput.MultiplyVec(hit.Material.Emitted(ray, hit)))

		scatter, scattered := hit.Material.Scatter(ray, hit, rng)
		if !scattered {
			break
		}

		if scatter.Specular {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
			ray = scatter.SpecularRay
		} else {
			next, ok := pt.sampleDirection(ray, hit, scatter, rng)
			if !ok {
				// Zero or non-finite sample density; the estimate is
				// undefined for this direction, so drop the path
				break
			}
			throughput = throughput.MultiplyVec(next.weight)
			ray = next.ray
		}

		if bounce > pt.RouletteStart {
			kill := math.Max(1.0-throughput.MaxComponent(), rouletteFloor)
			if rng.Float64() < kill {
				break
			}
			throughput = throughput.Multiply(1.0 / (1.0 - kill))
		}
	}

	return color.DeNaN()
}

// bounceSample is one importance-sampled continuation of a diffuse path.
type bounceSample struct {
	ray    core.Ray
	weight core.Vec3
}

// sampleDirection draws the next direction from the mixture density and
// converts it to a throughput weight attenuation * scatteringPDF / density.
func (pt *PathTracer) sampleDirection(rayIn core.Ray, hit *core.HitRecord, scatter core.ScatterRecord, rng *rand.Rand) (bounceSample, bool) {
	var density core.PDF = scatter.PDF
	if pt.Light != nil {
		density = core.NewMixturePDF(core.NewHitablePDF(pt.Light, hit.Point), scatter.PDF)
	}

	direction := density.Generate(rng)
	value := density.Value(direction)
	if value <= 0 || math.IsInf(value, 0) || math.IsNaN(value) {
		return bounceSample{}, false
	}

	origin := hit.Point
	if hit.GeometricNormal != hit.ShadingNormal {
		// Interpolated shading normals can put the true surface on the
		// wrong side of the hit point; restart from a position nudged off
		// the geometric surface to avoid self-intersection
		normal := hit.GeometricNormal
		if direction.Dot(normal) < 0 {
			normal = normal.Negate()
		}
		origin = core.OffsetPoint(hit.Point, normal)
	}

	next := core.NewRay(origin, direction, rayIn.Time)
	weight := scatter.Attenuation.Multiply(hit.Material.ScatteringPDF(rayIn, hit, next) / value)

	return bounceSample{ray: next, weight: weight}, true
}
