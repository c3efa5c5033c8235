package integrator

import (
	"math"
	"math/rand"
	"testing"

	"pathtracer/pkg/core"
	"pathtracer/pkg/geometry"
	"pathtracer/pkg/material"
)

func TestPathTracer_AtmosphereOnMiss(t *testing.T) {
	world := geometry.NewWorld()
	pt := NewPathTracer(10, 3, nil, true)
	rng := rand.New(rand.NewSource(42))

	up := pt.Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0), world, rng)
	want := core.NewVec3(0.5, 0.7, 1.0)
	if up.Subtract(want).Length() > 1e-9 {
		t.Errorf("zenith = %v, want %v", up, want)
	}

	down := pt.Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0), 0), world, rng)
	if down.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-9 {
		t.Errorf("nadir = %v, want white", down)
	}
}

func TestPathTracer_BlackOnMissWithoutAtmosphere(t *testing.T) {
	world := geometry.NewWorld()
	pt := NewPathTracer(10, 3, nil, false)
	rng := rand.New(rand.NewSource(42))

	got := pt.Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), 0), world, rng)
	if got != (core.Vec3{}) {
		t.Errorf("miss = %v, want black", got)
	}
}

func TestPathTracer_DirectLightHit(t *testing.T) {
	emission := core.NewVec3(4, 4, 4)
	world := geometry.NewWorld()
	world.Add(geometry.NewRectXY(-1, 1, -1, 1, -3, material.NewLight(emission)))

	pt := NewPathTracer(10, 3, nil, false)
	rng := rand.New(rand.NewSource(42))

	// Front face emits
	front := pt.Li(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0), world, rng)
	if front != emission {
		t.Errorf("front-face radiance = %v, want %v", front, emission)
	}

	// Back face absorbs without emitting
	back := pt.Li(core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 0), world, rng)
	if back != (core.Vec3{}) {
		t.Errorf("back-face radiance = %v, want black", back)
	}
}

func TestPathTracer_MaxBouncesRespected(t *testing.T) {
	// Two parallel mirrors; an unbounded walk would never terminate
	world := geometry.NewWorld()
	mirror := material.NewReflective(core.NewVec3(0.9, 0.9, 0.9), 0)
	world.Add(
		geometry.NewRectXY(-10, 10, -10, 10, 0, mirror),
		geometry.NewRectXY(-10, 10, -10, 10, 4, mirror),
	)

	pt := NewPathTracer(8, 100, nil, false)
	rng := rand.New(rand.NewSource(42))

	got := pt.Li(core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0.01, -1).Normalize(), 0), world, rng)
	for _, c := range []float64{got.X, got.Y, got.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Fatalf("radiance %v not finite", got)
		}
	}
}

// cornellSlice is a floor plus a downward-facing area light, enough scene to
// exercise the mixture estimator.
func cornellSlice() (*geometry.World, core.Sampleable) {
	floor := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73), 0)
	lamp := material.NewLight(core.NewVec3(4, 4, 4))

	light := geometry.NewFlipNormals(geometry.NewRectXZ(-1, 1, -1, 1, 3, lamp))
	world := geometry.NewWorld()
	world.Add(
		geometry.NewRectXZ(-4, 4, -4, 4, 0, floor),
		light,
	)
	return world, light
}

// The light-sampling mixture must change only the variance of the estimator,
// never its mean.
func TestPathTracer_LightSamplingIsUnbiased(t *testing.T) {
	world, light := cornellSlice()
	ray := core.NewRay(core.NewVec3(0, 2, 4), core.NewVec3(0, -0.45, -1).Normalize(), 0)

	const samples = 20000
	average := func(pt *PathTracer, seed int64) float64 {
		rng := rand.New(rand.NewSource(seed))
		sum := 0.0
		for i := 0; i < samples; i++ {
			sum += pt.Li(ray, world, rng).Luminance()
		}
		return sum / samples
	}

	withLight := average(NewPathTracer(10, 3, light, false), 42)
	withoutLight := average(NewPathTracer(10, 3, nil, false), 43)

	if withLight <= 0 || withoutLight <= 0 {
		t.Fatalf("estimates not positive: %f, %f", withLight, withoutLight)
	}
	relative := math.Abs(withLight-withoutLight) / withoutLight
	if relative > 0.1 {
		t.Errorf("means differ by %.1f%%: with light %f, without %f",
			relative*100, withLight, withoutLight)
	}
}

// Termination by roulette must not change the expected pixel color, only
// the variance.
func TestPathTracer_RouletteIsUnbiased(t *testing.T) {
	world, light := cornellSlice()
	ray := core.NewRay(core.NewVec3(0, 2, 4), core.NewVec3(0, -0.45, -1).Normalize(), 0)

	const samples = 20000
	average := func(pt *PathTracer, seed int64) float64 {
		rng := rand.New(rand.NewSource(seed))
		sum := 0.0
		for i := 0; i < samples; i++ {
			sum += pt.Li(ray, world, rng).Luminance()
		}
		return sum / samples
	}

	// RouletteStart above MaxBounces disables termination entirely
	withRoulette := average(NewPathTracer(12, 0, light, false), 42)
	withoutRoulette := average(NewPathTracer(12, 100, light, false), 43)

	relative := math.Abs(withRoulette-withoutRoulette) / withoutRoulette
	if relative > 0.1 {
		t.Errorf("means differ by %.1f%%: with roulette %f, without %f",
			relative*100, withRoulette, withoutRoulette)
	}
}

func TestPathTracer_RouletteTerminates(t *testing.T) {
	world, light := cornellSlice()

	// Even with a generous bounce cap the roulette keeps estimates finite
	// and the walk terminating
	pt := NewPathTracer(1000, 3, light, false)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		got := pt.Li(core.NewRay(core.NewVec3(0, 2, 4), core.NewVec3(0, -0.45, -1).Normalize(), 0), world, rng)
		for _, c := range []float64{got.X, got.Y, got.Z} {
			if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
				t.Fatalf("sample %d: radiance %v out of range", i, got)
			}
		}
	}
}

func TestPathTracer_ZeroBouncesOnlyEmission(t *testing.T) {
	world, light := cornellSlice()
	pt := NewPathTracer(0, 3, light, false)
	rng := rand.New(rand.NewSource(42))

	// Straight at the floor: one hit, no continuation, so no light reaches
	// the camera
	got := pt.Li(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, -1, 0), 0), world, rng)
	if got != (core.Vec3{}) {
		t.Errorf("floor with zero bounces = %v, want black", got)
	}

	// Straight at the light: emission survives
	up := pt.Li(core.NewRay(core.NewVec3(0, 2, 0), core.NewVec3(0, 1, 0), 0), world, rng)
	if up != core.NewVec3(4, 4, 4) {
		t.Errorf("light with zero bounces = %v, want (4,4,4)", up)
	}
}
