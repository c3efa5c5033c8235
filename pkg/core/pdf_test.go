package core

import (
	"math"
	"math/rand"
	"testing"
)

// The cosine density must integrate to one over the hemisphere. Estimate the
// integral with uniform hemisphere samples: ∫ value dΩ ≈ 2π · mean(value).
func TestCosinePDF_IntegratesToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pdf := NewCosinePDF(NewVec3(0, 0, 1))

	const samples = 200000
	sum := 0.0
	for i := 0; i < samples; i++ {
		dir := SampleUnitSphere(rng)
		if dir.Z < 0 {
			dir = dir.Negate() // fold onto the upper hemisphere
		}
		sum += pdf.Value(dir)
	}

	integral := 2.0 * math.Pi * sum / float64(samples)
	if math.Abs(integral-1.0) > 0.01 {
		t.Errorf("cosine PDF integral = %f, want 1.0 ± 0.01", integral)
	}
}

func TestCosinePDF_ValueMatchesCosine(t *testing.T) {
	normal := NewVec3(0, 1, 0)
	pdf := NewCosinePDF(normal)

	tests := []struct {
		name      string
		direction Vec3
		want      float64
	}{
		{"Along normal", NewVec3(0, 1, 0), 1.0 / math.Pi},
		{"45 degrees", NewVec3(1, 1, 0).Normalize(), math.Sqrt(2) / 2 / math.Pi},
		{"Grazing", NewVec3(1, 0, 0), 0},
		{"Below surface", NewVec3(0, -1, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pdf.Value(tt.direction); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Value(%v) = %f, want %f", tt.direction, got, tt.want)
			}
		})
	}
}

func TestCosinePDF_GeneratedDirectionsAboveSurface(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	normal := NewVec3(0.3, -0.5, 0.8).Normalize()
	pdf := NewCosinePDF(normal)

	for i := 0; i < 1000; i++ {
		dir := pdf.Generate(rng)
		if dir.Dot(normal) < 0 {
			t.Fatalf("generated direction %v below surface with normal %v", dir, normal)
		}
		if pdf.Value(dir) <= 0 {
			t.Fatalf("generated direction %v has non-positive density", dir)
		}
	}
}

// fixedSampleable always reports the same density and samples the same
// direction, so mixture behavior is observable exactly.
type fixedSampleable struct {
	density   float64
	direction Vec3
}

func (f fixedSampleable) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) { return nil, false }
func (f fixedSampleable) BoundingBox(t0, t1 float64) (AABB, bool)            { return AABB{}, false }
func (f fixedSampleable) PDFValue(origin, direction Vec3) float64            { return f.density }
func (f fixedSampleable) PDFGenerate(origin Vec3, rng *rand.Rand) Vec3       { return f.direction }

func TestMixturePDF_ValueIsArithmeticMean(t *testing.T) {
	a := NewHitablePDF(fixedSampleable{density: 0.8}, NewVec3(0, 0, 0))
	b := NewHitablePDF(fixedSampleable{density: 0.2}, NewVec3(0, 0, 0))
	mix := NewMixturePDF(a, b)

	if got := mix.Value(NewVec3(0, 0, 1)); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("mixture value = %f, want 0.5", got)
	}
}

func TestMixturePDF_GenerateSplitsEvenly(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	dirA := NewVec3(1, 0, 0)
	dirB := NewVec3(0, 1, 0)
	mix := NewMixturePDF(
		NewHitablePDF(fixedSampleable{direction: dirA}, Vec3{}),
		NewHitablePDF(fixedSampleable{direction: dirB}, Vec3{}),
	)

	const samples = 100000
	countA := 0
	for i := 0; i < samples; i++ {
		if mix.Generate(rng) == dirA {
			countA++
		}
	}

	fraction := float64(countA) / float64(samples)
	if math.Abs(fraction-0.5) > 0.01 {
		t.Errorf("component A sampled %.3f of the time, want 0.5 ± 0.01", fraction)
	}
}

func TestHitablePDF_ZeroDensityTarget(t *testing.T) {
	// A target that can never be reached reports zero density, which the
	// integrator treats as "drop this sample" rather than dividing by it.
	pdf := NewHitablePDF(fixedSampleable{density: 0}, NewVec3(0, 0, 0))
	if got := pdf.Value(NewVec3(0, 1, 0)); got != 0 {
		t.Errorf("Value = %f, want 0 for unreachable target", got)
	}
}
