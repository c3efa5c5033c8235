package geometry

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"pathtracer/pkg/core"
)

// unboundedHitable has no bounding box, which the BVH must reject.
type unboundedHitable struct{}

func (u unboundedHitable) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return nil, false
}
func (u unboundedHitable) BoundingBox(t0, t1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

func randomSpheres(rng *rand.Rand, count int) []core.Hitable {
	objects := make([]core.Hitable, count)
	for i := range objects {
		center := core.NewVec3(
			rng.Float64()*20-10,
			rng.Float64()*20-10,
			rng.Float64()*20-10,
		)
		radius := 0.1 + rng.Float64()*0.9
		objects[i] = NewSphere(center, radius, &stubMaterial{id: i})
	}
	return objects
}

// The index must be invisible: for any ray, traversal returns the same
// closest hit as a brute-force scan over the same primitives.
func TestBVH_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	objects := randomSpheres(rng, 120)

	bvh, err := NewBVH(objects, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	world := NewWorld()
	world.Add(objects...)

	for i := 0; i < 1000; i++ {
		origin := core.NewVec3(
			rng.Float64()*40-20,
			rng.Float64()*40-20,
			rng.Float64()*40-20,
		)
		direction := core.SampleUnitSphere(rng)
		ray := core.NewRay(origin, direction, 0)

		bvhHit, bvhOK := bvh.Hit(ray, 0.001, math.MaxFloat64)
		linearHit, linearOK := world.Hit(ray, 0.001, math.MaxFloat64)

		if bvhOK != linearOK {
			t.Fatalf("ray %d: bvh hit=%v, linear hit=%v", i, bvhOK, linearOK)
		}
		if !bvhOK {
			continue
		}
		if math.Abs(bvhHit.T-linearHit.T) > 1e-9 {
			t.Fatalf("ray %d: bvh t=%v, linear t=%v", i, bvhHit.T, linearHit.T)
		}
		if bvhHit.Material != linearHit.Material {
			t.Fatalf("ray %d: bvh and linear scan hit different primitives", i)
		}
	}
}

func TestBVH_TwoDisjointSpheres(t *testing.T) {
	left := NewSphere(core.NewVec3(-2, 0, 0), 1.0, &stubMaterial{id: 1})
	right := NewSphere(core.NewVec3(2, 0, 0), 1.0, &stubMaterial{id: 2})

	bvh, err := NewBVH([]core.Hitable{left, right}, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	tests := []struct {
		name    string
		origin  core.Vec3
		wantID  int
		wantHit bool
	}{
		{"Toward left sphere", core.NewVec3(-2, 0, 5), 1, true},
		{"Toward right sphere", core.NewVec3(2, 0, 5), 2, true},
		{"Through the gap", core.NewVec3(0, 0, 5), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, core.NewVec3(0, 0, -1), 0)
			hit, ok := bvh.Hit(ray, 0.001, math.MaxFloat64)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if ok && hit.Material.(*stubMaterial).id != tt.wantID {
				t.Errorf("hit sphere %d, want %d", hit.Material.(*stubMaterial).id, tt.wantID)
			}
		})
	}
}

func TestBVH_ClosestOfOverlappingPrimitives(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -2), 0.5, &stubMaterial{id: 1})
	far := NewSphere(core.NewVec3(0, 0, -5), 0.5, &stubMaterial{id: 2})

	bvh, err := NewBVH([]core.Hitable{far, near}, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	hit, ok := bvh.Hit(ray, 0.001, math.MaxFloat64)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Material.(*stubMaterial).id != 1 {
		t.Error("expected the nearer sphere")
	}
	if math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("t = %f, want 1.5", hit.T)
	}
}

func TestBVH_SinglePrimitive(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -2), 1.0, &stubMaterial{})
	bvh, err := NewBVH([]core.Hitable{sphere}, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1), 0)
	if _, ok := bvh.Hit(ray, 0.001, math.MaxFloat64); !ok {
		t.Error("expected hit")
	}
}

func TestBVH_EmptyListFails(t *testing.T) {
	if _, err := NewBVH(nil, 0, 1); err == nil {
		t.Error("expected error for empty primitive list")
	}
}

func TestBVH_UnboundedPrimitiveFails(t *testing.T) {
	objects := []core.Hitable{
		NewSphere(core.NewVec3(0, 0, 0), 1.0, &stubMaterial{}),
		unboundedHitable{},
	}
	_, err := NewBVH(objects, 0, 1)
	if err == nil {
		t.Fatal("expected error for primitive without a bounding box")
	}
	if !strings.Contains(err.Error(), "bounding box") {
		t.Errorf("error %q does not mention the missing bounding box", err)
	}
}

func TestBVH_DeterministicConstruction(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	objects := randomSpheres(rng, 50)

	first, err := NewBVH(objects, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}
	second, err := NewBVH(objects, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	if first.Stats() != second.Stats() {
		t.Errorf("construction not deterministic: %+v vs %+v", first.Stats(), second.Stats())
	}

	probe := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		ray := core.NewRay(
			core.NewVec3(probe.Float64()*40-20, probe.Float64()*40-20, probe.Float64()*40-20),
			core.SampleUnitSphere(probe), 0,
		)
		firstHit, firstOK := first.Hit(ray, 0.001, math.MaxFloat64)
		secondHit, secondOK := second.Hit(ray, 0.001, math.MaxFloat64)
		if firstOK != secondOK {
			t.Fatalf("ray %d: trees disagree on hit", i)
		}
		if firstOK && firstHit.T != secondHit.T {
			t.Fatalf("ray %d: trees disagree on t", i)
		}
	}
}

func TestBVH_Stats(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	objects := randomSpheres(rng, 100)

	bvh, err := NewBVH(objects, 0, 1)
	if err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	stats := bvh.Stats()
	if stats.Primitives != 100 {
		t.Errorf("primitives = %d, want 100", stats.Primitives)
	}
	if stats.Leaves == 0 || stats.Nodes == 0 {
		t.Errorf("degenerate stats: %+v", stats)
	}
	// A midpoint-split tree over n primitives stays logarithmic
	if stats.MaxDepth > 20 {
		t.Errorf("depth %d too large for 100 primitives", stats.MaxDepth)
	}
}

func TestBVH_InputSliceNotMutated(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	objects := randomSpheres(rng, 30)

	order := make([]core.Hitable, len(objects))
	copy(order, objects)

	if _, err := NewBVH(objects, 0, 1); err != nil {
		t.Fatalf("NewBVH: %v", err)
	}

	for i := range objects {
		if objects[i] != order[i] {
			t.Fatal("caller's slice was reordered")
		}
	}
}
