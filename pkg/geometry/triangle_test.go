package geometry

import (
	"math"
	"testing"

	"pathtracer/pkg/core"
)

func unitTriangle() *Triangle {
	// Right triangle in the z=0 plane with normal +z
	return NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		&stubMaterial{},
	)
}

func TestTriangle_Hit(t *testing.T) {
	tri := unitTriangle()

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		wantHit   bool
	}{
		{"Interior hit", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1), true},
		{"Near vertex hit", core.NewVec3(0.01, 0.01, 1), core.NewVec3(0, 0, -1), true},
		{"Outside edge u", core.NewVec3(-0.1, 0.5, 1), core.NewVec3(0, 0, -1), false},
		{"Outside edge v", core.NewVec3(0.5, -0.1, 1), core.NewVec3(0, 0, -1), false},
		{"Outside hypotenuse", core.NewVec3(0.6, 0.6, 1), core.NewVec3(0, 0, -1), false},
		{"Parallel to plane", core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0), false},
		{"Facing away", core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction, 0)
			hit, ok := tri.Hit(ray, 0.001, math.MaxFloat64)
			if ok != tt.wantHit {
				t.Fatalf("hit = %v, want %v", ok, tt.wantHit)
			}
			if ok {
				if math.Abs(hit.T-1.0) > 1e-9 {
					t.Errorf("t = %f, want 1.0", hit.T)
				}
				if hit.GeometricNormal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
					t.Errorf("normal = %v, want (0,0,1)", hit.GeometricNormal)
				}
			}
		})
	}
}

func TestTriangle_BarycentricCoordinates(t *testing.T) {
	tri := unitTriangle()

	// For this triangle u runs along v0->v1 and v runs along v0->v2, so a
	// hit at (x, y, 0) must report u=x, v=y.
	tests := []struct {
		x, y float64
	}{
		{0.25, 0.25},
		{0.1, 0.8},
		{0.5, 0.0},
		{0.0, 0.5},
	}

	for _, tt := range tests {
		ray := core.NewRay(core.NewVec3(tt.x, tt.y, 1), core.NewVec3(0, 0, -1), 0)
		hit, ok := tri.Hit(ray, 0.001, math.MaxFloat64)
		if !ok {
			t.Fatalf("expected hit at (%f, %f)", tt.x, tt.y)
		}
		if math.Abs(hit.U-tt.x) > 1e-9 || math.Abs(hit.V-tt.y) > 1e-9 {
			t.Errorf("barycentric (%f, %f), want (%f, %f)", hit.U, hit.V, tt.x, tt.y)
		}
	}
}

func TestSmoothTriangle_NormalInterpolation(t *testing.T) {
	// Vertex normals tilt toward +x at v1 and +y at v2
	nx := core.NewVec3(1, 0, 1).Normalize()
	ny := core.NewVec3(0, 1, 1).Normalize()
	tri := NewSmoothTriangle(
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1), nx, ny,
		&stubMaterial{},
	)

	// At v1 the shading normal matches n1 while the geometric normal stays
	// the flat face normal.
	ray := core.NewRay(core.NewVec3(0.999, 0.0005, 1), core.NewVec3(0, 0, -1), 0)
	hit, ok := tri.Hit(ray, 0.001, math.MaxFloat64)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.ShadingNormal.Subtract(nx).Length() > 1e-2 {
		t.Errorf("shading normal = %v, want approximately %v", hit.ShadingNormal, nx)
	}
	if hit.GeometricNormal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Errorf("geometric normal = %v, want (0,0,1)", hit.GeometricNormal)
	}

	// At the centroid the shading normal is the normalized average
	center := core.NewRay(core.NewVec3(1.0/3, 1.0/3, 1), core.NewVec3(0, 0, -1), 0)
	hit, ok = tri.Hit(center, 0.001, math.MaxFloat64)
	if !ok {
		t.Fatal("expected centroid hit")
	}
	wantShading := core.NewVec3(0, 0, 1).Add(nx).Add(ny).Multiply(1.0 / 3).Normalize()
	if hit.ShadingNormal.Subtract(wantShading).Length() > 1e-9 {
		t.Errorf("shading normal = %v, want %v", hit.ShadingNormal, wantShading)
	}
}

func TestTriangle_FlatShadingNormalsMatch(t *testing.T) {
	tri := unitTriangle()
	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1), 0)
	hit, ok := tri.Hit(ray, 0.001, math.MaxFloat64)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.GeometricNormal != hit.ShadingNormal {
		t.Errorf("flat triangle normals differ: geometric %v, shading %v",
			hit.GeometricNormal, hit.ShadingNormal)
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	tri := unitTriangle()
	box, ok := tri.BoundingBox(0, 1)
	if !ok {
		t.Fatal("expected bounding box")
	}
	if !box.Contains(core.NewAABB(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 0))) ||
		!box.Contains(core.NewAABB(core.NewVec3(1, 0, 0), core.NewVec3(1, 0, 0))) ||
		!box.Contains(core.NewAABB(core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0))) {
		t.Errorf("box %+v does not contain all vertices", box)
	}
	// Padded along the degenerate z axis
	if box.Max.Z <= box.Min.Z {
		t.Errorf("box has no thickness along z: [%f, %f]", box.Min.Z, box.Max.Z)
	}
}

func TestMesh_HitMatchesTriangles(t *testing.T) {
	// Two-triangle quad covering [0,1]x[0,1] at z=0
	triangles := []*Triangle{
		NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), &stubMaterial{}),
		NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0), &stubMaterial{}),
	}
	mesh, err := NewMesh(triangles, 0, 1)
	if err != nil {
		t.Fatalf("NewMesh: %v", err)
	}

	hit := core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1), 0)
	if _, ok := mesh.Hit(hit, 0.001, math.MaxFloat64); !ok {
		t.Error("expected hit on quad interior")
	}

	miss := core.NewRay(core.NewVec3(2, 2, 1), core.NewVec3(0, 0, -1), 0)
	if _, ok := mesh.Hit(miss, 0.001, math.MaxFloat64); ok {
		t.Error("expected miss outside the quad")
	}
}

func TestMesh_EmptyFails(t *testing.T) {
	if _, err := NewMesh(nil, 0, 1); err == nil {
		t.Error("expected error for empty mesh")
	}
}
