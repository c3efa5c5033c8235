package scene

import (
	"math/rand"

	"pathtracer/pkg/core"
	"pathtracer/pkg/geometry"
	"pathtracer/pkg/material"
	"pathtracer/pkg/renderer"
)

func init() {
	register("three-spheres", "a diffuse, a metal and a glass sphere on a gray floor", buildThreeSpheres)
	register("random-spheres", "a field of small random spheres around three large ones", buildRandomSpheres)
	register("motion", "random spheres with vertical motion blur", buildMotionSpheres)
	register("simple-light", "a sphere lit by a rectangle and a sphere lamp", buildSimpleLight)
}

func buildThreeSpheres(aspect float64) (*Scene, error) {
	world := geometry.NewWorld()
	world.Add(
		geometry.NewSphere(core.NewVec3(0.6, 0, -1), 0.5,
			material.NewDiffuse(core.NewVec3(0.75, 0.25, 0.25), 0)),
		geometry.NewSphere(core.NewVec3(-0.6, 0, -1), 0.5,
			material.NewReflective(core.NewVec3(0.5, 0.5, 0.5), 0.1)),
		geometry.NewSphere(core.NewVec3(0, 0.1, -2), 0.5,
			material.NewRefractive(1.5)),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100,
			material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5), 0)),
	)

	bvh, err := geometry.NewBVH(world.Objects, 0, 1)
	if err != nil {
		return nil, err
	}

	camera := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0.2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VerticalFOV: 60,
		AspectRatio: aspect,
		Atmosphere:  true,
	})

	return &Scene{
		Name:        "three-spheres",
		Description: Describe("three-spheres"),
		Camera:      camera,
		World:       bvh,
		Light:       nil,
	}, nil
}

// randomSphereField fills the ground plane with small spheres. Deterministic
// for a fixed seed so renders are reproducible.
func randomSphereField(rng *rand.Rand, world *geometry.World, moving bool) {
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			center := core.NewVec3(
				float64(a)+0.9*rng.Float64(),
				0.2,
				float64(b)+0.9*rng.Float64(),
			)
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			choice := rng.Float64()
			switch {
			case choice < 0.75:
				albedo := core.NewVec3(
					rng.Float64()*rng.Float64(),
					rng.Float64()*rng.Float64(),
					rng.Float64()*rng.Float64(),
				)
				diffuse := material.NewDiffuse(albedo, 0)
				if moving {
					lifted := center.Add(core.NewVec3(0, 0.5*rng.Float64(), 0))
					world.Add(geometry.NewMovingSphere(center, lifted, 0, 1, 0.2, diffuse))
				} else {
					world.Add(geometry.NewSphere(center, 0.2, diffuse))
				}
			case choice < 0.95:
				albedo := core.NewVec3(
					0.5*rng.Float64(),
					0.5*rng.Float64(),
					0.5*rng.Float64(),
				)
				world.Add(geometry.NewSphere(center, 0.2,
					material.NewReflective(albedo, 0.5*rng.Float64())))
			default:
				world.Add(geometry.NewSphere(center, 0.2, material.NewRefractive(1.5)))
				// Negative inner radius makes the shell hollow
				world.Add(geometry.NewSphere(center, -0.19, material.NewRefractive(1.5)))
			}
		}
	}
}

func sphereFieldCamera(aspect, aperture float64) *renderer.Camera {
	return renderer.NewCamera(renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VerticalFOV:   20,
		AspectRatio:   aspect,
		Aperture:      aperture,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
		Atmosphere:    true,
	})
}

func buildRandomSpheres(aspect float64) (*Scene, error) {
	rng := rand.New(rand.NewSource(42))

	world := geometry.NewWorld()
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
		material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5), 0)))
	randomSphereField(rng, world, false)
	world.Add(
		geometry.NewSphere(core.NewVec3(-2, 1, 0), 1,
			material.NewDiffuse(core.NewVec3(0.75, 0.25, 0.25), 0)),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewRefractive(1.5)),
		geometry.NewSphere(core.NewVec3(0, 1, 0), -0.99, material.NewRefractive(1.5)),
		geometry.NewSphere(core.NewVec3(2, 1, 0), 1,
			material.NewReflective(core.NewVec3(0.5, 0.5, 0.5), 0.05)),
	)

	bvh, err := geometry.NewBVH(world.Objects, 0, 1)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:        "random-spheres",
		Description: Describe("random-spheres"),
		Camera:      sphereFieldCamera(aspect, 0.05),
		World:       bvh,
		Light:       nil,
	}, nil
}

func buildMotionSpheres(aspect float64) (*Scene, error) {
	rng := rand.New(rand.NewSource(42))

	world := geometry.NewWorld()
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
		material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5), 0)))
	randomSphereField(rng, world, true)
	world.Add(geometry.NewSphere(core.NewVec3(-2, 1, 0), 1,
		material.NewDiffuse(core.NewVec3(0.75, 0.25, 0.25), 0)))

	bvh, err := geometry.NewBVH(world.Objects, 0, 1)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:        "motion",
		Description: Describe("motion"),
		Camera:      sphereFieldCamera(aspect, 0),
		World:       bvh,
		Light:       nil,
	}, nil
}

func buildSimpleLight(aspect float64) (*Scene, error) {
	world := geometry.NewWorld()
	lamp := material.NewLight(core.NewVec3(4, 4, 4))

	light := geometry.NewRectXY(3, 5, 1, 3, -2, lamp)
	world.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000,
			material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5), 0)),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2,
			material.NewDiffuse(core.NewVec3(0.4, 0.6, 0.4), 0)),
		geometry.NewSphere(core.NewVec3(0, 7, 0), 2, material.NewLight(core.NewVec3(4, 4, 4))),
		light,
	)

	bvh, err := geometry.NewBVH(world.Objects, 0, 1)
	if err != nil {
		return nil, err
	}

	camera := renderer.NewCamera(renderer.CameraConfig{
		LookFrom:    core.NewVec3(22, 4, 4),
		LookAt:      core.NewVec3(0, 2, 0),
		Up:          core.NewVec3(0, 1, 0),
		VerticalFOV: 20,
		AspectRatio: aspect,
		Atmosphere:  false,
	})

	return &Scene{
		Name:        "simple-light",
		Description: Describe("simple-light"),
		Camera:      camera,
		World:       bvh,
		Light:       light,
	}, nil
}
