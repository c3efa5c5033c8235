package scene

import (
	"pathtracer/pkg/core"
	"pathtracer/pkg/geometry"
	"pathtracer/pkg/material"
	"pathtracer/pkg/renderer"
)

func init() {
	register("cornell", "the Cornell box with two rotated boxes", buildCornell)
	register("cornell-smoke", "the Cornell box with the boxes swapped for fog volumes", buildCornellSmoke)
}

// cornellCamera frames the standard 555-unit box
func cornellCamera(aspect float64) *renderer.Camera {
	return renderer.NewCamera(renderer.CameraConfig{
		LookFrom:    core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VerticalFOV: 40,
		AspectRatio: aspect,
		Time0:       0,
		Time1:       1,
		Atmosphere:  false,
	})
}

// cornellShell builds the five walls plus the ceiling light and returns the
// world along with the light primitive to sample.
func cornellShell() (*geometry.World, core.Sampleable) {
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05), 0)
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15), 0)
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73), 0)
	lamp := material.NewLight(core.NewVec3(15, 15, 15))

	light := geometry.NewFlipNormals(geometry.NewRectXZ(213, 343, 227, 332, 554, lamp))

	world := geometry.NewWorld()
	world.Add(
		geometry.NewRectYZ(0, 555, 0, 555, 555, red),
		geometry.NewRectYZ(0, 555, 0, 555, 0, green),
		light,
		geometry.NewRectXZ(0, 555, 0, 555, 555, white),
		geometry.NewRectXZ(0, 555, 0, 555, 0, white),
		geometry.NewRectXY(0, 555, 0, 555, 555, white),
	)
	return world, light
}

// cornellBoxes returns the short and tall boxes in their usual poses
func cornellBoxes(short, tall core.Material) (core.Hitable, core.Hitable) {
	shortBox := geometry.NewTranslate(core.NewVec3(130, 0, 65),
		geometry.NewRotateY(-18,
			geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), short)))
	tallBox := geometry.NewTranslate(core.NewVec3(265, 0, 295),
		geometry.NewRotateY(15,
			geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), tall)))
	return shortBox, tallBox
}

func buildCornell(aspect float64) (*Scene, error) {
	world, light := cornellShell()

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73), 0)
	shortBox, tallBox := cornellBoxes(white, white)
	world.Add(shortBox, tallBox)

	bvh, err := geometry.NewBVH(world.Objects, 0, 1)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:        "cornell",
		Description: Describe("cornell"),
		Camera:      cornellCamera(aspect),
		World:       bvh,
		Light:       light,
	}, nil
}

func buildCornellSmoke(aspect float64) (*Scene, error) {
	world, light := cornellShell()

	boundary := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73), 0)
	shortBox, tallBox := cornellBoxes(boundary, boundary)
	world.Add(
		geometry.NewVolume(shortBox, 0.01, material.NewIsotropic(core.NewVec3(1, 1, 1))),
		geometry.NewVolume(tallBox, 0.01, material.NewIsotropic(core.NewVec3(0, 0, 0))),
	)

	bvh, err := geometry.NewBVH(world.Objects, 0, 1)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:        "cornell-smoke",
		Description: Describe("cornell-smoke"),
		Camera:      cornellCamera(aspect),
		World:       bvh,
		Light:       light,
	}, nil
}
