package renderer

import (
	"math"
	"math/rand"

	"pathtracer/pkg/core"
)

// Camera is a thin-lens camera. A zero aperture gives a pinhole; a positive
// one focuses on the plane at FocusDistance and defocuses everything else.
// Rays carry a time drawn uniformly from [Time0, Time1] for motion blur.
type Camera struct {
	// Atmosphere selects the sky gradient background for this scene's
	// escaping rays.
	Atmosphere bool

	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3
	lensRadius      float64
	time0, time1    float64
}

// CameraConfig holds the camera placement and lens parameters.
type CameraConfig struct {
	LookFrom      core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	VerticalFOV   float64 // degrees
	AspectRatio   float64
	Aperture      float64
	FocusDistance float64
	Time0, Time1  float64
	Atmosphere    bool
}

// NewCamera builds a camera from its configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VerticalFOV * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2)
	halfWidth := config.AspectRatio * halfHeight

	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focus := config.FocusDistance
	if focus <= 0 {
		focus = config.LookFrom.Subtract(config.LookAt).Length()
	}

	origin := config.LookFrom
	lowerLeft := origin.
		Subtract(u.Multiply(halfWidth * focus)).
		Subtract(v.Multiply(halfHeight * focus)).
		Subtract(w.Multiply(focus))

	return &Camera{
		Atmosphere:      config.Atmosphere,
		origin:          origin,
		lowerLeftCorner: lowerLeft,
		horizontal:      u.Multiply(2 * halfWidth * focus),
		vertical:        v.Multiply(2 * halfHeight * focus),
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
		time0:           config.Time0,
		time1:           config.Time1,
	}
}

// GetRay returns the camera ray through film coordinates (s, t) in [0,1]
func (c *Camera) GetRay(s, t float64, rng *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		lens := core.SampleUnitDisk(rng).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(lens.X)).Add(c.v.Multiply(lens.Y))
	}

	time := c.time0
	if c.time1 > c.time0 {
		time = c.time0 + rng.Float64()*(c.time1-c.time0)
	}

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(origin)

	return core.NewRay(origin, direction, time)
}
