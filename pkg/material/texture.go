package material

import (
	"image"
	"math"

	"pathtracer/pkg/core"
)

// Texture supplies a color for a surface point, addressed by UV coordinates
// and the world-space hit point.
type Texture interface {
	Value(u, v float64, p core.Vec3) core.Vec3
}

// SolidColor is a uniform texture
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a uniform texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the color regardless of position
func (s *SolidColor) Value(u, v float64, p core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates two textures in a 3D checkerboard keyed on the world
// position, so it needs no UV parameterization.
type Checker struct {
	Odd   Texture
	Even  Texture
	Scale float64
}

// NewChecker creates a checkerboard of two colors with the given cell scale
func NewChecker(even, odd core.Vec3, scale float64) *Checker {
	return &Checker{
		Even:  NewSolidColor(even),
		Odd:   NewSolidColor(odd),
		Scale: scale,
	}
}

// Value picks the even or odd texture based on the sign of a sine product
func (c *Checker) Value(u, v float64, p core.Vec3) core.Vec3 {
	sines := math.Sin(c.Scale*p.X) * math.Sin(c.Scale*p.Y) * math.Sin(c.Scale*p.Z)
	if sines < 0 {
		return c.Odd.Value(u, v, p)
	}
	return c.Even.Value(u, v, p)
}

// ImageTexture maps a decoded image onto a surface by UV. V runs bottom-up
// while image rows run top-down, so the row index is flipped.
type ImageTexture struct {
	Image  image.Image
	width  int
	height int
}

// NewImageTexture wraps a decoded image
func NewImageTexture(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	return &ImageTexture{
		Image:  img,
		width:  bounds.Dx(),
		height: bounds.Dy(),
	}
}

// Value samples the nearest texel for the given UV
func (t *ImageTexture) Value(u, v float64, p core.Vec3) core.Vec3 {
	if t.width == 0 || t.height == 0 {
		return core.NewVec3(1, 0, 1)
	}

	u = clamp01(u)
	v = 1.0 - clamp01(v)

	x := int(u * float64(t.width))
	y := int(v * float64(t.height))
	if x >= t.width {
		x = t.width - 1
	}
	if y >= t.height {
		y = t.height - 1
	}

	bounds := t.Image.Bounds()
	r, g, b, _ := t.Image.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

	const scale = 1.0 / 65535.0
	return core.NewVec3(float64(r)*scale, float64(g)*scale, float64(b)*scale)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
