package renderer

import (
	"fmt"
	"math"

	"pathtracer/pkg/core"
)

// ToneMapper compresses a high dynamic range luminance into displayable
// [0, 1] range. Implementations are pure luminance curves; the renderer
// rescales RGB by mapped/original luminance so hue is preserved.
type ToneMapper interface {
	Map(luminance, maxLuminance float64) float64
}

// ToneMapperByName resolves a configuration string to an operator
func ToneMapperByName(name string) (ToneMapper, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "reinhard":
		return Reinhard{}, nil
	case "stockham":
		return Stockham{}, nil
	case "drago":
		return NewDrago(), nil
	default:
		return nil, fmt.Errorf("unknown tone mapping operator %q", name)
	}
}

// Reinhard is the photographic operator from Reinhard et al., "Photographic
// Tone Reproduction for Digital Images". The extended form burns out
// luminances approaching the scene maximum.
type Reinhard struct{}

func (Reinhard) Map(luminance, maxLuminance float64) float64 {
	if maxLuminance > 1e20 {
		return luminance / (1.0 + luminance)
	}
	return luminance * (1.0 + luminance/(maxLuminance*maxLuminance)) / (1.0 + luminance)
}

// Stockham is the logarithmic curve from Stockham, "Image Processing in the
// Context of a Visual Model".
type Stockham struct{}

func (Stockham) Map(luminance, maxLuminance float64) float64 {
	return math.Log(luminance+1.0) / math.Log(maxLuminance+1.0)
}

// Drago is the adaptive logarithmic operator from Drago et al., "Adaptive
// Logarithmic Mapping for Displaying High Contrast Scenes". Bias steers
// compression of highlights against shadow detail; DisplayLuminance is the
// display's peak in cd/m².
type Drago struct {
	DisplayLuminance float64
	Bias             float64
}

// NewDrago returns the operator with the paper's suggested defaults
func NewDrago() Drago {
	return Drago{DisplayLuminance: 100.0, Bias: 0.73}
}

func (d Drago) Map(luminance, maxLuminance float64) float64 {
	biasTerm := math.Log(d.Bias) / math.Log(0.5)

	first := d.DisplayLuminance * 0.01 / math.Log10(maxLuminance+1.0)
	second := math.Log(luminance+1.0) /
		math.Log(2.0+math.Pow(luminance/maxLuminance, biasTerm)*8.0)

	return first * second
}

// toneMapBuffer rescales every pixel's RGB by the operator's luminance curve
// in place. A nil operator leaves the buffer untouched.
func toneMapBuffer(pixels []core.Vec3, mapper ToneMapper) {
	if mapper == nil {
		return
	}

	maxLuminance := 0.0
	for _, p := range pixels {
		if l := p.Luminance(); l > maxLuminance {
			maxLuminance = l
		}
	}
	if maxLuminance <= 0 {
		return
	}

	for i, p := range pixels {
		luminance := p.Luminance()
		if luminance <= 0 {
			continue
		}
		pixels[i] = p.Multiply(mapper.Map(luminance, maxLuminance) / luminance)
	}
}
