package scene

import (
	"fmt"
	"sort"

	"pathtracer/pkg/core"
	"pathtracer/pkg/renderer"
)

// Scene bundles everything a render needs: the camera, the intersectable
// world, and the primitive the integrator samples for direct lighting (nil
// when the scene is lit by its atmosphere).
type Scene struct {
	Name        string
	Description string
	Camera      *renderer.Camera
	World       core.Hitable
	Light       core.Sampleable
}

// Builder constructs a scene for the given film aspect ratio.
type Builder func(aspect float64) (*Scene, error)

type entry struct {
	description string
	build       Builder
}

var registry = map[string]entry{}

// register adds a named scene; called from the scene files' init functions
func register(name, description string, build Builder) {
	registry[name] = entry{description: description, build: build}
}

// Build constructs the named scene
func Build(name string, aspect float64) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return e.build(aspect)
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the one-line description for a registered scene
func Describe(name string) string {
	return registry[name].description
}
