package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config holds every render setting that can come from a file; command line
// flags override individual fields afterwards.
type Config struct {
	Render RenderConfig `yaml:"render"`
	Output OutputConfig `yaml:"output"`
}

// RenderConfig contains sampling and scene configuration
type RenderConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Samples       int    `yaml:"samples"`
	MaxBounces    int    `yaml:"max_bounces"`
	RouletteStart int    `yaml:"roulette_start"`
	Scene         string `yaml:"scene"`
	Workers       int    `yaml:"workers"` // 0 means one per CPU
	Seed          int64  `yaml:"seed"`
}

// OutputConfig contains image output configuration
type OutputConfig struct {
	File    string `yaml:"file"`
	ToneMap string `yaml:"tone_map"` // none, reinhard, stockham, drago
}

// Default returns the configuration used when no file or flags are given
func Default() Config {
	return Config{
		Render: RenderConfig{
			Width:         500,
			Height:        500,
			Samples:       100,
			MaxBounces:    10,
			RouletteStart: 3,
			Scene:         "cornell",
			Workers:       0,
			Seed:          42,
		},
		Output: OutputConfig{
			File:    "render.png",
			ToneMap: "none",
		},
	}
}

// Load reads a YAML configuration file over the defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings the renderer cannot run with
func (c Config) Validate() error {
	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid resolution %dx%d", r.Width, r.Height)
	}
	if r.Samples <= 0 {
		return fmt.Errorf("samples must be positive, got %d", r.Samples)
	}
	if r.MaxBounces < 0 {
		return fmt.Errorf("max_bounces must not be negative, got %d", r.MaxBounces)
	}
	if r.RouletteStart < 0 {
		return fmt.Errorf("roulette_start must not be negative, got %d", r.RouletteStart)
	}
	if r.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", r.Workers)
	}
	if c.Output.File == "" {
		return fmt.Errorf("output file must not be empty")
	}
	switch c.Output.ToneMap {
	case "", "none", "reinhard", "stockham", "drago":
	default:
		return fmt.Errorf("unknown tone_map %q", c.Output.ToneMap)
	}
	return nil
}
