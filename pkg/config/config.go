// Package config reads polymap settings from a TOML file.
//
// A config file mirrors the pipeline stages:
//
//	[map]
//	width = 1200
//	height = 800
//	points = 400
//	seed = 7
//
//	[coast]
//	fill = true
//	jitter = "simplex"
//
//	[rivers]
//	count = 8
//
// Missing keys keep their built-in defaults. Unknown keys are rejected so
// typos do not silently fall back to defaults.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/pipeline"
)

// DefaultPath is the config file the CLI reads when no --config is given.
const DefaultPath = "polymap.toml"

// Config holds all user-facing configuration for polymap.
type Config struct {
	Map       MapConfig       `toml:"map"`
	Coast     CoastConfig     `toml:"coast"`
	Elevation ElevationConfig `toml:"elevation"`
	Rivers    RiversConfig    `toml:"rivers"`
	Render    RenderConfig    `toml:"render"`
}

type MapConfig struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Points     int     `toml:"points"`
	Iterations int     `toml:"iterations"`
	Seed       uint64  `toml:"seed"`
}

type CoastConfig struct {
	Fill             bool    `toml:"fill"`
	Noise            float64 `toml:"noise"`
	Threshold        float64 `toml:"threshold"`
	Step             float64 `toml:"step"`
	Jitter           string  `toml:"jitter"`
	SimplexFrequency float64 `toml:"simplex_frequency"`
}

type ElevationConfig struct {
	Step     float64 `toml:"step"`
	SeaLevel float64 `toml:"sea_level"`
}

type RiversConfig struct {
	Count    int `toml:"count"`
	MaxSteps int `toml:"max_steps"`
}

type RenderConfig struct {
	View     string   `toml:"view"`
	Formats  []string `toml:"formats"`
	Scale    float64  `toml:"scale"`
	Corners  bool     `toml:"corners"`
	Sites    bool     `toml:"sites"`
	Detailed bool     `toml:"detailed"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	o := pipeline.DefaultOptions()
	return &Config{
		Map: MapConfig{
			Width:      o.Width,
			Height:     o.Height,
			Points:     o.Points,
			Iterations: o.Iterations,
			Seed:       o.Seed,
		},
		Coast: CoastConfig{
			Fill:             o.Fill,
			Noise:            o.Noise,
			Threshold:        o.Threshold,
			Step:             o.CoastStep,
			Jitter:           o.Jitter,
			SimplexFrequency: o.SimplexFrequency,
		},
		Elevation: ElevationConfig{Step: o.ElevationStep, SeaLevel: o.SeaLevel},
		Rivers:    RiversConfig{Count: o.Rivers, MaxSteps: o.MaxRiverSteps},
		Render: RenderConfig{
			View:    o.View,
			Formats: o.Formats,
			Scale:   o.Scale,
		},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return cfg, nil
}

// Parse decodes TOML text on top of the defaults.
func Parse(data string) (*Config, error) {
	cfg := Defaults()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(names, ", "))
}

// Options converts the config into pipeline options.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		Width:            c.Map.Width,
		Height:           c.Map.Height,
		Points:           c.Map.Points,
		Iterations:       c.Map.Iterations,
		Seed:             c.Map.Seed,
		Fill:             c.Coast.Fill,
		Noise:            c.Coast.Noise,
		Threshold:        c.Coast.Threshold,
		CoastStep:        c.Coast.Step,
		Jitter:           c.Coast.Jitter,
		SimplexFrequency: c.Coast.SimplexFrequency,
		ElevationStep:    c.Elevation.Step,
		SeaLevel:         c.Elevation.SeaLevel,
		Rivers:           c.Rivers.Count,
		MaxRiverSteps:    c.Rivers.MaxSteps,
		View:             c.Render.View,
		Formats:          c.Render.Formats,
		Scale:            c.Render.Scale,
		Corners:          c.Render.Corners,
		Sites:            c.Render.Sites,
		Detailed:         c.Render.Detailed,
	}
}
