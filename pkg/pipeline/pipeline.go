// Package pipeline provides the map generation pipeline for polymap.
//
// This package runs the generator stages in their required order and renders
// the result, so the CLI and tests share one code path.
//
// # Architecture
//
// The pipeline consists of six stages:
//
//  1. Geometry: scatter sites and relax them into a Voronoi diagram
//  2. Graph: fold the diagram into polygons, corners and canonical edges
//  3. Coastline: label polygons ocean or land, corners coast, ocean or land
//  4. Elevation: breadth-first elevation field outward from the coast
//  5. Rivers: greedy downhill walks from land to the coast
//  6. Render: SVG, PNG, PDF or DOT artifacts
//
// A single random stream seeded by Options.Seed feeds geometry, uniform
// coastline jitter and river sampling, in that order, so a seed fully
// determines the map.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/polygraph"
	"github.com/matzehuels/polymap/pkg/terrain"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and config files
// =============================================================================

const (
	// DefaultWidth is the default map width in pixels.
	DefaultWidth = 1000.0

	// DefaultHeight is the default map height in pixels.
	DefaultHeight = 600.0

	// DefaultPoints is the default number of Voronoi sites.
	DefaultPoints = 200

	// DefaultIterations is the default number of relaxation passes.
	DefaultIterations = 2

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// DefaultNoise is the default coastline jitter amplitude.
	DefaultNoise = 1.0

	// DefaultRivers is the default number of rivers.
	DefaultRivers = 5

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// Jitter strategies.
const (
	JitterUniform = "uniform"
	JitterSimplex = "simplex"
)

// Views select what is drawn.
const (
	ViewMap       = "map"       // filled terrain map
	ViewNeighbors = "neighbors" // polygon neighbor graph via Graphviz
)

// Format constants for output formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported output formats per view.
var ValidFormats = map[string][]string{
	ViewMap:       {FormatSVG, FormatPNG, FormatPDF},
	ViewNeighbors: {FormatSVG, FormatPNG, FormatPDF, FormatDOT},
}

// ValidJitters is the set of supported coastline jitter strategies.
var ValidJitters = map[string]bool{
	JitterUniform: true,
	JitterSimplex: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one generation run.
type Options struct {
	// Geometry options
	Width      float64
	Height     float64
	Points     int
	Iterations int
	Seed       uint64

	// Coastline options
	Fill             bool
	Noise            float64
	Threshold        float64 // 0 means a sixth of the width
	CoastStep        float64
	Jitter           string
	SimplexFrequency float64

	// Elevation options
	ElevationStep float64
	SeaLevel      float64

	// River options
	Rivers        int
	MaxRiverSteps int // 0 means the corner count

	// Render options
	View     string
	Formats  []string
	Scale    float64
	Corners  bool
	Sites    bool
	Detailed bool

	// Runtime options
	Logger *log.Logger
}

// DefaultOptions returns the options of the reference map: 1000x600, 200
// sites, two relaxation passes, ragged coast, five rivers.
func DefaultOptions() Options {
	o := Options{
		Noise:  DefaultNoise,
		Rivers: DefaultRivers,
	}
	o.SetDefaults()
	return o
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the annotated polygon map.
	Graph *polygraph.Graph

	// Classified and Elevated are the stage results the graph went through.
	Classified *terrain.Classified
	Elevated   *terrain.Elevated

	// Rivers holds the traced and abandoned rivers.
	Rivers *terrain.RiverSet

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Cells         int
	Polygons      int
	Corners       int
	Edges         int
	OceanPolygons int
	LandPolygons  int
	CoastCorners  int
	Rivers        int
	Abandoned     int
	MinElevation  float64
	MaxElevation  float64

	GeometryTime  time.Duration
	GraphTime     time.Duration
	CoastTime     time.Duration
	ElevationTime time.Duration
	RiverTime     time.Duration
	RenderTime    time.Duration
}

// Total returns the summed stage durations.
func (s Stats) Total() time.Duration {
	return s.GeometryTime + s.GraphTime + s.CoastTime + s.ElevationTime + s.RiverTime + s.RenderTime
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid for a view.
func ValidateFormat(view, format string) error {
	if !slices.Contains(ValidFormats[view], format) {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid format for %s view: %q (must be one of: %v)",
			view, format, ValidFormats[view])
	}
	return nil
}

// ValidateFormats checks that all formats are valid for a view.
func ValidateFormats(view string, formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(view, f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if _, ok := ValidFormats[view]; !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid view: %q (must be one of: map, neighbors)", view)
	}
	return nil
}

// ValidateJitter checks that a jitter strategy is valid.
func ValidateJitter(jitter string) error {
	if !ValidJitters[jitter] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid jitter: %q (must be one of: uniform, simplex)", jitter)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills every field whose zero value is not meaningful. Noise,
// Threshold, SeaLevel, Rivers and MaxRiverSteps are left alone because zero
// is a valid setting for each of them.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Points == 0 {
		o.Points = DefaultPoints
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.CoastStep == 0 {
		o.CoastStep = terrain.DefaultCoastStep
	}
	if o.Jitter == "" {
		o.Jitter = JitterUniform
	}
	if o.ElevationStep == 0 {
		o.ElevationStep = terrain.DefaultElevationStep
	}
	if o.View == "" {
		o.View = ViewMap
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options after defaults have been applied.
func (o *Options) Validate() error {
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidatePointCount(o.Points); err != nil {
		return err
	}
	if err := errors.ValidateIterations(o.Iterations); err != nil {
		return err
	}
	if err := ValidateJitter(o.Jitter); err != nil {
		return err
	}
	if o.Rivers < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "rivers must not be negative, got %d", o.Rivers)
	}
	if o.MaxRiverSteps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max river steps must not be negative, got %d", o.MaxRiverSteps)
	}
	if o.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be positive, got %v", o.Scale)
	}
	if err := ValidateView(o.View); err != nil {
		return err
	}
	return ValidateFormats(o.View, o.Formats)
}

// ValidateAndSetDefaults applies defaults, then validates.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	return o.Validate()
}

// CoastOptions returns the coastline stage options.
func (o *Options) CoastOptions() terrain.CoastOptions {
	return terrain.CoastOptions{
		Fill:      o.Fill,
		Noise:     o.Noise,
		Threshold: o.Threshold,
		StepSize:  o.CoastStep,
	}
}

// ElevationOptions returns the elevation stage options.
func (o *Options) ElevationOptions() terrain.ElevationOptions {
	return terrain.ElevationOptions{StepSize: o.ElevationStep, SeaLevel: o.SeaLevel}
}

// RiverOptions returns the river stage options.
func (o *Options) RiverOptions() terrain.RiverOptions {
	return terrain.RiverOptions{Count: o.Rivers, MaxSteps: o.MaxRiverSteps}
}

// NewJitter returns the coastline jitter selected by o.Jitter. Uniform jitter
// draws from src; simplex jitter is seeded from o.Seed.
func (o *Options) NewJitter(src terrain.Source) terrain.Jitter {
	if o.Jitter == JitterSimplex {
		return terrain.NewSimplexJitter(int64(o.Seed), o.SimplexFrequency)
	}
	return terrain.UniformJitter{Src: src}
}
