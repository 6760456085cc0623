package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/polymap/pkg/config"
	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/pipeline"
)

// mapFlags are the generation flags shared by generate and inspect. Flag
// values only override the config file when set explicitly.
type mapFlags struct {
	config string
	opts   pipeline.Options
}

// overrides copies one flag's value from the flag-bound options into the
// resolved options.
var overrides = map[string]func(dst, src *pipeline.Options){
	"width":           func(d, s *pipeline.Options) { d.Width = s.Width },
	"height":          func(d, s *pipeline.Options) { d.Height = s.Height },
	"points":          func(d, s *pipeline.Options) { d.Points = s.Points },
	"iterations":      func(d, s *pipeline.Options) { d.Iterations = s.Iterations },
	"seed":            func(d, s *pipeline.Options) { d.Seed = s.Seed },
	"fill":            func(d, s *pipeline.Options) { d.Fill = s.Fill },
	"noise":           func(d, s *pipeline.Options) { d.Noise = s.Noise },
	"threshold":       func(d, s *pipeline.Options) { d.Threshold = s.Threshold },
	"coast-step":      func(d, s *pipeline.Options) { d.CoastStep = s.CoastStep },
	"jitter":          func(d, s *pipeline.Options) { d.Jitter = s.Jitter },
	"frequency":       func(d, s *pipeline.Options) { d.SimplexFrequency = s.SimplexFrequency },
	"elevation-step":  func(d, s *pipeline.Options) { d.ElevationStep = s.ElevationStep },
	"sea-level":       func(d, s *pipeline.Options) { d.SeaLevel = s.SeaLevel },
	"rivers":          func(d, s *pipeline.Options) { d.Rivers = s.Rivers },
	"max-river-steps": func(d, s *pipeline.Options) { d.MaxRiverSteps = s.MaxRiverSteps },
	"view":            func(d, s *pipeline.Options) { d.View = s.View },
	"scale":           func(d, s *pipeline.Options) { d.Scale = s.Scale },
	"corners":         func(d, s *pipeline.Options) { d.Corners = s.Corners },
	"sites":           func(d, s *pipeline.Options) { d.Sites = s.Sites },
	"detailed":        func(d, s *pipeline.Options) { d.Detailed = s.Detailed },
}

// addMapFlags registers the generation flags on cmd with built-in defaults.
func addMapFlags(cmd *cobra.Command, f *mapFlags) {
	f.opts = pipeline.DefaultOptions()
	o := &f.opts
	fs := cmd.Flags()

	fs.StringVarP(&f.config, "config", "c", config.DefaultPath, "TOML config file")

	// Geometry
	fs.Float64Var(&o.Width, "width", o.Width, "map width")
	fs.Float64Var(&o.Height, "height", o.Height, "map height")
	fs.IntVarP(&o.Points, "points", "n", o.Points, "number of Voronoi sites")
	fs.IntVar(&o.Iterations, "iterations", o.Iterations, "Lloyd relaxation passes")
	fs.Uint64VarP(&o.Seed, "seed", "s", o.Seed, "random seed")

	// Coastline
	fs.BoolVar(&o.Fill, "fill", o.Fill, "flood the map with land (no ocean)")
	fs.Float64Var(&o.Noise, "noise", o.Noise, "coastline jitter amplitude")
	fs.Float64Var(&o.Threshold, "threshold", o.Threshold, "border distance of the coast (0 = width/6)")
	fs.Float64Var(&o.CoastStep, "coast-step", o.CoastStep, "coastline jitter step size")
	fs.StringVar(&o.Jitter, "jitter", o.Jitter, "coastline jitter: uniform (default), simplex")
	fs.Float64Var(&o.SimplexFrequency, "frequency", o.SimplexFrequency, "simplex jitter frequency")

	// Elevation
	fs.Float64Var(&o.ElevationStep, "elevation-step", o.ElevationStep, "elevation change per corner")
	fs.Float64Var(&o.SeaLevel, "sea-level", o.SeaLevel, "elevation of coast corners")

	// Rivers
	fs.IntVarP(&o.Rivers, "rivers", "r", o.Rivers, "number of rivers")
	fs.IntVar(&o.MaxRiverSteps, "max-river-steps", o.MaxRiverSteps, "step limit per river (0 = corner count)")
}

// addRenderFlags registers the flags that only affect output.
func addRenderFlags(cmd *cobra.Command, f *mapFlags) {
	o := &f.opts
	fs := cmd.Flags()
	fs.StringVar(&o.View, "view", o.View, "what to draw: map (default), neighbors")
	fs.Float64Var(&o.Scale, "scale", o.Scale, "PNG scale factor")
	fs.BoolVar(&o.Corners, "corners", o.Corners, "draw corners (map)")
	fs.BoolVar(&o.Sites, "sites", o.Sites, "draw Voronoi sites (map)")
	fs.BoolVar(&o.Detailed, "detailed", o.Detailed, "label nodes with elevation (neighbors)")
}

// resolve loads the config file and overlays every flag set on the command
// line. A config file named explicitly must exist.
func (f *mapFlags) resolve(fs *pflag.FlagSet) (pipeline.Options, error) {
	if fs.Changed("config") {
		if _, err := os.Stat(f.config); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "config file %s", f.config)
		}
	}
	cfg, err := config.Load(f.config)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := cfg.Options()
	fs.Visit(func(fl *pflag.Flag) {
		if set, ok := overrides[fl.Name]; ok {
			set(&opts, &f.opts)
		}
	})
	return opts, nil
}
