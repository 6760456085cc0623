package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/polymap/pkg/geometry"
	"github.com/matzehuels/polymap/pkg/observability"
	"github.com/matzehuels/polymap/pkg/polygraph"
	"github.com/matzehuels/polymap/pkg/terrain"
)

// Runner executes the pipeline and reports progress through its logger and
// the registered observability hooks.
//
// The Runner holds no per-run state. Each Execute call builds a fresh graph,
// so results of earlier runs are never shared or mutated.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger uses the default logger.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete generate → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	result, err := r.Generate(ctx, opts)
	if err != nil {
		return nil, err
	}
	artifacts, err := r.Render(ctx, result, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	return result, nil
}

// Generate runs the geometry, graph, coastline, elevation and river stages.
// The context is checked between stages.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{Artifacts: make(map[string][]byte)}
	src := terrain.NewSource(opts.Seed)

	var d *geometry.Diagram
	err := r.stage(ctx, observability.StageGeometry, &result.Stats.GeometryTime, func() (err error) {
		d, err = geometry.Compute(opts.Width, opts.Height, opts.Points, opts.Iterations, src)
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Stats.Cells = len(d.Cells)
	r.Logger.Debug("computed diagram",
		"cells", len(d.Cells),
		"raw_edges", len(d.Edges),
		"duration", result.Stats.GeometryTime)

	err = r.stage(ctx, observability.StageGraph, &result.Stats.GraphTime, func() (err error) {
		result.Graph, err = polygraph.Build(d)
		return err
	})
	if err != nil {
		return nil, err
	}
	g := result.Graph
	result.Stats.Polygons = g.PolygonCount()
	result.Stats.Corners = g.CornerCount()
	result.Stats.Edges = g.EdgeCount()
	r.Logger.Info("built graph",
		"polygons", g.PolygonCount(),
		"corners", g.CornerCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.GraphTime)

	err = r.stage(ctx, observability.StageCoastline, &result.Stats.CoastTime, func() (err error) {
		result.Classified, err = terrain.ClassifyCoastline(g, opts.CoastOptions(), opts.NewJitter(src))
		return err
	})
	if err != nil {
		return nil, err
	}
	cs := result.Classified.Stats
	result.Stats.OceanPolygons = cs.OceanPolygons
	result.Stats.LandPolygons = cs.LandPolygons
	result.Stats.CoastCorners = cs.CoastCorners
	r.Logger.Info("classified coastline",
		"ocean", cs.OceanPolygons,
		"land", cs.LandPolygons,
		"coast_corners", cs.CoastCorners,
		"jitter", opts.Jitter,
		"duration", result.Stats.CoastTime)

	err = r.stage(ctx, observability.StageElevation, &result.Stats.ElevationTime, func() (err error) {
		result.Elevated, err = terrain.PropagateElevation(result.Classified, opts.ElevationOptions())
		return err
	})
	if err != nil {
		return nil, err
	}
	es := result.Elevated.Stats
	result.Stats.MinElevation = es.MinElevation
	result.Stats.MaxElevation = es.MaxElevation
	r.Logger.Info("propagated elevation",
		"min", es.MinElevation,
		"max", es.MaxElevation,
		"duration", result.Stats.ElevationTime)
	if es.Unreached > 0 {
		r.Logger.Warn("corners unreachable from the coast keep elevation 0", "corners", es.Unreached)
	}

	err = r.stage(ctx, observability.StageRivers, &result.Stats.RiverTime, func() (err error) {
		result.Rivers, err = terrain.TraceRivers(result.Elevated, opts.RiverOptions(), src)
		return err
	})
	if err != nil {
		return nil, err
	}
	r.reportRivers(ctx, result.Rivers)
	result.Stats.Rivers = len(result.Rivers.Rivers)
	result.Stats.Abandoned = len(result.Rivers.Abandoned)
	r.Logger.Info("traced rivers",
		"rivers", result.Stats.Rivers,
		"abandoned", result.Stats.Abandoned,
		"duration", result.Stats.RiverTime)

	return result, nil
}

// stage runs fn between the pipeline hooks and records its duration.
func (r *Runner) stage(ctx context.Context, name string, elapsed *time.Duration, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, name)
	start := time.Now()
	err := fn()
	*elapsed = time.Since(start)
	hooks.OnStageComplete(ctx, name, *elapsed, err)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (r *Runner) reportRivers(ctx context.Context, set *terrain.RiverSet) {
	hooks := observability.Rivers()
	for _, river := range set.Rivers {
		hooks.OnRiverTraced(ctx, river.Source.ID, river.Len())
		r.Logger.Debug("river",
			"source", river.Source.ID,
			"steps", river.Len(),
			"mouth", river.Last().ID)
	}
	for _, a := range set.Abandoned {
		hooks.OnRiverAbandoned(ctx, a.Steps)
		r.Logger.Warn("river abandoned", "steps", a.Steps)
	}
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
