package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/pipeline"
)

// generateCommand creates the generate command for building and rendering a map.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		flags      mapFlags
		formatsStr string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a terrain map",
		Long: `Generate a terrain map and write it to disk.

Sites are scattered at random and relaxed into a Voronoi polygon map. The
coastline splits polygons into land and ocean, elevation rises away from the
coast and rivers run downhill back to it.

The map view writes the filled polygons (svg, png, pdf). The neighbors view
writes the polygon adjacency graph (svg, png, pdf, dot). PNG and PDF output
of the map view needs rsvg-convert on PATH.

Options are read from polymap.toml when present; flags override the file.`,
		Example: `  polymap generate --seed 7 --rivers 8
  polymap generate -f svg,png -o island
  polymap generate --view neighbors -f dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			if formats := parseFormats(formatsStr); formats != nil {
				opts.Formats = formats
			}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runGenerate(ctx, opts, output)
		},
	}

	addMapFlags(cmd, &flags)
	addRenderFlags(cmd, &flags)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot (comma-separated)")

	return cmd
}

// runGenerate runs the pipeline and writes one file per requested format.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinner(ctx, fmt.Sprintf("Generating %s...", opts.View))
	spinner.Start()

	result, err := c.newRunner().Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("generate: %w", err)
	}
	spinner.Stop()

	paths, err := writeArtifacts(result.Artifacts, opts, output)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d file(s)", len(paths)))

	s := result.Stats
	printSuccess("Generated %s (seed %d)", opts.View, opts.Seed)
	printStats(s.Polygons, s.Corners, s.Edges, s.Rivers)
	for _, p := range paths {
		printFile(p)
	}
	if s.Abandoned > 0 {
		printWarning("%d river(s) abandoned after %d steps", s.Abandoned, result.Rivers.Abandoned[0].Steps)
	}
	printNewline()
	printNextStep("Inspect terrain", fmt.Sprintf("%s inspect --seed %d", appName, opts.Seed))
	return nil
}

// writeArtifacts writes each rendered format in request order and returns the
// paths written.
func writeArtifacts(artifacts map[string][]byte, opts pipeline.Options, output string) ([]string, error) {
	single := len(opts.Formats) == 1
	paths := make([]string, 0, len(opts.Formats))
	for _, format := range opts.Formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s output was rendered", format)
		}
		path := outputPath(output, opts.View, format, single)
		if err := errors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
