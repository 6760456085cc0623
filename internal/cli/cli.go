// Package cli implements the polymap command-line interface.
//
// # Commands
//
//   - generate: Build a terrain map and write SVG, PNG, PDF or DOT output
//   - inspect: Build a terrain map and print its statistics and elevation bands
//   - completion: Generate shell completion scripts
//
// Every option can be set in a TOML file (polymap.toml by default) and
// overridden by flags. All commands support --verbose (-v) for debug-level
// logging.
package cli

import (
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/polymap/pkg/buildinfo"
	"github.com/matzehuels/polymap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for file names and display.
	appName = "polymap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Polymap generates procedural polygon terrain maps",
		Long:         `Polymap scatters random sites, relaxes them into a Voronoi polygon map, carves an island out of the ocean, raises terrain away from the coast and runs rivers back down to the sea.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// =============================================================================
// Output Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the configured formats stay in effect.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// basePath derives the base output path. Without -o the view name is used;
// a known format extension on -o is stripped.
func basePath(output, view string) string {
	if output == "" {
		return view
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if isFormat(ext) {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// outputPath returns the file an artifact is written to. A single format
// written to an explicit -o path keeps that path verbatim.
func outputPath(output, view, format string, single bool) string {
	if single && output != "" && strings.TrimPrefix(filepath.Ext(output), ".") == format {
		return output
	}
	return basePath(output, view) + "." + format
}

func isFormat(ext string) bool {
	for _, formats := range pipeline.ValidFormats {
		if slices.Contains(formats, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
