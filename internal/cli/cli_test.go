package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/polymap/pkg/errors"
	"github.com/matzehuels/polymap/pkg/pipeline"
	"github.com/matzehuels/polymap/pkg/terrain"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"generate", "inspect", "completion"} {
		if !slices.Contains(names, want) {
			t.Errorf("root command lacks %q, has %v", want, names)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" SVG , pdf ,", []string{"svg", "pdf"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, view, format string
		single               bool
		want                 string
	}{
		{"", "map", "svg", true, "map.svg"},
		{"", "neighbors", "dot", false, "neighbors.dot"},
		{"island.svg", "map", "svg", true, "island.svg"},
		{"island.svg", "map", "png", false, "island.png"},
		{"out/island", "map", "pdf", true, "out/island.pdf"},
		{"island.v2", "map", "svg", true, "island.v2.svg"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, tt.view, tt.format, tt.single); got != tt.want {
			t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q",
				tt.output, tt.view, tt.format, tt.single, got, tt.want)
		}
	}
}

func TestResolveOverlaysExplicitFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "polymap.toml")
	cfg := "[map]\nseed = 7\npoints = 50\n\n[rivers]\ncount = 2\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := &cobra.Command{}
	var f mapFlags
	addMapFlags(cmd, &f)
	if err := cmd.ParseFlags([]string{"--config", path, "--points", "80", "--jitter", "simplex"}); err != nil {
		t.Fatal(err)
	}

	opts, err := f.resolve(cmd.Flags())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if opts.Seed != 7 {
		t.Errorf("Seed = %d, want 7 from the config file", opts.Seed)
	}
	if opts.Points != 80 {
		t.Errorf("Points = %d, want 80 from the flag", opts.Points)
	}
	if opts.Rivers != 2 {
		t.Errorf("Rivers = %d, want 2 from the config file", opts.Rivers)
	}
	if opts.Jitter != pipeline.JitterSimplex {
		t.Errorf("Jitter = %q, want %q", opts.Jitter, pipeline.JitterSimplex)
	}
	if opts.Width != pipeline.DefaultWidth {
		t.Errorf("Width = %v, want default %v", opts.Width, pipeline.DefaultWidth)
	}
}

func TestResolveMissingExplicitConfig(t *testing.T) {
	cmd := &cobra.Command{}
	var f mapFlags
	addMapFlags(cmd, &f)
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if err := cmd.ParseFlags([]string{"--config", missing}); err != nil {
		t.Fatal(err)
	}

	_, err := f.resolve(cmd.Flags())
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("resolve() error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateWritesMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "island.svg")
	if _, err := runRoot(t, "generate", "-o", path, "--rivers", "2"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	svg := string(data)
	if !strings.Contains(svg, "<svg") {
		t.Fatalf("output is not SVG: %.80q", svg)
	}
	if !strings.Contains(svg, terrain.OceanFill) {
		t.Error("map should contain ocean polygons")
	}
	if !strings.Contains(svg, terrain.RiverStroke) {
		t.Error("map should contain river edges")
	}
}

func TestGenerateNeighborsDOT(t *testing.T) {
	base := filepath.Join(t.TempDir(), "graph")
	if _, err := runRoot(t, "generate", "--view", "neighbors", "-f", "dot", "-o", base); err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := os.ReadFile(base + ".dot")
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "graph G {") {
		t.Errorf("output is not an undirected DOT graph: %.40q", data)
	}
}

func TestGenerateRejectsFormatForView(t *testing.T) {
	dir := t.TempDir()
	_, err := runRoot(t, "generate", "-f", "dot", "-o", filepath.Join(dir, "map"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("generate -f dot error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("no files should be written, found %d", len(entries))
	}
}

func TestCompletion(t *testing.T) {
	out, err := runRoot(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion should mention the command name")
	}

	if _, err := runRoot(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should be rejected")
	}
}

func TestInspect(t *testing.T) {
	if _, err := runRoot(t, "inspect", "--rivers", "1", "--jitter", "simplex"); err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if _, err := runRoot(t, "inspect", "--points", "2"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("inspect --points 2 error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestBandRows(t *testing.T) {
	opts := pipeline.DefaultOptions()
	result, err := pipeline.NewRunner(nil).Generate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	rows := bandRows(result.Graph)
	if len(rows) != len(terrain.LandPalette)+1 {
		t.Fatalf("got %d rows, want ocean plus %d bands", len(rows), len(terrain.LandPalette))
	}
	if rows[0][0] != "ocean" {
		t.Errorf("first row = %v, want ocean", rows[0])
	}
	if got := rows[len(rows)-1][1]; got != "65+" {
		t.Errorf("last band range = %q, want 65+", got)
	}

	total := 0
	for _, r := range rows {
		n, err := strconv.Atoi(r[3])
		if err != nil {
			t.Fatalf("row %v: polygon count: %v", r, err)
		}
		total += n
	}
	if total != result.Stats.Polygons {
		t.Errorf("band counts sum to %d, want %d polygons", total, result.Stats.Polygons)
	}

	if got := riverRows(result.Rivers); len(got) != result.Stats.Rivers {
		t.Errorf("riverRows returned %d rows, want %d", len(got), result.Stats.Rivers)
	}
	if riverRows(nil) != nil {
		t.Error("riverRows(nil) should be nil")
	}
}
