package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/polymap/pkg/pipeline"
	"github.com/matzehuels/polymap/pkg/polygraph"
	"github.com/matzehuels/polymap/pkg/terrain"
)

// inspectCommand creates the inspect command for printing map statistics.
func (c *CLI) inspectCommand() *cobra.Command {
	var flags mapFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print statistics of a generated map",
		Long: `Generate a terrain map without rendering it and print its size, land and
ocean split, elevation range, the polygon count per elevation band and the
traced rivers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.resolve(cmd.Flags())
			if err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runInspect(ctx, opts)
		},
	}

	addMapFlags(cmd, &flags)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, opts pipeline.Options) error {
	result, err := c.newRunner().Generate(ctx, opts)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	loggerFromContext(ctx).Debug("inspected map", "duration", result.Stats.Total())

	s := result.Stats
	g := result.Graph
	fmt.Println(StyleTitle.Render("Map"))
	printKeyValue("size", fmt.Sprintf("%gx%g", g.Width, g.Height))
	printKeyValue("polygons", fmt.Sprintf("%d (%d cells)", s.Polygons, s.Cells))
	printKeyValue("corners", strconv.Itoa(s.Corners))
	printKeyValue("edges", strconv.Itoa(s.Edges))
	printKeyValue("land", strconv.Itoa(s.LandPolygons))
	printKeyValue("ocean", strconv.Itoa(s.OceanPolygons))
	printKeyValue("coast", fmt.Sprintf("%d corners", s.CoastCorners))
	printKeyValue("elevation", fmt.Sprintf("%.1f to %.1f", s.MinElevation, s.MaxElevation))
	printKeyValue("rivers", fmt.Sprintf("%d (%d abandoned)", s.Rivers, s.Abandoned))
	printKeyValue("time", s.Total().String())

	printNewline()
	fmt.Println(StyleTitle.Render("Elevation bands"))
	fmt.Println(newTable([]string{"Band", "Range", "Color", "Polygons"}, bandRows(g)).Render())

	if rows := riverRows(result.Rivers); len(rows) > 0 {
		printNewline()
		fmt.Println(StyleTitle.Render("Rivers"))
		fmt.Println(newTable([]string{"#", "Source", "From", "To", "Length"}, rows).Render())
	}
	for _, a := range result.Rivers.Abandoned {
		printWarning("%s", a.Error())
	}
	return nil
}

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// bandRows counts land polygons per palette band. Ocean polygons are listed
// as their own row first.
func bandRows(g *polygraph.Graph) [][]string {
	counts := make([]int, len(terrain.LandPalette))
	ocean := 0
	for _, p := range g.Polygons() {
		if p.IsOcean {
			ocean++
			continue
		}
		counts[terrain.BandIndex(p.Elevation)]++
	}

	rows := [][]string{{"ocean", "-", swatch(terrain.OceanFill), strconv.Itoa(ocean)}}
	last := len(terrain.LandPalette) - 1
	for i, color := range terrain.LandPalette {
		lo := float64(i) * terrain.BandHeight
		rng := fmt.Sprintf("%g-%g", lo, lo+terrain.BandHeight)
		if i == last {
			rng = fmt.Sprintf("%g+", lo)
		}
		rows = append(rows, []string{strconv.Itoa(i), rng, swatch(color), strconv.Itoa(counts[i])})
	}
	return rows
}

// riverRows lists each traced river with its endpoint elevations.
func riverRows(set *terrain.RiverSet) [][]string {
	if set == nil {
		return nil
	}
	rows := make([][]string, 0, len(set.Rivers))
	for i, r := range set.Rivers {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.Itoa(r.Source.ID),
			fmt.Sprintf("%.1f", r.First().Elevation),
			fmt.Sprintf("%.1f", r.Last().Elevation),
			strconv.Itoa(r.Len()),
		})
	}
	return rows
}

// swatch renders a color code on its own color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + hex
}
