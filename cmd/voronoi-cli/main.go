// Command voronoi-cli computes and relaxes Voronoi diagrams from a
// file of sites, as a thin frontend over the voronoi engine package.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sweepline/voronoi"
)

var rootCmd = &cobra.Command{
	Use:   "voronoi-cli",
	Short: "Compute and relax 2D Voronoi diagrams from a site file",
}

func main() {
	rootCmd.AddCommand(computeCmd, relaxCmd, watchCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func diagramSummary(d *voronoi.Diagram) summary {
	closed := 0
	for _, c := range d.Cells {
		if c.Closed() {
			closed++
		}
	}
	return summary{
		RunID:       d.RunID,
		Sites:       len(d.Sites),
		Cells:       len(d.Cells),
		ClosedCells: closed,
		Edges:       len(d.Edges),
		Vertices:    len(d.Vertices),
		ExecTimeMS:  float64(d.ExecTime) / float64(time.Millisecond),
		Dropped:     d.Diagnostics.DroppedCells,
	}
}

func printSummary(w *os.File, s summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func computeDiagram(ctx context.Context, path string) (*voronoi.Diagram, error) {
	set, err := loadSiteSet(path)
	if err != nil {
		return nil, err
	}
	return voronoi.Compute(ctx, set.points(), set.bbox(), voronoi.DefaultConfig())
}

var computeCmd = &cobra.Command{
	Use:   "compute <sites-file>",
	Short: "Compute a Voronoi diagram and print a summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		diagram, err := computeDiagram(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("compute: %w", err)
		}
		if violations := diagram.Validate(); len(violations) > 0 {
			slog.Warn("diagram failed validation", "violations", len(violations))
		}
		return printSummary(os.Stdout, diagramSummary(diagram))
	},
}

var relaxIterations int
var relaxFactor float64

var relaxCmd = &cobra.Command{
	Use:   "relax <sites-file>",
	Short: "Run Lloyd relaxation over a site file and print each step's summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := loadSiteSet(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		cfg := voronoi.DefaultConfig()
		bbox := set.bbox()

		seed, err := voronoi.Compute(ctx, set.points(), bbox, cfg)
		if err != nil {
			return fmt.Errorf("seeding relaxation: %w", err)
		}

		history, err := voronoi.Lloyd(ctx, seed, relaxFactor, relaxIterations, bbox, cfg)
		if err != nil {
			return fmt.Errorf("relax: %w", err)
		}
		for i, d := range history {
			fmt.Fprintf(os.Stdout, "step %d:\n", i)
			if err := printSummary(os.Stdout, diagramSummary(d)); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	relaxCmd.Flags().IntVar(&relaxIterations, "iterations", 1, "number of Lloyd relaxation steps")
	relaxCmd.Flags().Float64Var(&relaxFactor, "t", 1.0, "blend factor toward each cell's centroid, in [0,1]")
}
