package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeatlas-dev/codeatlas/internal/config"
	"github.com/codeatlas-dev/codeatlas/internal/graph"
	"github.com/codeatlas-dev/codeatlas/internal/layout"
	"github.com/codeatlas-dev/codeatlas/internal/progress"
)

var layoutOutput string

var layoutCmd = &cobra.Command{
	Use:   "layout [dataset]",
	Short: "Run the force layout once and print the positioned graph",
	Long:  `Reads an analysis dataset, builds the node-graph, runs the full force simulation and writes the positioned nodes and edges as JSON. With no argument the dataset path from the config file is used.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		datasetPath := cfg.Dataset.Path
		if len(args) == 1 {
			datasetPath = args[0]
		}

		g, err := buildPositionedGraph(cfg, datasetPath)
		if err != nil {
			return err
		}

		out := struct {
			Nodes []*graph.Node `json:"nodes"`
			Edges []*graph.Edge `json:"edges"`
		}{Nodes: g.Nodes, Edges: g.Edges}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling graph: %w", err)
		}

		if layoutOutput != "" {
			if err := os.WriteFile(layoutOutput, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", layoutOutput, err)
			}
		} else {
			fmt.Println(string(data))
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Laid out %d nodes, %d edges in %s\n",
				len(g.Nodes), len(g.Edges), time.Since(start).Round(time.Millisecond))
		}
		return nil
	},
}

func init() {
	layoutCmd.Flags().StringVarP(&layoutOutput, "output", "o", "", "write JSON to file instead of stdout")
	rootCmd.AddCommand(layoutCmd)
}

// buildPositionedGraph runs the dataset → graph → layout pipeline shared by
// the layout and export commands, with a progress bar over the simulation.
func buildPositionedGraph(cfg *config.Config, datasetPath string) (*graph.Graph, error) {
	ds, err := loadDataset(cfg, datasetPath)
	if err != nil {
		return nil, err
	}

	g := graph.Build(ds)

	reporter := progress.NewReporter("Simulating layout")
	reporter.Start(cfg.Layout.Steps)
	engine := layout.New(cfg.Layout)
	engine.OnStep = func(step, total int) {
		reporter.Update(step, "")
	}
	engine.Run(g)
	reporter.Finish()

	return g, nil
}
