package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codeatlas-dev/codeatlas/internal/config"
	"github.com/codeatlas-dev/codeatlas/internal/export"
	"github.com/codeatlas-dev/codeatlas/internal/host"
	"github.com/codeatlas-dev/codeatlas/internal/view"
)

var (
	exportOutput string
	exportTitle  string
)

var exportCmd = &cobra.Command{
	Use:   "export [dataset]",
	Short: "Export the graph as a standalone HTML file",
	Long:  `Builds and lays out the graph, then writes a self-contained HTML file with an embedded canvas renderer. The file needs no server and can be shared or published as-is.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		snap := host.Snapshot{
			Phase:     host.PhaseReady,
			Nodes:     g.Nodes,
			Edges:     g.Edges,
			ViewState: map[string]*view.ViewState{},
		}

		exporter := &export.Exporter{Title: exportTitle}
		if err := exporter.WriteFile(exportOutput, snap); err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		fmt.Fprintf(os.Stderr, "Exported %d nodes to %s\n", len(g.Nodes), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "codeatlas.html", "output HTML file")
	exportCmd.Flags().StringVar(&exportTitle, "title", "Code Atlas", "page title for the export")
	rootCmd.AddCommand(exportCmd)
}
