package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "codeatlas",
	Short: "Interactive node-graph visualization of your codebase",
	Long: `CodeAtlas turns a codebase analysis dataset into an interactive
node-graph: directories and files arranged by a force simulation,
dependency edges between files, live search, sticky notes and manual
connections. Serve it to a browser or export a standalone HTML map.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".codeatlas.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
