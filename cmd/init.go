package cmd

import (
	"github.com/spf13/cobra"

	"github.com/codeatlas-dev/codeatlas/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize codeatlas configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure codeatlas for your project and generates a .codeatlas.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
