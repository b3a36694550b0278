package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codeatlas-dev/codeatlas/internal/config"
	"github.com/codeatlas-dev/codeatlas/internal/host"
	"github.com/codeatlas-dev/codeatlas/internal/notes"
	"github.com/codeatlas-dev/codeatlas/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the visualization server",
	Long:  `Starts the HTTP and WebSocket server that hosts the interactive graph. A collaborator process (editor extension or analysis tool) connects over the WebSocket to deliver datasets and enrichment events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		// Open the annotation store so stickies and manual connections
		// survive restarts.
		if dir := filepath.Dir(cfg.NotesDB); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("creating notes directory: %w", err)
			}
		}
		store, err := notes.Open(cfg.NotesDB)
		if err != nil {
			return fmt.Errorf("opening notes store: %w", err)
		}
		defer store.Close()

		session := host.NewSession(
			host.WithLayout(cfg.Layout),
			host.WithDatasetFilters(cfg.Dataset.Include, cfg.Dataset.Exclude),
			host.WithNotes(store),
		)
		if err := session.RestoreAnnotations(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not restore annotations: %v\n", err)
		}

		srv := server.New(cfg.Server, session)

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "codeatlas v%s serving on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Notes: %s\n", cfg.NotesDB)
		fmt.Fprintf(os.Stderr, "  Waiting for a collaborator on /ws\n")

		if err := srv.Start(ctx); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 7430, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}
