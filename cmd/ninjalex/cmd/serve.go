package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/ninjalex/internal/mcp"
	"github.com/dshills/ninjalex/internal/store"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Serve starts the Model Context Protocol server on stdio, exposing
the index_manifests, search_declarations and get_status tools.

Log output goes to stderr; stdout is reserved for the MCP protocol.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Printf("ninjalex MCP server v%s starting...", version)
		log.Printf("Build Mode: %s, Driver: %s", store.BuildMode, store.DriverName)

		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = os.Getenv("NINJALEX_DB_PATH")
		}

		server, err := mcp.NewServer(dbPath)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		errChan := make(chan error, 1)
		go func() {
			log.Println("MCP server ready, listening on stdio...")
			errChan <- server.Serve(ctx)
		}()

		select {
		case sig := <-sigChan:
			log.Printf("Received signal %v, shutting down gracefully...", sig)
			cancel()
		case err := <-errChan:
			if err != nil {
				return err
			}
		}

		log.Println("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
