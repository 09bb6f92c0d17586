package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/ninjalex/internal/store"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ninjalex",
	Short: "Parallel declaration lexer for build manifests",
	Long: `ninjalex splits large Ninja-style build manifests into declarations
using a parallel chunk scanner, and can index the results into a
searchable SQLite database.`,
	SilenceUsage: true,
	Version:      fmt.Sprintf("%s (built %s, %s/%s)", version, buildTime, store.BuildMode, store.DriverName),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	log.SetOutput(os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Index database directory (default $NINJALEX_DB_PATH or ~/.ninjalex/indices)")
}

// openStorage resolves the database directory (flag, then environment, then
// the home default) and opens the SQLite index inside it.
func openStorage(cmd *cobra.Command) (*store.SQLiteStorage, error) {
	dbDir, _ := cmd.Flags().GetString("db")
	if dbDir == "" {
		dbDir = os.Getenv("NINJALEX_DB_PATH")
	}
	if dbDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbDir = filepath.Join(home, ".ninjalex", "indices")
	}
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return store.NewSQLiteStorage(filepath.Join(dbDir, "ninjalex.db"))
}
