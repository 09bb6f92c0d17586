package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dshills/ninjalex/internal/indexer"
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index <path>",
	Short: "Lex manifests under a path and store them in the index",
	Long: `Index lexes a manifest file, or every manifest under a directory,
and stores the declarations in the SQLite index. Unchanged files are
skipped based on their content hash.

Example:
  ninjalex index /src/project
  ninjalex index --force --ext .ninja --ext .gn /src/project`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		workers, _ := cmd.Flags().GetInt("workers")
		parallelism, _ := cmd.Flags().GetInt("parallelism")
		exts, _ := cmd.Flags().GetStringSlice("ext")

		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}

		s, err := openStorage(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		idx := indexer.New(s)
		stats, err := idx.IndexPath(cmd.Context(), path, &indexer.Config{
			Workers:     workers,
			Parallelism: parallelism,
			Extensions:  exts,
			ForceRelex:  force,
		})
		if err != nil {
			return err
		}

		fmt.Printf("indexed:      %d\n", stats.ManifestsIndexed)
		fmt.Printf("skipped:      %d\n", stats.ManifestsSkipped)
		fmt.Printf("failed:       %d\n", stats.ManifestsFailed)
		fmt.Printf("declarations: %d\n", stats.DeclarationsStored)
		fmt.Printf("duration:     %s\n", stats.Duration)
		for _, msg := range stats.ErrorMessages {
			fmt.Printf("error: %s\n", msg)
		}
		return nil
	},
}

func init() {
	indexCmd.Flags().Bool("force", false, "Re-lex manifests even when unchanged")
	indexCmd.Flags().Int("workers", 0, "Concurrent manifest files (0 = number of CPUs)")
	indexCmd.Flags().Int("parallelism", 0, "Chunk workers per manifest (0 = number of CPUs)")
	indexCmd.Flags().StringSlice("ext", []string{".ninja"}, "Manifest file extensions")
	rootCmd.AddCommand(indexCmd)
}
