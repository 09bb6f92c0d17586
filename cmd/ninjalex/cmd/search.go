package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over indexed declarations",
	Long: `Search runs an FTS5 match query against the indexed declarations
and prints the matches with their source manifest and offset.

Example:
  ninjalex search 'build AND phony'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStorage(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		results, err := s.SearchDeclarations(cmd.Context(), args[0], limit)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("no matches")
			return nil
		}
		for _, r := range results {
			fmt.Printf("%s:%d  %q\n", r.ManifestPath, r.StartOffset, r.Content)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().Int("limit", 10, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}
