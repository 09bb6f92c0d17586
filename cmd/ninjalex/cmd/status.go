package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print index statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStorage(cmd)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		status, err := s.GetStatus(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("manifests:    %d\n", status.ManifestsCount)
		fmt.Printf("declarations: %d\n", status.DeclarationsCount)
		fmt.Printf("index size:   %.2f MB\n", status.IndexSizeMB)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
