package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/ninjalex/pkg/lexer"
	"github.com/dshills/ninjalex/pkg/rules"
	"github.com/dshills/ninjalex/pkg/sink"
	"github.com/dshills/ninjalex/pkg/types"
)

// splitCmd represents the split command
var splitCmd = &cobra.Command{
	Use:   "split <file>",
	Short: "Split a manifest into declarations and print them",
	Long: `Split lexes a manifest file into declarations and prints each one
with its global byte offset.

Example:
  ninjalex split build.ninja
  ninjalex split --rule line --count-only access.log`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ruleName, _ := cmd.Flags().GetString("rule")
		parallelism, _ := cmd.Flags().GetInt("parallelism")
		minChunk, _ := cmd.Flags().GetInt("min-chunk-size")
		countOnly, _ := cmd.Flags().GetBool("count-only")

		rule, err := ruleByName(ruleName)
		if err != nil {
			return err
		}

		buf, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		opts := lexer.Options{Parallelism: parallelism, MinChunkSize: minChunk}

		if countOnly {
			var counter sink.Discard
			if err := lexer.Process(cmd.Context(), buf, rule, &counter, opts); err != nil {
				return err
			}
			fmt.Printf("%d declarations\n", counter.Count())
			return nil
		}

		collector := sink.NewCollector()
		if err := lexer.Process(cmd.Context(), buf, rule, collector, opts); err != nil {
			return err
		}
		for _, d := range collector.Declarations() {
			fmt.Printf("%8d  %q\n", d.Start, d.String())
		}
		return nil
	},
}

// ruleByName maps a --rule flag value to a separator rule
func ruleByName(name string) (types.SeparatorRule, error) {
	switch name {
	case "ninja":
		return rules.Ninja, nil
	case "line":
		return rules.Line, nil
	default:
		return nil, fmt.Errorf("unknown rule %q (want ninja or line)", name)
	}
}

func init() {
	splitCmd.Flags().String("rule", "ninja", "Separator rule: ninja or line")
	splitCmd.Flags().Int("parallelism", 0, "Chunk workers (0 = number of CPUs)")
	splitCmd.Flags().Int("min-chunk-size", 0, "Minimum bytes per chunk")
	splitCmd.Flags().Bool("count-only", false, "Print only the declaration count")
	rootCmd.AddCommand(splitCmd)
}
