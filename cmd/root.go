package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "ftlplan <config.yaml>",
	Short: "NAND flash geometry and FTL mapping-table layout planner",
	Long: `ftlplan derives the physical geometry of a NAND flash device from a
YAML device description and plans the layout of the hybrid FTL
address-translation tables under the configured DRAM budget.

It is a capacity planning tool, not a running FTL: it sizes and
allocates the base (full-coverage) and fast (DRAM-resident) mapping
tables, reports how much of the fine-grained address space fits the
budget, and performs no page I/O.

Commands:
  validate    Check a device description without allocating tables`,
	Version:       "0.1.0-dev",
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cmd.OutOrStdout(), args[0], outputFormat)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, json)")
	rootCmd.AddCommand(validateCmd)
}
