package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-ftlplan/internal/config"
	"github.com/deploymenttheory/go-ftlplan/internal/geometry"
)

// validateCmd checks a device description and reports the table sizes
// the planner would allocate, without allocating anything. Useful as a
// dry run for configurations whose base table would span gigabytes.
var validateCmd = &cobra.Command{
	Use:   "validate <config.yaml>",
	Short: "Check a device description without allocating mapping tables",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}

		geom, err := geometry.Derive(cfg)
		if err != nil {
			return err
		}

		baseEntries, err := geometry.UnitsForGranularity(cfg.BaseMapping, geom, cfg.SubpagesPerPage)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Configuration OK: %s\n", args[0])
		fmt.Fprintf(w, "User capacity:    %.6g GiB\n", geom.UserCapacityGiB())
		fmt.Fprintf(w, "Base table:       %d entries (%.6g MiB)\n",
			baseEntries, float64(baseEntries*8)/(1024.0*1024.0))

		if cfg.FastFTLBytes == 0 {
			fmt.Fprintf(w, "Fast table:       disabled (zero budget)\n")
			return nil
		}

		fastRequested, err := geometry.UnitsForGranularity(cfg.FastMapping, geom, cfg.SubpagesPerPage)
		if err != nil {
			return err
		}
		fastAllocated := min(fastRequested, cfg.FastFTLBytes/8)
		fmt.Fprintf(w, "Fast table:       %d of %d entries fit the %.6g MiB budget\n",
			fastAllocated, fastRequested, float64(cfg.FastFTLBytes)/(1024.0*1024.0))
		return nil
	},
}
