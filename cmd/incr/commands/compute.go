package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newComputeCmd() *cobra.Command {
	var repeat int
	var showStats bool

	cmd := &cobra.Command{
		Use:   "compute [trees...]",
		Short: "Compute the configured layout trees, reusing cached results",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for range repeat {
				results, err := c.app.Run(cmd.Context(), configPath(cmd), args)
				if err != nil {
					return err
				}
				for _, r := range results {
					_, _ = fmt.Fprintf(out, "%s: %dx%d (area %d)\n", r.Name, r.Geometry.Width, r.Geometry.Height, r.Area)
				}
			}

			if showStats {
				report, err := c.app.Report(configPath(cmd))
				if err != nil {
					return err
				}
				printReport(out, report)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&repeat, "repeat", 1, "Number of passes to run (later passes exercise the cache)")
	cmd.Flags().BoolVar(&showStats, "stats", false, "Print cache statistics after computing")

	return cmd
}
