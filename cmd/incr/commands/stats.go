package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/incr/internal/core/domain"
)

func (c *CLI) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print cache hit rates and entry counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Report(configPath(cmd))
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func printReport(out io.Writer, report domain.CacheReport) {
	t := report.Tree
	_, _ = fmt.Fprintf(out, "tree cache: %d entries, %d hits, %d recomputes, %d evictions (hit rate %.1f%%)\n",
		t.Entries, t.Hits, t.Recomputes, t.Evictions, t.HitRate()*100)
	for _, f := range report.Functions {
		_, _ = fmt.Fprintf(out, "%s: %d calls, %d hits, %d misses, %d entries (hit rate %.1f%%, avg compute %s, avg read %s)\n",
			f.Name, f.Calls, f.Hits, f.Misses, f.Entries, f.HitRate()*100, f.AvgCompute, f.AvgRead)
	}
}
