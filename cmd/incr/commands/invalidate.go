package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newInvalidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <dependency-key>",
		Short: "Evict every cached result derived from a dependency key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			evicted, err := c.app.Invalidate(configPath(cmd), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "evicted %d entries\n", evicted)
			return nil
		},
	}
}
