package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "builds",
		Short: "List the builds of the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Builds(cmd.Context(), cmd.OutOrStdout(), runOptions(cmd))
		},
	}
}
