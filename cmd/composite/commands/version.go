package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/composite/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the composite version and the commit it was built from",
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), build.Version)
				return
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "composite version %s (commit: %s, date: %s)\n",
				build.Version, build.Commit, build.Date)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
