package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/composite/internal/core/domain"
)

func (c *CLI) newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run tasks of the root build",
		Long: "Run tasks of the root build together with the tasks of included builds they depend on.\n" +
			"Tasks are addressed by path, e.g. :build or :app:test; a bare name is taken from the root project.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			return c.app.Run(cmd.Context(), qualify(args), runOptions(cmd))
		},
	}
}

// qualify turns bare task names into root project paths.
func qualify(args []string) []string {
	paths := make([]string, len(args))
	for i, arg := range args {
		if arg != "" && !strings.HasPrefix(arg, domain.PathSeparator) {
			arg = domain.PathSeparator + arg
		}
		paths[i] = arg
	}
	return paths
}
