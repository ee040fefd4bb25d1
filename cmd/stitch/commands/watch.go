package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [logical paths...]",
		Short: "Compile assets and recompile them when their sources change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Watch(cmd.Context(), args, compileOptions(cmd))
		},
	}
	addCompileFlags(cmd)
	return cmd
}
