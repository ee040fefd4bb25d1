package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/stitch/internal/ui/style"
)

func (c *CLI) newStaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stale [logical paths...]",
		Short: "Report which stored assets are missing or out of date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stale, err := c.app.Stale(cmd.Context(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, logical := range args {
				mark := style.Check
				if stale[logical] {
					mark = style.Tilde
				}
				_, _ = fmt.Fprintf(out, "%s %s\n", mark, logical)
			}
			return nil
		},
	}
}
