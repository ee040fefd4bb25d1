package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/stitch/internal/app"
)

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Write compiled assets to this directory instead of the configured one")
}

func compileOptions(cmd *cobra.Command) app.CompileOptions {
	output, _ := cmd.Flags().GetString("output")
	return app.CompileOptions{OutputDir: output}
}

func (c *CLI) newCompileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile [logical paths...]",
		Short: "Compile assets and write them with their digest names",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			opts := compileOptions(cmd)
			if stdout, _ := cmd.Flags().GetBool("stdout"); stdout {
				opts.Stdout = cmd.OutOrStdout()
			}
			opts.NoCache, _ = cmd.Flags().GetBool("no-cache")

			return c.app.Compile(cmd.Context(), args, opts)
		},
	}
	addCompileFlags(cmd)
	cmd.Flags().Bool("stdout", false, "Print the compiled bodies instead of writing files")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the asset cache and rebuild from source")
	return cmd
}
