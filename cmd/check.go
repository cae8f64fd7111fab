package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/existential-go/errors"
)

// NewCheckCommand creates the check command that uses the provided Checker.
func NewCheckCommand(c Checker) *cobra.Command {
	var opts GenerateOptions

	cmd := &cobra.Command{
		Use:   "check [paths|patterns...]",
		Short: "Check that generated files are up to date",
		Long: `Check regenerates in memory and compares the result with the files on
disk. It lists missing, out of date and orphaned outputs and fails when
there are any.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = pathsOrDot(args)

			res, stale, err := c.Check(context.Background(), opts)
			if res != nil {
				if n := printDiagnostics(cmd.ErrOrStderr(), res); n > 0 {
					return errors.Newf("%d directive(s) failed to expand", n)
				}
			}
			if err != nil {
				return errors.Wrap(err, "check failed")
			}

			if len(stale) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Generated files are up to date")
				return nil
			}
			for _, s := range stale {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return errors.WithHint(
				errors.Newf("%d generated file(s) out of date", len(stale)),
				"run existgen generate")
		},
	}

	addGenerateFlags(cmd, &opts)

	return cmd
}
