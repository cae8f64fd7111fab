package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/lint"
)

// NewLintCommand creates a new lint command that uses the provided Linter.
func NewLintCommand(linter Linter) *cobra.Command {
	var opts LintOptions

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check existential directives for issues",
		Long: `Lint checks //existential: directives without generating anything.

Rules:
  EXI001  directive on a non-interface or generic declaration
  EXI002  unknown bundle
  EXI003  invalid directive argument
  EXI004  bundle requested twice (fixable)
  EXI005  hashable bundle on an interface that does not embed Hashable

Rules can be disabled and filtered by severity in existgen.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = pathsOrDot(args)

			issues, err := linter.Lint(context.Background(), opts)
			if err != nil {
				return errors.Wrap(err, "lint failed")
			}

			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				_, _ = fmt.Fprintln(out, "No issues found")
				return nil
			}

			errorCount := 0
			for _, issue := range issues {
				_, _ = fmt.Fprintln(out, issue)
				if issue.Suggestion != "" {
					_, _ = fmt.Fprintf(out, "\thint: %s\n", issue.Suggestion)
				}
				if issue.Severity == lint.SeverityError {
					errorCount++
				}
			}

			if errorCount > 0 {
				return errors.Newf("lint found %d error(s)", errorCount)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Fix, "fix", "f", false, "Automatically fix issues where possible")

	return cmd
}
