package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/generate"
)

// NewGenerateCommand creates the generate command that uses the provided
// Generator.
func NewGenerateCommand(g Generator) *cobra.Command {
	var opts GenerateOptions

	cmd := &cobra.Command{
		Use:   "generate [paths|patterns...]",
		Short: "Generate existential wrappers",
		Long: `Generate expands every //existential: directive under the given files,
directories or package patterns (default ".") and writes one
<file>_existential.go next to each annotated source file.

No file is written when any directive fails to expand.`,
		Example: `  existgen generate ./...
  existgen generate --dry-run drink.go

  //go:generate go run github.com/lex00/existential-go/cmd/existgen generate .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = pathsOrDot(args)

			res, changed, err := g.Generate(context.Background(), opts)
			if res != nil {
				if n := printDiagnostics(cmd.ErrOrStderr(), res); n > 0 {
					return errors.Newf("%d directive(s) failed to expand", n)
				}
			}
			if err != nil {
				return errors.Wrap(err, "generate failed")
			}

			out := cmd.OutOrStdout()
			if opts.DryRun {
				for _, o := range res.Outputs {
					if o.Content == nil {
						_, _ = fmt.Fprintf(out, "// %s would be removed\n", o.Path)
						continue
					}
					_, _ = fmt.Fprintf(out, "// %s\n%s", o.Path, o.Content)
				}
				return nil
			}
			for _, p := range changed {
				_, _ = fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	addGenerateFlags(cmd, &opts)
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Print generated files instead of writing them")

	return cmd
}

func addGenerateFlags(cmd *cobra.Command, opts *GenerateOptions) {
	cmd.Flags().StringVar(&opts.Suffix, "suffix", "", "Output file suffix (default from config, _existential)")
	cmd.Flags().StringVar(&opts.RuntimePackage, "runtime", "", "Import path of the runtime package")
}

func pathsOrDot(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// printDiagnostics writes every failure in res, one per line with hints
// indented below, and returns how many there were.
func printDiagnostics(w io.Writer, res *generate.Result) int {
	diags := res.Diagnostics()
	for _, d := range diags {
		_, _ = fmt.Fprintln(w, d)
		for _, hint := range errors.GetAllHints(d) {
			_, _ = fmt.Fprintf(w, "\thint: %s\n", hint)
		}
	}
	return len(diags)
}
