package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lex00/existential-go/errors"
)

// NewInitCommand creates a new init command that uses the provided Initializer.
func NewInitCommand(initializer Initializer) *cobra.Command {
	var opts InitOptions

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a default existgen.yaml",
		Long: `Init writes existgen.yaml with every setting at its default value to the
given directory (default ".").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = "."
			if len(args) == 1 {
				opts.Dir = args[0]
			}

			path, err := initializer.Init(context.Background(), opts)
			if err != nil {
				return errors.Wrap(err, "init failed")
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite an existing file")

	return cmd
}
