package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lex00/existential-go/logger"
)

// NewRootCommand creates the root command. Logging is initialised from the
// persistent flags before any subcommand runs.
func NewRootCommand(name, description string) *cobra.Command {
	var verbosity int
	var jsonLogs bool

	cmd := &cobra.Command{
		Use:   name,
		Short: description,
		Long: description + `

Annotate an interface with a directive such as

	//existential:hashable-codable
	type Drinkable interface { ... }

and run "existgen generate" (or go generate) to produce the wrapper types
for every combination of the mutable, optional and collection variants.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Initialize(logger.Options{
				Verbosity: verbosity,
				JSON:      jsonLogs,
				Output:    cmd.ErrOrStderr(),
			})
		},
	}

	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	cmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write logs as JSON")

	return cmd
}
