package cmd

import "github.com/spf13/cobra"

// NewExistgenCommand builds the complete existgen command tree over app.
func NewExistgenCommand(app *App) *cobra.Command {
	root := NewRootCommand("existgen", "Generate existential wrapper types for Go interfaces")
	root.AddCommand(
		NewGenerateCommand(app),
		NewCheckCommand(app),
		NewDescribeCommand(app),
		NewLintCommand(app),
		NewInitCommand(app),
		NewMCPCommand(app),
		NewVersionCommand(),
	)
	return root
}
