package cmd

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/generate"
	"github.com/lex00/existential-go/lint"
	"github.com/lex00/existential-go/mcp"
	"github.com/lex00/existential-go/version"
)

// Backend implements every command that is exposed as an MCP tool.
type Backend interface {
	Generator
	Checker
	Linter
	Describer
}

// NewMCPCommand creates the mcp command, which serves b's commands as MCP
// tools over stdin and stdout.
func NewMCPCommand(b Backend) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve existgen as MCP tools over stdio",
		Long: `MCP runs a Model Context Protocol server on stdin and stdout exposing
existgen_generate, existgen_check, existgen_lint and existgen_describe.
Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewMCPServer(b).Serve(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// NewMCPServer returns an MCP server with b's tools registered.
func NewMCPServer(b Backend) *mcp.Server {
	s := mcp.NewServer(mcp.Config{Name: "existgen", Version: version.Version()})
	mcp.RegisterTools(s, mcp.Handlers{
		Generate: generateTool(b),
		Check:    checkTool(b),
		Lint:     lintTool(b),
		Describe: describeTool(b),
	})
	return s
}

func generateTool(g Generator) mcp.ToolHandler {
	return func(ctx context.Context, args gjson.Result) (string, error) {
		opts := GenerateOptions{Paths: mcp.Paths(args), DryRun: args.Get("dry_run").Bool()}
		res, changed, err := g.Generate(ctx, opts)
		if err := diagnosticsError(res); err != nil {
			return "", err
		}
		if err != nil {
			return "", err
		}

		var b strings.Builder
		if opts.DryRun {
			for _, o := range res.Outputs {
				if o.Content == nil {
					_, _ = fmt.Fprintf(&b, "// %s would be removed\n", o.Path)
					continue
				}
				_, _ = fmt.Fprintf(&b, "// %s\n%s", o.Path, o.Content)
			}
			return b.String(), nil
		}
		if len(changed) == 0 {
			return "Generated files are up to date", nil
		}
		for _, p := range changed {
			_, _ = fmt.Fprintln(&b, p)
		}
		return b.String(), nil
	}
}

func checkTool(c Checker) mcp.ToolHandler {
	return func(ctx context.Context, args gjson.Result) (string, error) {
		res, stale, err := c.Check(ctx, GenerateOptions{Paths: mcp.Paths(args)})
		if err := diagnosticsError(res); err != nil {
			return "", err
		}
		if err != nil {
			return "", err
		}
		if len(stale) == 0 {
			return "Generated files are up to date", nil
		}
		lines := make([]string, len(stale))
		for i, s := range stale {
			lines[i] = s.String()
		}
		return "", errors.Newf("%d generated file(s) out of date:\n%s", len(stale), strings.Join(lines, "\n"))
	}
}

func lintTool(l Linter) mcp.ToolHandler {
	return func(ctx context.Context, args gjson.Result) (string, error) {
		issues, err := l.Lint(ctx, LintOptions{Paths: mcp.Paths(args), Fix: args.Get("fix").Bool()})
		if err != nil {
			return "", err
		}
		if len(issues) == 0 {
			return "No issues found", nil
		}

		var b strings.Builder
		for _, issue := range issues {
			_, _ = fmt.Fprintln(&b, issue)
			if issue.Suggestion != "" {
				_, _ = fmt.Fprintf(&b, "\thint: %s\n", issue.Suggestion)
			}
		}
		if lint.HasErrors(issues) {
			return "", errors.New(strings.TrimRight(b.String(), "\n"))
		}
		return b.String(), nil
	}
}

func describeTool(d Describer) mcp.ToolHandler {
	return func(ctx context.Context, args gjson.Result) (string, error) {
		path := args.Get("path").String()
		if path == "" {
			return "", errors.New("path is required")
		}
		descriptors, err := d.Describe(ctx, path)
		if err != nil {
			return "", err
		}
		if !args.Get("source").Bool() {
			descriptors = stripSource(descriptors)
		}

		format := args.Get("format").String()
		if format == "" {
			format = FormatText
		}
		var buf bytes.Buffer
		if err := writeDescriptors(&buf, format, descriptors); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
}

// diagnosticsError folds the expansion failures of res into one error.
func diagnosticsError(res *generate.Result) error {
	if res == nil {
		return nil
	}
	var buf bytes.Buffer
	if n := printDiagnostics(&buf, res); n > 0 {
		return errors.Newf("%d directive(s) failed to expand:\n%s", n, strings.TrimRight(buf.String(), "\n"))
	}
	return nil
}
