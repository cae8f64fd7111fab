package mcp

import (
	"github.com/tidwall/gjson"
)

// Tool names.
const (
	ToolGenerate = "existgen_generate"
	ToolCheck    = "existgen_check"
	ToolLint     = "existgen_lint"
	ToolDescribe = "existgen_describe"
)

var pathsProperty = map[string]any{
	"type":        "array",
	"items":       map[string]any{"type": "string"},
	"description": "Files, directories or package patterns such as ./... (default \".\")",
}

// GenerateSchema is the input schema of existgen_generate.
var GenerateSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"paths": pathsProperty,
		"dry_run": map[string]any{
			"type":        "boolean",
			"description": "Return the generated source instead of writing it",
		},
	},
}

// CheckSchema is the input schema of existgen_check.
var CheckSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"paths": pathsProperty,
	},
}

// LintSchema is the input schema of existgen_lint.
var LintSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"paths": pathsProperty,
		"fix": map[string]any{
			"type":        "boolean",
			"description": "Apply automatic fixes before reporting",
		},
	},
}

// DescribeSchema is the input schema of existgen_describe.
var DescribeSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"path": map[string]any{
			"type":        "string",
			"description": "Go source file with //existential: directives",
		},
		"format": map[string]any{
			"type":        "string",
			"enum":        []string{"text", "yaml", "json"},
			"description": "Output format (default text)",
		},
		"source": map[string]any{
			"type":        "boolean",
			"description": "Include the generated source of each type",
		},
	},
	"required": []string{"path"},
}

// Handlers implements the existgen tools. Tools with a nil handler are
// not registered.
type Handlers struct {
	Generate ToolHandler
	Check    ToolHandler
	Lint     ToolHandler
	Describe ToolHandler
}

// RegisterTools registers every non-nil handler of h with s.
func RegisterTools(s *Server, h Handlers) {
	tools := []Tool{
		{
			Name:        ToolGenerate,
			Description: "Expand //existential: directives and write the generated wrapper files",
			InputSchema: GenerateSchema,
			Handler:     h.Generate,
		},
		{
			Name:        ToolCheck,
			Description: "Report generated wrapper files that are missing, out of date or orphaned",
			InputSchema: CheckSchema,
			Handler:     h.Check,
		},
		{
			Name:        ToolLint,
			Description: "Check //existential: directives for problems without generating",
			InputSchema: LintSchema,
			Handler:     h.Lint,
		},
		{
			Name:        ToolDescribe,
			Description: "Show the wrapper types one file expands to",
			InputSchema: DescribeSchema,
			Handler:     h.Describe,
		},
	}
	for _, tool := range tools {
		if tool.Handler != nil {
			s.Register(tool)
		}
	}
}

// Paths returns the "paths" argument, or "." when it is missing or empty.
func Paths(args gjson.Result) []string {
	var paths []string
	for _, p := range args.Get("paths").Array() {
		if s := p.String(); s != "" {
			paths = append(paths, s)
		}
	}
	if len(paths) == 0 {
		return []string{"."}
	}
	return paths
}
