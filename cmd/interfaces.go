// Package cmd provides the existgen command tree.
//
// Each command is built from a small interface so the cobra wiring can be
// tested without touching the file system; App implements all of them on
// top of the generate, lint and config packages.
package cmd

import (
	"context"

	"github.com/lex00/existential-go/expand"
	"github.com/lex00/existential-go/generate"
	"github.com/lex00/existential-go/lint"
)

// GenerateOptions contains options for the generate command.
type GenerateOptions struct {
	Paths          []string
	DryRun         bool
	Suffix         string
	RuntimePackage string
}

// LintOptions contains options for the lint command.
type LintOptions struct {
	Paths []string
	Fix   bool
}

// InitOptions contains options for the init command.
type InitOptions struct {
	Dir   string
	Force bool
}

// Generator expands directives into generated files.
type Generator interface {
	// Generate runs expansion and, unless DryRun is set, writes the
	// outputs. It returns the paths written or removed.
	Generate(ctx context.Context, opts GenerateOptions) (*generate.Result, []string, error)
}

// Checker reports generated files that do not match their sources.
type Checker interface {
	Check(ctx context.Context, opts GenerateOptions) (*generate.Result, []generate.Stale, error)
}

// Describer expands a single file without rendering it.
type Describer interface {
	Describe(ctx context.Context, path string) ([]expand.Descriptor, error)
}

// Linter checks directives in source files.
type Linter interface {
	Lint(ctx context.Context, opts LintOptions) ([]lint.Issue, error)
}

// Initializer writes a default configuration file.
type Initializer interface {
	Init(ctx context.Context, opts InitOptions) (string, error)
}
