package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/expand"
	"github.com/lex00/existential-go/generate"
	"github.com/lex00/existential-go/lint"
	"github.com/lex00/existential-go/mcp"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runWith(t, NewApp(""), args...)
}

func runWith(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()
	root := NewExistgenCommand(app)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCommand(t *testing.T) {
	root := NewRootCommand("existgen", "Generate existential wrapper types")
	assert.Equal(t, "existgen", root.Use)
	assert.Contains(t, root.Short, "existential")

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetArgs([]string{"--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "//existential:hashable-codable")
}

func TestCommandTree(t *testing.T) {
	root := NewExistgenCommand(NewApp(""))
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"generate", "check", "describe", "lint", "init", "mcp", "version"} {
		assert.Contains(t, names, want)
	}
}

type mockGenerator struct {
	opts    GenerateOptions
	res     *generate.Result
	changed []string
}

func (m *mockGenerator) Generate(ctx context.Context, opts GenerateOptions) (*generate.Result, []string, error) {
	m.opts = opts
	return m.res, m.changed, m.res.Err()
}

func TestGenerateCommandExecution(t *testing.T) {
	mg := &mockGenerator{
		res:     &generate.Result{Outputs: []*generate.Output{{Path: "drink_existential.go", Content: []byte("package drinks\n")}}},
		changed: []string{"drink_existential.go"},
	}
	root := NewRootCommand("existgen", "Test")
	root.AddCommand(NewGenerateCommand(mg))
	out := new(bytes.Buffer)
	root.SetOut(out)

	root.SetArgs([]string{"generate", "--suffix", "_gen"})
	require.NoError(t, root.Execute())
	assert.Equal(t, []string{"."}, mg.opts.Paths)
	assert.Equal(t, "_gen", mg.opts.Suffix)
	assert.Equal(t, "drink_existential.go\n", out.String())

	out.Reset()
	root.SetArgs([]string{"generate", "--dry-run", "a", "b"})
	require.NoError(t, root.Execute())
	assert.True(t, mg.opts.DryRun)
	assert.Equal(t, []string{"a", "b"}, mg.opts.Paths)
	assert.Equal(t, "// drink_existential.go\npackage drinks\n", out.String())
}

func TestGenerateCommandDiagnostics(t *testing.T) {
	diag := errors.WithHint(errors.Wrap(errors.ErrInvalidArgument, "bad"), "try again")
	mg := &mockGenerator{res: &generate.Result{Outputs: []*generate.Output{{Diagnostics: []error{diag}}}}}
	root := NewRootCommand("existgen", "Test")
	root.AddCommand(NewGenerateCommand(mg))
	stderr := new(bytes.Buffer)
	root.SetErr(stderr)
	root.SetArgs([]string{"generate"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 directive(s) failed")
	assert.Contains(t, stderr.String(), "bad: invalid argument")
	assert.Contains(t, stderr.String(), "\thint: try again")
}

type mockLinter struct {
	opts   LintOptions
	issues []lint.Issue
}

func (m *mockLinter) Lint(ctx context.Context, opts LintOptions) ([]lint.Issue, error) {
	m.opts = opts
	return m.issues, nil
}

func TestLintCommandExecution(t *testing.T) {
	t.Run("no issues", func(t *testing.T) {
		ml := &mockLinter{}
		root := NewRootCommand("existgen", "Test")
		root.AddCommand(NewLintCommand(ml))
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetArgs([]string{"lint", "--fix", "./drinks"})
		require.NoError(t, root.Execute())
		assert.True(t, ml.opts.Fix)
		assert.Equal(t, []string{"./drinks"}, ml.opts.Paths)
		assert.Equal(t, "No issues found\n", out.String())
	})

	t.Run("warnings only pass", func(t *testing.T) {
		ml := &mockLinter{issues: []lint.Issue{{Rule: "EXI005", Severity: lint.SeverityWarning, File: "a.go", Line: 1, Column: 1, Message: "m", Suggestion: "s"}}}
		root := NewRootCommand("existgen", "Test")
		root.AddCommand(NewLintCommand(ml))
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetArgs([]string{"lint"})
		require.NoError(t, root.Execute())
		assert.Equal(t, "a.go:1:1: warning: m [EXI005]\n\thint: s\n", out.String())
	})

	t.Run("errors fail", func(t *testing.T) {
		ml := &mockLinter{issues: []lint.Issue{{Rule: "EXI001", Severity: lint.SeverityError}}}
		root := NewRootCommand("existgen", "Test")
		root.AddCommand(NewLintCommand(ml))
		root.SetOut(new(bytes.Buffer))
		root.SetArgs([]string{"lint"})
		err := root.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "lint found 1 error(s)")
	})
}

type mockDescriber struct{}

func (mockDescriber) Describe(ctx context.Context, path string) ([]expand.Descriptor, error) {
	return []expand.Descriptor{{
		Name:        "HashableCollectionOfDrinkable",
		Ident:       "HashableCollectionOfDrinkable",
		TypeParams:  []expand.TypeParam{{Name: "C", Bound: "~[]Drinkable"}},
		Inherits:    []string{"existential.EquatableSequenceSupport", "existential.Hashable"},
		WrappedType: "C",
		Members:     []expand.Member{{Kind: expand.MemberGetter, Name: "WrappedValue", Source: "func ..."}},
		Source:      "type HashableCollectionOfDrinkable[C ~[]Drinkable] struct{}",
	}}, nil
}

func TestDescribeCommand(t *testing.T) {
	describe := func(args ...string) (string, error) {
		root := NewRootCommand("existgen", "Test")
		root.AddCommand(NewDescribeCommand(mockDescriber{}))
		out := new(bytes.Buffer)
		root.SetOut(out)
		root.SetArgs(append([]string{"describe", "drink.go"}, args...))
		err := root.Execute()
		return out.String(), err
	}

	t.Run("text", func(t *testing.T) {
		out, err := describe()
		require.NoError(t, err)
		assert.Equal(t, `HashableCollectionOfDrinkable[C]
  constraints: C ~[]Drinkable
  wraps:       C
  inherits:    existential.EquatableSequenceSupport, existential.Hashable
  members:     WrappedValue
`, out)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := describe("--format", "yaml")
		require.NoError(t, err)
		assert.Contains(t, out, "- name: HashableCollectionOfDrinkable\n")
		assert.Contains(t, out, "wrapped_type: C\n")
		assert.Contains(t, out, "kind: getter\n")
		assert.NotContains(t, out, "source")
	})

	t.Run("json with source", func(t *testing.T) {
		out, err := describe("-f", "json", "--source")
		require.NoError(t, err)
		assert.Contains(t, out, `"type_params": [`)
		assert.Contains(t, out, `"source": "type HashableCollectionOfDrinkable`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := describe("--format", "xml")
		assert.Error(t, err)
	})
}

type mockInitializer struct {
	opts InitOptions
}

func (m *mockInitializer) Init(ctx context.Context, opts InitOptions) (string, error) {
	m.opts = opts
	return filepath.Join(opts.Dir, "existgen.yaml"), nil
}

func TestInitCommandExecution(t *testing.T) {
	mi := &mockInitializer{}
	root := NewRootCommand("existgen", "Test")
	root.AddCommand(NewInitCommand(mi))
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetArgs([]string{"init", "--force", "proj"})
	require.NoError(t, root.Execute())
	assert.Equal(t, InitOptions{Dir: "proj", Force: true}, mi.opts)
	assert.Equal(t, "Wrote proj/existgen.yaml\n", out.String())
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "existgen dev")
}

const drinkSource = `package drinks

//existential:equatable
type Drinkable interface {
	Volume() int
}
`

func TestAppEndToEnd(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "drink.go")
	require.NoError(t, os.WriteFile(source, []byte(drinkSource), 0644))
	app := NewApp(dir)

	_, _, err := runWith(t, app, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 generated file(s) out of date")

	out, _, err := runWith(t, app, "generate")
	require.NoError(t, err)
	assert.Contains(t, out, "drink_existential.go")
	assert.FileExists(t, filepath.Join(dir, "drink_existential.go"))

	out, _, err = runWith(t, app, "check")
	require.NoError(t, err)
	assert.Equal(t, "Generated files are up to date\n", out)

	out, _, err = runWith(t, app, "describe", "drink.go")
	require.NoError(t, err)
	assert.Contains(t, out, "EquatableDrinkable\n")
	assert.Contains(t, out, "EquatableMutableOptionalCollectionOfDrinkable[C]\n")

	out, _, err = runWith(t, app, "lint")
	require.NoError(t, err)
	assert.Equal(t, "No issues found\n", out)
}

func TestAppConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drink.go"), []byte(drinkSource), 0644))
	app := NewApp(dir)

	out, _, err := runWith(t, app, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "existgen.yaml")

	_, _, err = runWith(t, NewApp(dir), "init")
	require.Error(t, err, "init refuses to overwrite")

	cfgPath := filepath.Join(dir, "existgen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output_suffix: _wrappers\n"), 0644))

	_, _, err = runWith(t, NewApp(dir), "generate")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "drink_wrappers.go"))
}

func TestAppLintFix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drink.go")
	src := "package drinks\n\n//existential:equatable\n//existential:equatable\ntype Drinkable interface{}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	out, _, err := runWith(t, NewApp(dir), "lint")
	require.Error(t, err)
	assert.Contains(t, out, "[EXI004]")

	out, _, err = runWith(t, NewApp(dir), "lint", "--fix")
	require.NoError(t, err)
	assert.Equal(t, "No issues found\n", out)
}

func TestAppGenerateFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	src := "package drinks\n\n//existential:equatable\ntype Drinkable interface{}\n\n//existential:hashable\ntype Tea struct{}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drink.go"), []byte(src), 0644))

	_, stderr, err := runWith(t, NewApp(dir), "generate")
	require.Error(t, err)
	assert.Contains(t, stderr, "drink.go:6:1:")
	assert.Contains(t, stderr, "found struct")
	assert.NoFileExists(t, filepath.Join(dir, "drink_existential.go"))
}

func TestMCPTools(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "drink.go"), []byte(drinkSource), 0644))
	s := NewMCPServer(NewApp(dir))
	ctx := context.Background()

	_, err := s.Call(ctx, mcp.ToolCheck, gjson.Result{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "drink_existential.go: missing")

	out, err := s.Call(ctx, mcp.ToolGenerate, gjson.Parse(`{"dry_run": true}`))
	require.NoError(t, err)
	assert.Contains(t, out, "type EquatableDrinkable struct")
	assert.NoFileExists(t, filepath.Join(dir, "drink_existential.go"))

	out, err = s.Call(ctx, mcp.ToolGenerate, gjson.Result{})
	require.NoError(t, err)
	assert.Contains(t, out, "drink_existential.go")

	out, err = s.Call(ctx, mcp.ToolCheck, gjson.Parse(`{"paths": ["."]}`))
	require.NoError(t, err)
	assert.Equal(t, "Generated files are up to date", out)

	out, err = s.Call(ctx, mcp.ToolDescribe, gjson.Parse(`{"path": "drink.go", "format": "json"}`))
	require.NoError(t, err)
	assert.Equal(t, "EquatableDrinkable", gjson.Get(out, "0.name").String())

	_, err = s.Call(ctx, mcp.ToolDescribe, gjson.Result{})
	assert.ErrorContains(t, err, "path is required")

	out, err = s.Call(ctx, mcp.ToolLint, gjson.Result{})
	require.NoError(t, err)
	assert.Equal(t, "No issues found", out)
}

func TestMCPCommand(t *testing.T) {
	root := NewExistgenCommand(NewApp(t.TempDir()))
	var stdout bytes.Buffer
	root.SetIn(strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n"))
	root.SetOut(&stdout)
	root.SetArgs([]string{"mcp"})
	require.NoError(t, root.Execute())

	tools := gjson.Get(stdout.String(), "result.tools.#.name").Array()
	require.Len(t, tools, 4)
	assert.Equal(t, mcp.ToolCheck, tools[0].String())
}
