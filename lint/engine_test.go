package lint

import (
	"go/ast"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	xast "github.com/lex00/existential-go/ast"
)

// testRule creates issues for files with a specific package name
type testRule struct {
	id       string
	trigger  string
	severity Severity
}

func (r *testRule) ID() string          { return r.id }
func (r *testRule) Description() string { return "Test rule: " + r.id }
func (r *testRule) Check(file *ast.File, fset *token.FileSet) []Issue {
	if file.Name.Name == r.trigger {
		return []Issue{{
			Rule:     r.id,
			Message:  "package name matches trigger",
			Line:     1,
			Severity: r.severity,
		}}
	}
	return nil
}

func TestLintFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.go")

	content := `package trigger

var X = 1
`
	if err := os.WriteFile(testFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rules := []Rule{
		&testRule{id: "TEST001", trigger: "trigger"},
		&testRule{id: "TEST002", trigger: "other"},
	}

	t.Run("returns issues matching rules", func(t *testing.T) {
		issues, err := LintFile(testFile, rules, nil)
		if err != nil {
			t.Fatalf("LintFile() error = %v", err)
		}
		if len(issues) != 1 {
			t.Fatalf("LintFile() returned %d issues, want 1", len(issues))
		}
		if issues[0].Rule != "TEST001" {
			t.Errorf("Issue.Rule = %q, want %q", issues[0].Rule, "TEST001")
		}
		if issues[0].File != testFile {
			t.Errorf("Issue.File = %q, want %q", issues[0].File, testFile)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		if _, err := LintFile("/nonexistent/file.go", rules, nil); err == nil {
			t.Error("LintFile() expected error for non-existent file")
		}
	})

	t.Run("respects disabled rules in config", func(t *testing.T) {
		cfg := &Config{DisabledRules: []string{"TEST001"}}
		issues, err := LintFile(testFile, rules, cfg)
		if err != nil {
			t.Fatalf("LintFile() error = %v", err)
		}
		if len(issues) != 0 {
			t.Errorf("LintFile() returned %d issues, want 0 (rule disabled)", len(issues))
		}
	})

	t.Run("respects min severity in config", func(t *testing.T) {
		warn := []Rule{&testRule{id: "WARN001", trigger: "trigger", severity: SeverityWarning}}

		issues, _ := LintFile(testFile, warn, &Config{MinSeverity: SeverityError})
		if len(issues) != 0 {
			t.Errorf("LintFile() returned %d issues, want 0 (filtered by severity)", len(issues))
		}

		issues, _ = LintFile(testFile, warn, &Config{MinSeverity: SeverityWarning})
		if len(issues) != 1 {
			t.Errorf("LintFile() returned %d issues, want 1", len(issues))
		}
	})
}

func TestLintDir(t *testing.T) {
	tmpDir := t.TempDir()
	subDir := filepath.Join(tmpDir, "sub")
	testdata := filepath.Join(tmpDir, "testdata")
	for _, dir := range []string{subDir, testdata} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	files := map[string]string{
		filepath.Join(tmpDir, "root.go"):             "package trigger",
		filepath.Join(tmpDir, "other.go"):            "package other",
		filepath.Join(subDir, "nested.go"):           "package trigger",
		filepath.Join(testdata, "fixture.go"):        "package trigger",
		filepath.Join(tmpDir, "root_existential.go"): "// Code generated by existgen. DO NOT EDIT.\n\npackage trigger",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	rules := []Rule{&testRule{id: "TEST001", trigger: "trigger"}}

	t.Run("walks sources only", func(t *testing.T) {
		issues, err := LintDir(tmpDir, xast.DefaultParseOptions(), rules, nil)
		if err != nil {
			t.Fatalf("LintDir() error = %v", err)
		}
		if len(issues) != 2 {
			t.Errorf("LintDir() returned %d issues, want 2", len(issues))
		}
	})

	t.Run("returns error for non-existent directory", func(t *testing.T) {
		if _, err := LintDir("/nonexistent/dir", xast.DefaultParseOptions(), rules, nil); err == nil {
			t.Error("LintDir() expected error for non-existent directory")
		}
	})
}

func TestLintBytes(t *testing.T) {
	rules := []Rule{&testRule{id: "TEST001", trigger: "trigger"}}

	t.Run("lints source code bytes", func(t *testing.T) {
		issues, err := LintBytes([]byte("package trigger\nvar X = 1"), "test.go", rules, nil)
		if err != nil {
			t.Fatalf("LintBytes() error = %v", err)
		}
		if len(issues) != 1 {
			t.Errorf("LintBytes() returned %d issues, want 1", len(issues))
		}
	})

	t.Run("returns error for invalid source", func(t *testing.T) {
		if _, err := LintBytes([]byte("not valid go code"), "test.go", rules, nil); err == nil {
			t.Error("LintBytes() expected error for invalid source")
		}
	})
}

func TestSortIssues(t *testing.T) {
	issues := []Issue{
		{File: "b.go", Line: 1, Rule: "EXI001"},
		{File: "a.go", Line: 9, Column: 2, Rule: "EXI002"},
		{File: "a.go", Line: 9, Column: 1, Rule: "EXI005"},
		{File: "a.go", Line: 9, Column: 1, Rule: "EXI001"},
		{File: "a.go", Line: 3, Rule: "EXI004"},
	}
	SortIssues(issues)

	want := []string{"a.go:3 EXI004", "a.go:9 EXI001", "a.go:9 EXI005", "a.go:9 EXI002", "b.go:1 EXI001"}
	for i, issue := range issues {
		got := issue.File + ":" + strconv.Itoa(issue.Line) + " " + issue.Rule
		if got != want[i] {
			t.Errorf("SortIssues()[%d] = %q, want %q", i, got, want[i])
		}
	}
}
