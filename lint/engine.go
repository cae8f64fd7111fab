package lint

import (
	"go/ast"
	"go/token"
	"slices"
	"strings"

	xast "github.com/lex00/existential-go/ast"
	"github.com/lex00/existential-go/errors"
)

// LintFile lints a single file with the given rules and config.
// Returns all issues found that pass the config filters.
func LintFile(path string, rules []Rule, cfg *Config) ([]Issue, error) {
	file, fset, err := xast.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return lintAST(file, fset, path, rules, cfg), nil
}

// LintBytes lints source code from bytes with the given rules and config.
// The filename is used for error messages and issue reporting.
func LintBytes(src []byte, filename string, rules []Rule, cfg *Config) ([]Issue, error) {
	file, fset, err := xast.ParseSource(filename, src)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", filename)
	}

	return lintAST(file, fset, filename, rules, cfg), nil
}

// LintDir lints every Go file under root that opts admits.
func LintDir(root string, opts xast.ParseOptions, rules []Rule, cfg *Config) ([]Issue, error) {
	var issues []Issue

	err := xast.WalkGoFiles(root, opts, func(path string) error {
		fileIssues, err := LintFile(path, rules, cfg)
		if err != nil {
			return err
		}
		issues = append(issues, fileIssues...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// lintAST runs all rules on the parsed AST and returns filtered issues in
// position order.
func lintAST(file *ast.File, fset *token.FileSet, path string, rules []Rule, cfg *Config) []Issue {
	var issues []Issue

	for _, rule := range rules {
		for _, issue := range rule.Check(file, fset) {
			if issue.File == "" {
				issue.File = path
			}
			if cfg != nil && !cfg.ShouldReport(issue) {
				continue
			}
			issues = append(issues, issue)
		}
	}

	SortIssues(issues)
	return issues
}

// SortIssues orders issues by file, line, column and rule.
func SortIssues(issues []Issue) {
	slices.SortStableFunc(issues, func(a, b Issue) int {
		if c := strings.Compare(a.File, b.File); c != 0 {
			return c
		}
		if a.Line != b.Line {
			return a.Line - b.Line
		}
		if a.Column != b.Column {
			return a.Column - b.Column
		}
		return strings.Compare(a.Rule, b.Rule)
	})
}
