package lint

import (
	"os"

	xast "github.com/lex00/existential-go/ast"
	"github.com/lex00/existential-go/errors"
)

// FixResult represents the result of attempting to fix an issue.
type FixResult struct {
	// Issue is the original lint issue.
	Issue Issue
	// Fixed indicates whether the issue was successfully fixed.
	Fixed bool
	// NewCode contains the source after this and all earlier fixes.
	NewCode []byte
	// Error contains any error that occurred during fixing.
	Error error
}

// Fix applies every fixable issue in the file, in position order, without
// writing the changes. Each fix sees the output of the previous one.
func Fix(path string, rules []Rule, cfg *Config) ([]FixResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	issues, err := LintBytes(src, path, rules, cfg)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Rule, len(rules))
	for _, rule := range rules {
		byID[rule.ID()] = rule
	}

	// Later lines first so earlier issue positions stay valid.
	var results []FixResult
	for i := len(issues) - 1; i >= 0; i-- {
		issue := issues[i]
		result := FixResult{Issue: issue}

		if fixable, ok := byID[issue.Rule].(FixableRule); ok && issue.Fixable {
			newCode, fixErr := fixable.Fix(src, issue)
			if fixErr != nil {
				result.Error = fixErr
			} else {
				src = newCode
				result.Fixed = true
				result.NewCode = newCode
			}
		}

		results = append(results, result)
	}

	return results, nil
}

// FixFile fixes issues in a file and writes the changes back.
// Returns a slice of FixResults indicating what was fixed.
func FixFile(path string, rules []Rule, cfg *Config) ([]FixResult, error) {
	results, err := Fix(path, rules, cfg)
	if err != nil {
		return nil, err
	}

	// The last successful fix carries the cumulative source.
	for i := len(results) - 1; i >= 0; i-- {
		if results[i].Fixed {
			if err := os.WriteFile(path, results[i].NewCode, 0644); err != nil {
				return nil, errors.Wrapf(err, "writing %s", path)
			}
			break
		}
	}

	return results, nil
}

// FixDir fixes issues in every Go file under root that opts admits.
func FixDir(root string, opts xast.ParseOptions, rules []Rule, cfg *Config) ([]FixResult, error) {
	var results []FixResult
	err := xast.WalkGoFiles(root, opts, func(path string) error {
		fileResults, err := FixFile(path, rules, cfg)
		if err != nil {
			return err
		}
		results = append(results, fileResults...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
