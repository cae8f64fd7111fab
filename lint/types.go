// Package lint checks existgen directives before expansion runs.
package lint

import (
	"fmt"
	"go/token"
	"slices"
	"strings"

	"github.com/lex00/existential-go/errors"
)

// Severity indicates the severity level of a lint issue.
type Severity int

const (
	// SeverityError marks a directive that expansion would reject.
	SeverityError Severity = iota
	// SeverityWarning marks a directive that expands but likely misbehaves.
	SeverityWarning
	// SeverityInfo indicates a suggestion or informational message.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// ParseSeverity parses "error", "warning" or "info".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info", "":
		return SeverityInfo, nil
	default:
		return SeverityInfo, errors.WithHint(
			errors.Newf("unknown severity %q", s),
			"use one of error, warning, info")
	}
}

// Issue represents a single lint issue found during analysis.
type Issue struct {
	// Rule is the unique identifier of the rule that found this issue.
	Rule string
	// Message describes the issue.
	Message string
	// File is the path to the file containing the issue.
	File string
	// Line is the line number (1-based) where the issue was found.
	Line int
	// Column is the column number (1-based) where the issue was found.
	Column int
	// Severity indicates how serious the issue is.
	Severity Severity
	// Suggestion provides a recommended fix for the issue.
	Suggestion string
	// Fixable indicates whether this issue can be automatically fixed.
	Fixable bool
}

// String formats the issue as file:line:col: severity: message [rule].
func (i Issue) String() string {
	pos := token.Position{Filename: i.File, Line: i.Line, Column: i.Column}
	return fmt.Sprintf("%s: %s: %s [%s]", pos, i.Severity, i.Message, i.Rule)
}

// Config controls linting behavior.
type Config struct {
	// DisabledRules is a list of rule IDs to skip.
	DisabledRules []string
	// MinSeverity is the minimum severity level to report.
	// Issues with lower severity will be filtered out.
	MinSeverity Severity
}

// DefaultConfig reports every issue of every rule.
func DefaultConfig() *Config {
	return &Config{MinSeverity: SeverityInfo}
}

// IsRuleDisabled returns true if the given rule ID is disabled.
func (c *Config) IsRuleDisabled(ruleID string) bool {
	return slices.Contains(c.DisabledRules, ruleID)
}

// ShouldReport returns true if the issue should be reported based on config.
func (c *Config) ShouldReport(issue Issue) bool {
	if c.IsRuleDisabled(issue.Rule) {
		return false
	}
	// Error=0 is most severe.
	return issue.Severity <= c.MinSeverity
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	return slices.ContainsFunc(issues, func(i Issue) bool { return i.Severity == SeverityError })
}
