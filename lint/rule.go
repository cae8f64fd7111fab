package lint

import (
	"go/ast"
	"go/token"
	"slices"
	"sync"
)

// Rule defines the interface for lint rules.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "EXI001").
	ID() string
	// Description returns a brief description of what the rule checks.
	Description() string
	// Check analyzes the given file and returns any issues found.
	Check(file *ast.File, fset *token.FileSet) []Issue
}

// FixableRule is a Rule that can automatically fix the issues it finds.
type FixableRule interface {
	Rule
	// Fix returns the source of path with issue fixed. src is the current
	// content of the file.
	Fix(src []byte, issue Issue) ([]byte, error)
}

// RuleRegistry maintains a collection of rules.
type RuleRegistry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRuleRegistry creates a new empty rule registry.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it will be replaced.
func (r *RuleRegistry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID()] = rule
}

// Get returns the rule with the given ID, or nil if not found.
func (r *RuleRegistry) Get(id string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[id]
}

// All returns all registered rules ordered by ID.
func (r *RuleRegistry) All() []Rule {
	ids := r.IDs()
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules := make([]Rule, 0, len(ids))
	for _, id := range ids {
		rules = append(rules, r.rules[id])
	}
	return rules
}

// IDs returns all registered rule IDs in sorted order.
func (r *RuleRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.rules))
	for id := range r.rules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
