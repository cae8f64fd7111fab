package lint

import (
	"go/ast"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockRule is a simple rule implementation for testing
type mockRule struct {
	id          string
	description string
	issues      []Issue
}

func (r *mockRule) ID() string                              { return r.id }
func (r *mockRule) Description() string                     { return r.description }
func (r *mockRule) Check(*ast.File, *token.FileSet) []Issue { return r.issues }

func TestRuleRegistration(t *testing.T) {
	registry := NewRuleRegistry()

	registry.Register(&mockRule{id: "TEST002", description: "Rule 2"})
	registry.Register(&mockRule{id: "TEST001", description: "Rule 1"})

	if got := registry.Get("TEST001"); got == nil {
		t.Error("Get(TEST001) = nil, want rule")
	}
	if got := registry.Get("NONEXISTENT"); got != nil {
		t.Error("Get(NONEXISTENT) = non-nil, want nil")
	}

	all := registry.All()
	if len(all) != 2 {
		t.Fatalf("All() returned %d rules, want 2", len(all))
	}
	if all[0].ID() != "TEST001" {
		t.Errorf("All()[0] = %q, want TEST001", all[0].ID())
	}

	registry.Register(&mockRule{id: "TEST001", description: "replaced"})
	if got := registry.Get("TEST001").Description(); got != "replaced" {
		t.Errorf("Register() did not replace rule, description = %q", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry := NewDefaultRegistry("")
	assert.Equal(t, []string{"EXI001", "EXI002", "EXI003", "EXI004", "EXI005"}, registry.IDs())

	hashable, ok := registry.Get(RuleHashableEmbed).(HashableEmbedRule)
	if assert.True(t, ok) {
		assert.Equal(t, "github.com/lex00/existential-go/existential", hashable.RuntimePackage)
	}

	_, fixable := registry.Get(RuleDuplicateBundle).(FixableRule)
	assert.True(t, fixable)

	for _, rule := range DefaultRules("example.com/rt") {
		assert.NotEmpty(t, rule.Description(), rule.ID())
	}
}
