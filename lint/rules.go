package lint

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/token"
	"strings"

	xast "github.com/lex00/existential-go/ast"
	"github.com/lex00/existential-go/capability"
	"github.com/lex00/existential-go/discover"
	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/expand"
	"github.com/lex00/existential-go/resolve"
)

// Rule IDs.
const (
	RuleNonInterface    = "EXI001"
	RuleUnknownBundle   = "EXI002"
	RuleInvalidArgument = "EXI003"
	RuleDuplicateBundle = "EXI004"
	RuleHashableEmbed   = "EXI005"
)

// DefaultRules returns every directive rule. runtime is the import path of
// the runtime package; empty means the default.
func DefaultRules(runtime string) []Rule {
	return NewDefaultRegistry(runtime).All()
}

// NewDefaultRegistry returns a registry holding every directive rule.
func NewDefaultRegistry(runtime string) *RuleRegistry {
	if runtime == "" {
		runtime = expand.DefaultRuntimePackage
	}
	r := NewRuleRegistry()
	r.Register(NonInterfaceRule{})
	r.Register(UnknownBundleRule{})
	r.Register(InvalidArgumentRule{})
	r.Register(DuplicateBundleRule{})
	r.Register(HashableEmbedRule{RuntimePackage: runtime})
	return r
}

// NonInterfaceRule reports directives on anything but a non-generic
// interface.
type NonInterfaceRule struct{}

func (NonInterfaceRule) ID() string { return RuleNonInterface }

func (NonInterfaceRule) Description() string {
	return "directives apply only to non-generic interface types"
}

func (r NonInterfaceRule) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue
	for _, decl := range discover.DiscoverAST(fset, file, "").Decls {
		var msg string
		switch {
		case decl.Decl.Kind() != resolve.DeclInterface:
			msg = fmt.Sprintf("directive on %s %s, expected an interface", decl.Decl.Kind(), decl.Decl.Name())
		case decl.Generic:
			msg = fmt.Sprintf("directive on generic interface %s", decl.Decl.Name())
		default:
			continue
		}
		for _, d := range decl.Directives {
			issues = append(issues, issueAt(r.ID(), SeverityError, d.Position, msg))
		}
	}
	return issues
}

// UnknownBundleRule reports directive tokens that name no bundle.
type UnknownBundleRule struct{}

func (UnknownBundleRule) ID() string          { return RuleUnknownBundle }
func (UnknownBundleRule) Description() string { return "directive names a known bundle" }

func (r UnknownBundleRule) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue
	eachDirective(file, fset, func(_ discover.AnnotatedDecl, d xast.Directive) {
		if _, err := capability.ParseBundle(d.Bundle); err != nil {
			issue := issueAt(r.ID(), SeverityError, d.Position, err.Error())
			issue.Suggestion = errors.FlattenHints(err)
			issues = append(issues, issue)
		}
	})
	return issues
}

// InvalidArgumentRule reports directive arguments expansion would reject.
type InvalidArgumentRule struct{}

func (InvalidArgumentRule) ID() string          { return RuleInvalidArgument }
func (InvalidArgumentRule) Description() string { return "directive arguments are valid" }

func (r InvalidArgumentRule) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue
	eachDirective(file, fset, func(decl discover.AnnotatedDecl, d xast.Directive) {
		// Arguments are checked regardless of the declaration kind.
		iface := resolve.DeclSummary{DeclKind: resolve.DeclInterface, TypeName: decl.Decl.Name()}
		_, err := resolve.Resolve(iface, d, capability.EquatableBundle, 0)
		if err == nil || !errors.Is(err, errors.ErrInvalidArgument) {
			return
		}
		issue := issueAt(r.ID(), SeverityError, d.Position, causeMessage(err))
		issue.Suggestion = errors.FlattenHints(err)
		issues = append(issues, issue)
	})
	return issues
}

// DuplicateBundleRule reports a bundle requested twice for one
// declaration. The repeated directive line can be removed automatically.
type DuplicateBundleRule struct{}

func (DuplicateBundleRule) ID() string { return RuleDuplicateBundle }

func (DuplicateBundleRule) Description() string {
	return "each bundle is requested once per declaration"
}

func (r DuplicateBundleRule) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue
	for _, decl := range discover.DiscoverAST(fset, file, "").Decls {
		seen := make(map[capability.Bundle]token.Position)
		for _, d := range decl.Directives {
			bundle, err := capability.ParseBundle(d.Bundle)
			if err != nil {
				continue
			}
			first, dup := seen[bundle]
			if !dup {
				seen[bundle] = d.Position
				continue
			}
			issue := issueAt(r.ID(), SeverityError, d.Position, fmt.Sprintf(
				"bundle %s already requested for %s at line %d", bundle, decl.Decl.Name(), first.Line))
			issue.Suggestion = "remove the repeated directive"
			issue.Fixable = true
			issues = append(issues, issue)
		}
	}
	return issues
}

// Fix removes the directive line the issue points at.
func (DuplicateBundleRule) Fix(src []byte, issue Issue) ([]byte, error) {
	lines := bytes.SplitAfter(src, []byte("\n"))
	idx := issue.Line - 1
	if idx < 0 || idx >= len(lines) {
		return nil, errors.Newf("line %d out of range", issue.Line)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(lines[idx]), []byte(xast.DirectivePrefix)) {
		return nil, errors.Newf("line %d is not a directive", issue.Line)
	}
	out := make([]byte, 0, len(src))
	for i, line := range lines {
		if i != idx {
			out = append(out, line...)
		}
	}
	return out, nil
}

// HashableEmbedRule warns when a hashable bundle annotates an interface
// that does not embed the runtime Hashable. Hashing then walks values by
// reflection.
type HashableEmbedRule struct {
	RuntimePackage string
}

func (HashableEmbedRule) ID() string { return RuleHashableEmbed }

func (HashableEmbedRule) Description() string {
	return "hashable bundles annotate interfaces embedding existential.Hashable"
}

func (r HashableEmbedRule) Check(file *ast.File, fset *token.FileSet) []Issue {
	var issues []Issue
	eachDirective(file, fset, func(decl discover.AnnotatedDecl, d xast.Directive) {
		bundle, err := capability.ParseBundle(d.Bundle)
		if err != nil || bundle.Equality != capability.Hashable || decl.Spec == nil {
			return
		}
		iface, ok := decl.Spec.Type.(*ast.InterfaceType)
		if !ok || xast.Embeds(file, iface, r.RuntimePackage, "Hashable") {
			return
		}
		issue := issueAt(r.ID(), SeverityWarning, d.Position, fmt.Sprintf(
			"%s does not embed Hashable; values are hashed by reflection", decl.Decl.Name()))
		issue.Suggestion = "embed existential.Hashable in " + decl.Decl.Name()
		issues = append(issues, issue)
	})
	return issues
}

func eachDirective(file *ast.File, fset *token.FileSet, fn func(discover.AnnotatedDecl, xast.Directive)) {
	for _, decl := range discover.DiscoverAST(fset, file, "").Decls {
		for _, d := range decl.Directives {
			fn(decl, d)
		}
	}
}

func issueAt(rule string, sev Severity, pos token.Position, msg string) Issue {
	return Issue{
		Rule:     rule,
		Message:  msg,
		File:     pos.Filename,
		Line:     pos.Line,
		Column:   pos.Column,
		Severity: sev,
	}
}

// causeMessage strips the location a diagnostic carries; issues hold it
// separately.
func causeMessage(err error) string {
	var d *errors.Diagnostic
	if errors.As(err, &d) {
		return d.Err.Error()
	}
	return strings.TrimSpace(err.Error())
}
