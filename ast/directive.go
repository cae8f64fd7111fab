package ast

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/lex00/existential-go/resolve"
)

// DirectivePrefix starts every existgen directive comment.
const DirectivePrefix = "//existential:"

// Directive is one //existential:<bundle> [key=value ...] comment line.
// It implements resolve.Annotation.
type Directive struct {
	Bundle   string
	Args     []resolve.Argument
	Position token.Position
	Text     string
}

// Pos returns the position of the directive comment.
func (d Directive) Pos() token.Position { return d.Position }

// Arguments returns the directive's key=value pairs in source order.
func (d Directive) Arguments() []resolve.Argument { return d.Args }

// ParseDirective parses the text of a single comment. It returns false if
// the comment is not a directive.
func ParseDirective(text string) (Directive, bool) {
	rest, ok := strings.CutPrefix(text, DirectivePrefix)
	if !ok {
		return Directive{}, false
	}

	fields := strings.Fields(rest)
	d := Directive{Text: text}
	if len(fields) == 0 {
		return d, true
	}
	d.Bundle = fields[0]
	for _, field := range fields[1:] {
		label, value, _ := strings.Cut(field, "=")
		d.Args = append(d.Args, resolve.Argument{Label: label, Value: value})
	}
	return d, true
}

// Directives returns the directives in a comment group, in source order.
func Directives(fset *token.FileSet, doc *ast.CommentGroup) []Directive {
	if doc == nil {
		return nil
	}
	var out []Directive
	for _, c := range doc.List {
		d, ok := ParseDirective(c.Text)
		if !ok {
			continue
		}
		d.Position = fset.Position(c.Slash)
		out = append(out, d)
	}
	return out
}
