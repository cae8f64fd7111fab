package generate

import (
	"fmt"

	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/expand"
)

// Output is the expansion of one source file.
type Output struct {
	// Source is the annotated source file.
	Source string
	// Path is where the generated file goes.
	Path    string
	Package string
	// Content is the rendered file, nil when the source has no directives
	// or expansion failed.
	Content     []byte
	Descriptors []expand.Descriptor
	// Diagnostics are located expansion failures.
	Diagnostics []error
}

// Failed reports whether any directive in the file failed to expand.
func (o *Output) Failed() bool { return len(o.Diagnostics) > 0 }

// Result collects the outputs of a run.
type Result struct {
	Outputs []*Output
	// Errors are files that could not be read or parsed.
	Errors []error
}

// Diagnostics returns every error of the run: unreadable files first, then
// expansion diagnostics in file order.
func (r *Result) Diagnostics() []error {
	out := append([]error(nil), r.Errors...)
	for _, o := range r.Outputs {
		out = append(out, o.Diagnostics...)
	}
	return out
}

// Err joins Diagnostics, or returns nil.
func (r *Result) Err() error {
	diags := r.Diagnostics()
	if len(diags) == 0 {
		return nil
	}
	return errors.Join(diags...)
}

// Descriptors returns all descriptors of the run in output order.
func (r *Result) Descriptors() []expand.Descriptor {
	var out []expand.Descriptor
	for _, o := range r.Outputs {
		out = append(out, o.Descriptors...)
	}
	return out
}

// Reasons an output is stale.
const (
	ReasonMissing  = "missing"
	ReasonOutdated = "out of date"
	ReasonOrphaned = "orphaned"
)

// Stale is a generated file that does not match its source.
type Stale struct {
	Path   string
	Reason string
}

func (s Stale) String() string { return fmt.Sprintf("%s: %s", s.Path, s.Reason) }
