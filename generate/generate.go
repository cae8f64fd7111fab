// Package generate drives expansion over source files: it discovers
// annotated interfaces, expands each directive and renders one output file
// per annotated source file.
package generate

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	xast "github.com/lex00/existential-go/ast"
	"github.com/lex00/existential-go/capability"
	"github.com/lex00/existential-go/discover"
	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/expand"
	"github.com/lex00/existential-go/logger"
	"github.com/lex00/existential-go/render"
)

// Options configures a Generator.
type Options struct {
	// Paths lists files, directories or package patterns such as ./...
	Paths []string
	// Dir is the directory package patterns are resolved from.
	Dir string
	// Suffix names output files; empty means render.DefaultSuffix.
	Suffix string
	// RuntimePackage is the runtime import path; empty means the default.
	RuntimePackage string
	// Walk controls directory traversal.
	Walk xast.ParseOptions
}

// Generator expands annotated declarations into generated files.
type Generator struct {
	opts    Options
	builder *expand.Builder
	log     *zap.SugaredLogger
}

// New creates a Generator.
func New(opts Options) *Generator {
	if opts.Suffix == "" {
		opts.Suffix = render.DefaultSuffix
	}
	if opts.RuntimePackage == "" {
		opts.RuntimePackage = expand.DefaultRuntimePackage
	}
	return &Generator{
		opts:    opts,
		builder: expand.NewBuilder(expand.WithRuntimePackage(opts.RuntimePackage)),
		log:     logger.ComponentLogger("generate"),
	}
}

// Run discovers and expands every annotated file in memory. Source files
// without directives are kept so their stale outputs can be found.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	paths, err := g.resolvePaths()
	if err != nil {
		return nil, err
	}

	found, err := discover.Discover(discover.DiscoverOptions{
		Paths:           paths,
		Walk:            g.opts.Walk,
		KeepUnannotated: true,
	})
	if err != nil {
		return nil, err
	}

	result := &Result{Errors: found.Errors}
	for _, f := range found.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := g.ExpandFile(f)
		if out.Content == nil && !out.Failed() && !g.hasOutput(out.Path) {
			g.log.Debugw("no directives", logger.FieldFile, f.Path)
			continue
		}
		result.Outputs = append(result.Outputs, out)
	}
	return result, nil
}

func (g *Generator) resolvePaths() ([]string, error) {
	var paths, patterns []string
	for _, p := range g.opts.Paths {
		if discover.IsPattern(p) {
			patterns = append(patterns, p)
		} else {
			paths = append(paths, p)
		}
	}
	if len(patterns) > 0 {
		files, err := discover.ResolvePatterns(g.opts.Dir, patterns)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	return paths, nil
}

// ExpandFile expands every directive in f. When any directive fails the
// output carries only diagnostics.
func (g *Generator) ExpandFile(f *discover.FileResult) *Output {
	out := &Output{
		Source:  f.Path,
		Path:    render.OutputName(f.Path, g.opts.Suffix),
		Package: f.Package,
	}

	for _, decl := range f.Decls {
		descriptors, diags := g.expandDecl(decl)
		out.Diagnostics = append(out.Diagnostics, diags...)
		out.Descriptors = append(out.Descriptors, descriptors...)
	}
	if out.Failed() {
		out.Descriptors = nil
		return out
	}
	if len(out.Descriptors) == 0 {
		return out
	}

	content, err := render.Render(render.File{
		Package:        f.Package,
		Source:         filepath.Base(f.Path),
		RuntimePackage: g.opts.RuntimePackage,
		Descriptors:    out.Descriptors,
	})
	if err != nil {
		out.Diagnostics = append(out.Diagnostics, errors.At(
			f.Fset.Position(f.File.Package), errors.Wrap(errors.ErrConstruction, err.Error())))
		out.Descriptors = nil
		return out
	}
	out.Content = content
	return out
}

type request struct {
	bundle    capability.Bundle
	directive xast.Directive
}

// expandDecl expands the directives of one declaration in bundle order.
func (g *Generator) expandDecl(decl discover.AnnotatedDecl) ([]expand.Descriptor, []error) {
	var diags []error
	var requests []request
	seen := make(map[capability.Bundle]bool)

	for _, d := range decl.Directives {
		bundle, err := capability.ParseBundle(d.Bundle)
		if err != nil {
			diags = append(diags, errors.At(d.Position, err))
			continue
		}
		if seen[bundle] {
			diags = append(diags, errors.At(d.Position, errors.WithHint(
				errors.Newf("bundle %s already requested for %s", bundle, decl.Decl.Name()),
				"remove the repeated directive")))
			continue
		}
		seen[bundle] = true
		requests = append(requests, request{bundle, d})
	}

	slices.SortStableFunc(requests, func(a, b request) int {
		return bundleIndex(a.bundle) - bundleIndex(b.bundle)
	})

	var out []expand.Descriptor
	for _, r := range requests {
		if decl.Generic {
			diags = append(diags, errors.At(r.directive.Position, errors.Wrapf(
				errors.ErrInvalidDeclarationKind,
				"%s cannot be applied to generic interface %s", r.bundle.Directive(), decl.Decl.Name())))
			continue
		}
		descriptors, err := g.builder.Expand(decl.Decl, r.directive, r.bundle)
		if err != nil {
			diags = append(diags, err)
			continue
		}
		g.log.Debugw("expanded",
			logger.FieldType, decl.Decl.Name(),
			logger.FieldBundle, r.bundle.Directive(),
			logger.FieldCount, len(descriptors))
		out = append(out, descriptors...)
	}
	return out, diags
}

func bundleIndex(b capability.Bundle) int {
	return slices.Index(capability.Bundles(), b)
}

// hasOutput reports whether path holds a file this tool generated.
func (g *Generator) hasOutput(path string) bool {
	src, err := os.ReadFile(path)
	return err == nil && render.IsGenerated(src)
}

// Write writes every changed output and removes outputs whose source no
// longer has directives. Nothing is written when res has errors. It
// returns the paths written or removed.
func (g *Generator) Write(res *Result) ([]string, error) {
	if err := res.Err(); err != nil {
		return nil, err
	}

	var changed []string
	for _, out := range res.Outputs {
		current, readErr := os.ReadFile(out.Path)

		if out.Content == nil {
			if readErr == nil && render.IsGenerated(current) {
				if err := os.Remove(out.Path); err != nil {
					return changed, errors.Wrapf(err, "removing %s", out.Path)
				}
				g.log.Infow("removed", logger.FieldOutput, out.Path)
				changed = append(changed, out.Path)
			}
			continue
		}

		if readErr == nil && bytes.Equal(current, out.Content) {
			g.log.Debugw("unchanged", logger.FieldOutput, out.Path)
			continue
		}
		if readErr == nil && !render.IsGenerated(current) {
			return changed, errors.WithHint(
				errors.Newf("%s exists and was not generated by existgen", out.Path),
				"rename the file or set output_suffix")
		}
		if err := os.WriteFile(out.Path, out.Content, 0644); err != nil {
			return changed, errors.Wrapf(err, "writing %s", out.Path)
		}
		g.log.Infow("generated",
			logger.FieldOutput, out.Path,
			logger.FieldCount, len(out.Descriptors))
		changed = append(changed, out.Path)
	}
	return changed, nil
}

// Check compares res with the files on disk without writing.
func (g *Generator) Check(res *Result) []Stale {
	var stale []Stale
	for _, out := range res.Outputs {
		if out.Failed() {
			continue
		}
		current, err := os.ReadFile(out.Path)
		switch {
		case out.Content == nil:
			if err == nil && render.IsGenerated(current) {
				stale = append(stale, Stale{Path: out.Path, Reason: ReasonOrphaned})
			}
		case err != nil:
			stale = append(stale, Stale{Path: out.Path, Reason: ReasonMissing})
		case !bytes.Equal(current, out.Content):
			stale = append(stale, Stale{Path: out.Path, Reason: ReasonOutdated})
		}
	}
	return stale
}
