// Package render assembles expanded descriptors into formatted Go files.
package render

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/lex00/existential-go/errors"
	"github.com/lex00/existential-go/expand"
)

// Header is the first line of every generated file.
const Header = "// Code generated by existgen. DO NOT EDIT."

// DefaultSuffix is appended to a source file's base name to name its
// generated file.
const DefaultSuffix = "_existential"

// runtimeName is the identifier generated code uses for the runtime package.
const runtimeName = "existential"

// File is the input for one generated file.
type File struct {
	// Package is the package clause of the generated file.
	Package string
	// Source is the file the declarations were expanded from, recorded in
	// the header when set.
	Source string
	// RuntimePackage is the import path of the runtime support package.
	RuntimePackage string

	Descriptors []expand.Descriptor
}

// GeneratedFile is a rendered output file.
type GeneratedFile struct {
	Filename string
	Content  []byte
}

type importEntry struct {
	Path  string
	Alias string
}

const fileTemplate = `{{.Header}}
{{- if .Source}}
// Source: {{.Source}}
{{- end}}

package {{.Package}}
{{- if .Groups}}

import (
{{- range $i, $group := .Groups}}
{{- if $i}}
{{end}}
{{- range $group}}
{{- if .Alias}}
	{{.Alias}} "{{.Path}}"
{{- else}}
	"{{.Path}}"
{{- end}}
{{- end}}
{{- end}}
)
{{- end}}
{{range .Decls}}
{{.}}
{{- end}}
`

var tmpl = template.Must(template.New("file").Parse(fileTemplate))

// Render produces the formatted source of f.
func Render(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, errors.New("render: missing package name")
	}
	runtime := f.RuntimePackage
	if runtime == "" {
		runtime = expand.DefaultRuntimePackage
	}

	decls := make([]string, len(f.Descriptors))
	for i, d := range f.Descriptors {
		decls[i] = d.Source
	}

	data := struct {
		Header  string
		Source  string
		Package string
		Groups  [][]importEntry
		Decls   []string
	}{
		Header:  Header,
		Source:  filepath.ToSlash(f.Source),
		Package: f.Package,
		Groups:  importGroups(f.Descriptors, runtime),
		Decls:   decls,
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}
	return Format(OutputName(f.Source, DefaultSuffix), []byte(buf.String()))
}

// Format gofmts src and sorts its imports.
func Format(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "formatting %s", filename)
	}
	return out, nil
}

// importGroups returns the standard library imports followed by the rest,
// each sorted by path.
func importGroups(descriptors []expand.Descriptor, runtime string) [][]importEntry {
	seen := make(map[string]bool)
	var std, other []importEntry
	for _, d := range descriptors {
		for _, p := range d.Imports {
			if seen[p] {
				continue
			}
			seen[p] = true

			entry := importEntry{Path: p}
			if p == runtime && path.Base(p) != runtimeName {
				entry.Alias = runtimeName
			}
			if isStandard(p) {
				std = append(std, entry)
			} else {
				other = append(other, entry)
			}
		}
	}

	var groups [][]importEntry
	for _, g := range [][]importEntry{std, other} {
		if len(g) == 0 {
			continue
		}
		sort.Slice(g, func(i, j int) bool { return g[i].Path < g[j].Path })
		groups = append(groups, g)
	}
	return groups
}

// isStandard reports whether p looks like a standard library path: no dot
// in its first element.
func isStandard(p string) bool {
	first, _, _ := strings.Cut(p, "/")
	return !strings.Contains(first, ".")
}

// OutputName returns the generated file path for a source file,
// e.g. drink.go -> drink_existential.go.
func OutputName(source, suffix string) string {
	if source == "" {
		return "existential.go"
	}
	if suffix == "" {
		suffix = DefaultSuffix
	}
	dir, base := filepath.Split(source)
	base = strings.TrimSuffix(base, ".go")
	return filepath.Join(dir, base+suffix+".go")
}

// IsGenerated reports whether src starts with the generated header.
func IsGenerated(src []byte) bool {
	return strings.HasPrefix(string(src), Header)
}
