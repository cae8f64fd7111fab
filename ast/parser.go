package ast

import (
	"bufio"
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
)

// generatedPrefix starts the header line of generated Go files.
const generatedPrefix = "// Code generated "

// ParseOptions configures file and directory parsing behavior.
type ParseOptions struct {
	SkipTests     bool     // Skip *_test.go files
	SkipVendor    bool     // Skip vendor directories
	SkipHidden    bool     // Skip directories starting with . or _
	SkipGenerated bool     // Skip files with a "Code generated ... DO NOT EDIT." header
	ExcludeDirs   []string // Additional directories to exclude
}

// DefaultParseOptions skips everything existgen never reads annotations from.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		SkipTests:     true,
		SkipVendor:    true,
		SkipHidden:    true,
		SkipGenerated: true,
		ExcludeDirs:   []string{"testdata"},
	}
}

// ParseFile parses a single Go source file, keeping comments.
func ParseFile(path string) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
	if err != nil {
		return nil, nil, err
	}
	return file, fset, nil
}

// ParseSource parses src as if it were the file at path.
func ParseSource(path string, src []byte) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, nil, err
	}
	return file, fset, nil
}

// WalkGoFiles walks a directory tree and calls fn for each Go source file,
// respecting the provided options. Files are visited in lexical order.
func WalkGoFiles(root string, opts ParseOptions, fn func(path string) error) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			if opts.SkipHidden && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			if opts.SkipVendor && name == "vendor" {
				return filepath.SkipDir
			}
			for _, excluded := range opts.ExcludeDirs {
				if name == excluded {
					return filepath.SkipDir
				}
			}
			return nil
		}

		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		if opts.SkipTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}
		if opts.SkipGenerated {
			generated, err := IsGeneratedFile(path)
			if err != nil {
				return err
			}
			if generated {
				return nil
			}
		}

		return fn(path)
	})
}

// IsGeneratedFile reports whether the file at path carries a generated
// code header before its package clause.
func IsGeneratedFile(path string) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return IsGenerated(src), nil
}

// IsGenerated reports whether src carries a generated code header before
// its package clause.
func IsGenerated(src []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(src))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "package ") {
			return false
		}
		if strings.HasPrefix(line, generatedPrefix) && strings.HasSuffix(line, " DO NOT EDIT.") {
			return true
		}
	}
	return false
}
