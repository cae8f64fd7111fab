package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"

	xast "github.com/lex00/existential-go/ast"
	"github.com/lex00/existential-go/errors"
)

// CollectGoFiles walks a directory and returns all Go file paths.
func CollectGoFiles(root string, opts xast.ParseOptions) ([]string, error) {
	var files []string
	err := xast.WalkGoFiles(root, opts, func(path string) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ResolvePatterns expands package patterns such as ./... into the Go
// source files of the matching packages, relative to dir. Test files and
// generated files are excluded.
func ResolvePatterns(dir string, patterns []string) ([]string, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "loading packages")
	}

	var errs []error
	seen := make(map[string]bool)
	var files []string
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, errors.Newf("%s: %s", pkg.PkgPath, e.Msg))
		}
	})
	for _, pkg := range pkgs {
		for _, f := range pkg.GoFiles {
			if seen[f] {
				continue
			}
			seen[f] = true
			generated, err := xast.IsGeneratedFile(f)
			if err != nil {
				return nil, err
			}
			if !generated {
				files = append(files, filepath.Clean(f))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	sort.Strings(files)
	return files, nil
}

// IsPattern reports whether arg is a package pattern rather than a file
// or directory path.
func IsPattern(arg string) bool {
	if strings.Contains(arg, "...") {
		return true
	}
	if strings.HasSuffix(arg, ".go") {
		return false
	}
	_, err := os.Stat(arg)
	return err != nil
}
