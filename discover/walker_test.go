package discover

import (
	"os"
	"path/filepath"
	"testing"

	xast "github.com/lex00/existential-go/ast"
)

func TestCollectGoFiles(t *testing.T) {
	tmpDir := t.TempDir()

	// Create test files
	files := []string{
		filepath.Join(tmpDir, "a.go"),
		filepath.Join(tmpDir, "b.go"),
		filepath.Join(tmpDir, "c_test.go"),
		filepath.Join(tmpDir, "d.txt"),
	}
	for _, f := range files {
		if err := os.WriteFile(f, []byte("package test"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	t.Run("collects go files", func(t *testing.T) {
		goFiles, err := CollectGoFiles(tmpDir, xast.ParseOptions{})
		if err != nil {
			t.Fatalf("CollectGoFiles() error = %v", err)
		}
		if len(goFiles) != 3 {
			t.Errorf("CollectGoFiles() returned %d files, want 3", len(goFiles))
		}
	})

	t.Run("skips test files", func(t *testing.T) {
		goFiles, err := CollectGoFiles(tmpDir, xast.ParseOptions{SkipTests: true})
		if err != nil {
			t.Fatalf("CollectGoFiles() error = %v", err)
		}
		if len(goFiles) != 2 {
			t.Errorf("CollectGoFiles() with SkipTests returned %d files, want 2", len(goFiles))
		}
	})
}

func TestResolvePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "go.mod"), "module example.com/drinks\n\ngo 1.22\n")
	writeFile(t, filepath.Join(tmpDir, "drink.go"), "package drinks\n\n//existential:equatable\ntype Drinkable interface{}\n")
	writeFile(t, filepath.Join(tmpDir, "drink_existential.go"), "// Code generated by existgen. DO NOT EDIT.\n\npackage drinks\n")
	writeFile(t, filepath.Join(tmpDir, "tea", "tea.go"), "package tea\n")
	writeFile(t, filepath.Join(tmpDir, "tea", "tea_test.go"), "package tea\n")

	files, err := ResolvePatterns(tmpDir, []string{"./..."})
	if err != nil {
		t.Fatalf("ResolvePatterns() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("ResolvePatterns() = %v, want 2 files", files)
	}
	if filepath.Base(files[0]) != "drink.go" || filepath.Base(files[1]) != "tea.go" {
		t.Errorf("ResolvePatterns() = %v, want drink.go and tea.go", files)
	}
}

func TestIsPattern(t *testing.T) {
	tmpDir := t.TempDir()
	tests := []struct {
		arg  string
		want bool
	}{
		{"./...", true},
		{"github.com/lex00/existential-go/...", true},
		{"example.com/drinks", true},
		{tmpDir, false},
		{"drink.go", false},
	}
	for _, tt := range tests {
		if got := IsPattern(tt.arg); got != tt.want {
			t.Errorf("IsPattern(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}
