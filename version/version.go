// Package version reports the existgen build version using Go's
// runtime/debug build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

const modulePath = "github.com/lex00/existential-go"

// Version returns the module version if available from build info.
// Returns "dev" if version information is not available (local development builds).
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		// Check dependencies for when used as a library
		for _, dep := range info.Deps {
			if dep.Path == modulePath {
				return dep.Version
			}
		}
	}
	return "dev"
}

// Revision returns the VCS revision the binary was built from, or "".
func Revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}

// String formats the version line printed by existgen version.
func String() string {
	s := fmt.Sprintf("existgen %s %s/%s %s", Version(), runtime.GOOS, runtime.GOARCH, runtime.Version())
	if rev := Revision(); rev != "" {
		if len(rev) > 12 {
			rev = rev[:12]
		}
		s += " (" + rev + ")"
	}
	return s
}

// ModulePath returns the canonical module path.
func ModulePath() string {
	return modulePath
}
