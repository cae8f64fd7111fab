// Package errors provides error handling for existgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints
//
// Expansion failures are reported against a source position with At, which
// attaches the position exactly once:
//
//	if decl.Kind() != resolve.DeclInterface {
//	    return errors.At(ann.Pos(), errors.Wrapf(errors.ErrInvalidDeclarationKind,
//	        "expected interface, found %s", decl.Kind()))
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
	Join          = crdb.Join
)

// Sentinel errors for the expansion failure taxonomy.
// Use these with errors.Is(); wrap them with errors.Wrapf() to add context.
var (
	// ErrInvalidDeclarationKind indicates a directive attached to something
	// other than an interface type.
	ErrInvalidDeclarationKind = New("invalid declaration kind")

	// ErrInvalidArgument indicates a malformed or unrecognised directive argument.
	ErrInvalidArgument = New("invalid argument")

	// ErrConstruction indicates generated source that failed to parse.
	ErrConstruction = New("construction failed")

	// ErrUnknownBundle indicates a directive naming no conformance bundle.
	ErrUnknownBundle = New("unknown conformance bundle")
)

// Kind returns a short name for the sentinel err wraps, or "" if none.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrInvalidDeclarationKind):
		return "InvalidDeclarationKind"
	case Is(err, ErrInvalidArgument):
		return "InvalidArgument"
	case Is(err, ErrConstruction):
		return "Construction"
	case Is(err, ErrUnknownBundle):
		return "UnknownBundle"
	default:
		return ""
	}
}
