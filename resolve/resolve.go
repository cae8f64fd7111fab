// Package resolve turns an annotated declaration into expansion
// configurations.
package resolve

import (
	"github.com/lex00/existential-go/capability"
	"github.com/lex00/existential-go/errors"
)

// Resolve validates decl and ann and returns the configuration for one
// bundle and variant. Errors are located at the annotation.
func Resolve(decl Declaration, ann Annotation, bundle capability.Bundle, variant capability.Variant) (Configuration, error) {
	if kind := decl.Kind(); kind != DeclInterface {
		return Configuration{}, errors.At(ann.Pos(), errors.Wrapf(
			errors.ErrInvalidDeclarationKind,
			"%s can only be applied to an interface, found %s", bundle.Directive(), kind))
	}

	access, err := parseArguments(ann.Arguments())
	if err != nil {
		return Configuration{}, errors.At(ann.Pos(), err)
	}

	return Configuration{
		Bundle:   bundle,
		Variant:  variant,
		Name:     decl.Name(),
		Access:   access,
		Implicit: implicitCapabilities(decl.InheritedTypes()),
		Pos:      ann.Pos(),
	}, nil
}

func parseArguments(args []Argument) (AccessLevel, error) {
	switch len(args) {
	case 0:
		return AccessDefault, nil
	case 1:
	default:
		return AccessDefault, errors.Wrapf(errors.ErrInvalidArgument,
			"expected at most one argument, found %d", len(args))
	}

	arg := args[0]
	if arg.Label != "access" {
		return AccessDefault, errors.WithHint(
			errors.Wrapf(errors.ErrInvalidArgument, "unknown argument %q", arg.Label),
			"the only supported argument is access=<level>")
	}
	if arg.Value == "" {
		return AccessDefault, errors.Wrap(errors.ErrInvalidArgument, "access requires a value")
	}
	return ParseAccessLevel(arg.Value)
}

func implicitCapabilities(inherited []string) []capability.ImplicitCapability {
	var found []capability.ImplicitCapability
	for _, ic := range capability.ImplicitCapabilities() {
		for _, name := range inherited {
			if name == ic.Name() {
				found = append(found, ic)
				break
			}
		}
	}
	return found
}
