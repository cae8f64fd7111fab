package expand

import (
	"github.com/lex00/existential-go/capability"
	"github.com/lex00/existential-go/resolve"
)

// Expand generates the eight wrappers of bundle for decl, in variant order.
// On failure no descriptors are returned.
func (b *Builder) Expand(decl resolve.Declaration, ann resolve.Annotation, bundle capability.Bundle) ([]Descriptor, error) {
	variants := capability.Variants()
	out := make([]Descriptor, 0, len(variants))
	for _, v := range variants {
		cfg, err := resolve.Resolve(decl, ann, bundle, v)
		if err != nil {
			return nil, err
		}
		d, err := b.Build(cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// Expand runs Builder.Expand with the default runtime package.
func Expand(decl resolve.Declaration, ann resolve.Annotation, bundle capability.Bundle) ([]Descriptor, error) {
	return NewBuilder().Expand(decl, ann, bundle)
}
