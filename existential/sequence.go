package existential

import (
	"iter"
	"slices"
)

// Sequence is a collection that can only be iterated.
type Sequence[E any] interface {
	All() iter.Seq[E]
}

// Slice adapts a slice to Sequence.
type Slice[E any] []E

// All yields the elements in order.
func (s Slice[E]) All() iter.Seq[E] {
	return slices.Values(s)
}
