package existential

import (
	"iter"
	"reflect"
)

// EquatableSupport is implemented by wrappers of a single value.
type EquatableSupport interface {
	EquatableValue() any
}

// EquatableSequenceSupport is implemented by wrappers of a collection.
// A nil sequence is the absent collection.
type EquatableSequenceSupport interface {
	EquatableSequence() iter.Seq[any]
}

// Equatable lets a concrete type decide equality with another value of
// the same dynamic type. Hash must write the same input for values that
// EqualTo reports equal. A type with EqualTo but no Hash method is compared
// structurally, like any other value.
type Equatable interface {
	Hashable
	EqualTo(other any) bool
}

// Equal compares the wrapped values of a and b.
func Equal[T EquatableSupport](a, b T) bool {
	return ValuesEqual(a.EquatableValue(), b.EquatableValue())
}

// SequenceEqual compares the wrapped collections of a and b element by
// element, in iteration order.
func SequenceEqual[T EquatableSequenceSupport](a, b T) bool {
	as, bs := a.EquatableSequence(), b.EquatableSequence()
	if as == nil || bs == nil {
		return as == nil && bs == nil
	}

	nextA, stopA := iter.Pull(as)
	defer stopA()
	nextB, stopB := iter.Pull(bs)
	defer stopB()

	for {
		va, okA := nextA()
		vb, okB := nextB()
		if okA != okB {
			return false
		}
		if !okA {
			return true
		}
		if !ValuesEqual(va, vb) {
			return false
		}
	}
}

// ValuesEqual reports whether a and b have the same dynamic type and are
// equal. Types implementing Equatable decide for themselves; comparable
// values use ==; anything else falls back to reflect.DeepEqual.
func ValuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if e, ok := a.(Equatable); ok {
		return e.EqualTo(b)
	}
	if reflect.ValueOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}

// Erase converts a typed sequence to a sequence of any.
func Erase[E any](seq iter.Seq[E]) iter.Seq[any] {
	return func(yield func(any) bool) {
		for e := range seq {
			if !yield(e) {
				return
			}
		}
	}
}
