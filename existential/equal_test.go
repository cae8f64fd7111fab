package existential

import (
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type single struct{ v any }

func (s single) EquatableValue() any { return s.v }

type many struct{ seq iter.Seq[any] }

func (m many) EquatableSequence() iter.Seq[any] { return m.seq }

func seqOf(values ...any) many { return many{seq: slices.Values(values)} }

type caseless string

func (c caseless) EqualTo(other any) bool {
	return strings.EqualFold(string(c), string(other.(caseless)))
}

func (c caseless) Hash(h *Hasher) { h.Combine(strings.ToLower(string(c))) }

// unsigned has EqualTo but no Hash, so it is compared structurally.
type unsigned int

func (u unsigned) EqualTo(other any) bool {
	o := other.(unsigned)
	return u == o || u == -o
}

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and value", nil, 1, false},
		{"same int", 3, 3, true},
		{"different int", 3, 4, false},
		{"different types", int32(3), int64(3), false},
		{"structs", struct{ A string }{"x"}, struct{ A string }{"x"}, true},
		{"slices", []int{1, 2}, []int{1, 2}, true},
		{"slices differ", []int{1, 2}, []int{2, 1}, false},
		{"equatable", caseless("tea"), caseless("Tea"), true},
		{"equal to without hash", unsigned(3), unsigned(-3), false},
		{"pointers to equal values", []*int{ptr(1), ptr(2)}, []*int{ptr(1), ptr(2)}, true},
		{"pointers to different values", []*int{ptr(1)}, []*int{ptr(2)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValuesEqual(tt.a, tt.b))
		})
	}
}

func TestValuesEqualAgreesWithHashOf(t *testing.T) {
	type holder struct {
		Name   string
		Values []*int
		Tags   map[string]*string
	}
	str := func(s string) *string { return &s }

	tests := []struct {
		name string
		a, b any
	}{
		{"equatable", caseless("Oolong"), caseless("OOLONG")},
		{"equal to without hash", unsigned(3), unsigned(3)},
		{"pointer fields", holder{"a", []*int{ptr(1)}, nil}, holder{"a", []*int{ptr(1)}, nil}},
		{"map of pointers", holder{Tags: map[string]*string{"k": str("v")}}, holder{Tags: map[string]*string{"k": str("v")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, ValuesEqual(tt.a, tt.b))
			assert.Equal(t, HashOf(tt.a), HashOf(tt.b))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(single{"a"}, single{"a"}))
	assert.False(t, Equal(single{"a"}, single{"b"}))
	assert.True(t, Equal(single{}, single{}))
}

func TestSequenceEqual(t *testing.T) {
	assert.True(t, SequenceEqual(seqOf(1, 2, 3), seqOf(1, 2, 3)))
	assert.True(t, SequenceEqual(seqOf(), seqOf()))
	assert.True(t, SequenceEqual(many{}, many{}))

	// Order matters.
	assert.False(t, SequenceEqual(seqOf(1, 2, 3), seqOf(3, 2, 1)))
	assert.False(t, SequenceEqual(seqOf(1, 2), seqOf(1, 2, 3)))
	assert.False(t, SequenceEqual(seqOf(1, 2, 3), seqOf(1, 2)))

	// Absent differs from empty.
	assert.False(t, SequenceEqual(many{}, seqOf()))
}

func TestErase(t *testing.T) {
	got := slices.Collect(Erase(slices.Values([]string{"a", "b"})))
	assert.Equal(t, []any{"a", "b"}, got)
}
