// Package shapes declares interfaces for every coding kind. The compile
// test in package generate copies it, generates its wrappers and runs
// shapes_test.go against them.
package shapes

import (
	"reflect"

	"github.com/lex00/existential-go/existential"
)

// Shape has an area.
//
//existential:equatable
//existential:decodable
//existential:encodable
//existential:equatable-encodable
type Shape interface {
	Area() int
}

// Tile is a Shape that hashes itself.
//
//existential:hashable-encodable access=unexported
type Tile interface {
	existential.Hashable
	Shape
}

type Square struct {
	Side int `json:"side"`
}

func (s Square) Area() int { return s.Side * s.Side }

func (s Square) Hash(h *existential.Hasher) { h.Combine(s.Side) }

type Rect struct {
	W int `json:"w"`
	H int `json:"h"`
}

func (r Rect) Area() int { return r.W * r.H }

var Shapes = existential.NewRegistry[Shape]()

func init() {
	Shapes.MustRegister("square", Square{})
	Shapes.MustRegister("rect", Rect{})
}

// Coding records concrete types through the Shapes registry.
type Coding struct{}

func (Coding) DecodeType(data []byte) (reflect.Type, error) {
	return Shapes.DecodeType(data)
}

func (Coding) EncodeType(t reflect.Type, data []byte) ([]byte, error) {
	return Shapes.EncodeType(t, data)
}
