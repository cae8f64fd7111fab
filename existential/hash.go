package existential

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Hashable is implemented by types that feed themselves into a Hasher.
// Generated wrappers implement it.
type Hashable interface {
	Hash(h *Hasher)
}

// Hasher accumulates values into a 64-bit xxhash digest.
//
// Values that are not Hashable are walked with reflection. Pointers are
// followed to their targets so that values equal under ValuesEqual hash
// alike; a reference back into the current path is written as a marker.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte

	// path holds the references being walked.
	path map[visit]struct{}
}

type visit struct {
	ptr uintptr
	len int
	typ reflect.Type
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{d: xxhash.New()}
}

// entry returns an empty Hasher sharing h's path, for order-independent
// sums over map entries.
func (h *Hasher) entry() *Hasher {
	return &Hasher{d: xxhash.New(), path: h.path}
}

// enter records a reference on the current path. It returns false when
// the reference is already being walked.
func (h *Hasher) enter(v visit) bool {
	if _, ok := h.path[v]; ok {
		return false
	}
	if h.path == nil {
		h.path = make(map[visit]struct{})
	}
	h.path[v] = struct{}{}
	return true
}

func (h *Hasher) leave(v visit) { delete(h.path, v) }

// Write adds raw bytes to the digest.
func (h *Hasher) Write(p []byte) (int, error) {
	return h.d.Write(p)
}

// Sum64 returns the current digest.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}

// CombineType adds a type discriminator.
func (h *Hasher) CombineType(t reflect.Type) {
	h.writeString(TypeID(t))
}

// Combine adds v. Hashable values hash themselves; everything else is
// walked with reflection.
func (h *Hasher) Combine(v any) {
	if v == nil {
		h.writeByte(0)
		return
	}
	if hv, ok := v.(Hashable); ok {
		hv.Hash(h)
		return
	}
	h.value(reflect.ValueOf(v))
}

// HashOf returns the hash of a single value.
func HashOf(v any) uint64 {
	h := NewHasher()
	h.Combine(v)
	return h.Sum64()
}

var hashableType = reflect.TypeFor[Hashable]()

func (h *Hasher) value(v reflect.Value) {
	if !v.IsValid() {
		h.writeByte(0)
		return
	}
	if v.CanInterface() && v.Type().Implements(hashableType) {
		if v.Kind() != reflect.Pointer || !v.IsNil() {
			v.Interface().(Hashable).Hash(h)
			return
		}
	}

	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			h.writeByte(1)
		} else {
			h.writeByte(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		h.writeUint64(uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		h.writeUint64(v.Uint())
	case reflect.Float32, reflect.Float64:
		h.writeFloat(v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		h.writeFloat(real(c))
		h.writeFloat(imag(c))
	case reflect.String:
		h.writeString(v.String())
	case reflect.Array:
		h.elements(v)
	case reflect.Slice:
		if v.Len() == 0 {
			h.writeUint64(0)
			return
		}
		ref := visit{ptr: v.Pointer(), len: v.Len(), typ: v.Type()}
		if !h.enter(ref) {
			h.writeByte(2)
			return
		}
		h.elements(v)
		h.leave(ref)
	case reflect.Struct:
		for i := range v.NumField() {
			h.value(v.Field(i))
		}
	case reflect.Map:
		if v.IsNil() {
			h.writeByte(0)
			return
		}
		ref := visit{ptr: v.Pointer(), typ: v.Type()}
		if !h.enter(ref) {
			h.writeByte(2)
			return
		}
		// Map iteration order is random; sum per-entry digests instead.
		var sum uint64
		iter := v.MapRange()
		for iter.Next() {
			entry := h.entry()
			entry.value(iter.Key())
			entry.value(iter.Value())
			sum += entry.Sum64()
		}
		h.leave(ref)
		h.writeUint64(uint64(v.Len()))
		h.writeUint64(sum)
	case reflect.Interface:
		if v.IsNil() {
			h.writeByte(0)
			return
		}
		elem := v.Elem()
		h.CombineType(elem.Type())
		h.value(elem)
	case reflect.Pointer:
		if v.IsNil() {
			h.writeByte(0)
			return
		}
		ref := visit{ptr: v.Pointer(), typ: v.Type()}
		if !h.enter(ref) {
			h.writeByte(2)
			return
		}
		h.writeByte(1)
		h.value(v.Elem())
		h.leave(ref)
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		// Compared by identity, so hashed by address.
		h.writeUint64(uint64(v.Pointer()))
	}
}

func (h *Hasher) elements(v reflect.Value) {
	h.writeUint64(uint64(v.Len()))
	for i := range v.Len() {
		h.value(v.Index(i))
	}
}

func (h *Hasher) writeByte(b byte) {
	h.buf[0] = b
	_, _ = h.d.Write(h.buf[:1])
}

func (h *Hasher) writeUint64(u uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], u)
	_, _ = h.d.Write(h.buf[:])
}

func (h *Hasher) writeFloat(f float64) {
	if f == 0 {
		f = 0 // -0 == +0
	}
	h.writeUint64(math.Float64bits(f))
}

func (h *Hasher) writeString(s string) {
	h.writeUint64(uint64(len(s)))
	_, _ = h.d.WriteString(s)
}

// TypeID returns a stable name for t. Named types are qualified with
// their import path, also inside pointer, slice, array, map and channel
// types.
func TypeID(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Name() != "" {
		if t.PkgPath() != "" {
			return t.PkgPath() + "." + t.Name()
		}
		return t.Name()
	}

	switch t.Kind() {
	case reflect.Pointer:
		return "*" + TypeID(t.Elem())
	case reflect.Slice:
		return "[]" + TypeID(t.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", t.Len(), TypeID(t.Elem()))
	case reflect.Map:
		return "map[" + TypeID(t.Key()) + "]" + TypeID(t.Elem())
	case reflect.Chan:
		switch t.ChanDir() {
		case reflect.RecvDir:
			return "<-chan " + TypeID(t.Elem())
		case reflect.SendDir:
			return "chan<- " + TypeID(t.Elem())
		default:
			return "chan " + TypeID(t.Elem())
		}
	default:
		return t.String()
	}
}
