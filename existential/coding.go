package existential

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/lex00/existential-go/errors"
)

// TypeDecoding reads the concrete type recorded in an encoded value.
// Generated wrappers call it on the zero value of their type parameter.
type TypeDecoding[P any] interface {
	DecodeType(data []byte) (reflect.Type, error)
}

// TypeEncoding records the concrete type t in an encoded value.
type TypeEncoding[P any] interface {
	EncodeType(t reflect.Type, data []byte) ([]byte, error)
}

// TypeCoding both records and reads concrete types.
type TypeCoding[P any] interface {
	TypeDecoding[P]
	TypeEncoding[P]
}

// Decodable is implemented by wrappers that decode from JSON.
type Decodable interface {
	json.Unmarshaler
}

// Encodable is implemented by wrappers that encode to JSON.
type Encodable interface {
	json.Marshaler
}

// Codable is implemented by wrappers that decode from and encode to JSON.
type Codable interface {
	Decodable
	Encodable
}

// OptionalDecodingSupport marks wrappers that decode JSON null as the
// absent value.
type OptionalDecodingSupport interface {
	DecodesNull()
}

// OptionalEncodingSupport marks wrappers that encode the absent value as
// JSON null. IsZero lets such fields be left out with `json:",omitzero"`.
type OptionalEncodingSupport interface {
	IsZero() bool
}

// Sendable marks wrappers of interfaces that embed Sendable.
type Sendable interface {
	Sendable()
}

// IsNull reports whether data is the JSON null literal.
func IsNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// Construct decodes data into a new value of typ and returns it as a P.
func Construct[P any](typ reflect.Type, data []byte) (P, error) {
	var zero P
	if typ == nil {
		return zero, errors.New("construct: nil type")
	}

	ptr := reflect.New(typ)
	if err := json.Unmarshal(data, ptr.Interface()); err != nil {
		return zero, errors.Wrapf(err, "decoding %s", TypeID(typ))
	}
	if value, ok := ptr.Elem().Interface().(P); ok {
		return value, nil
	}
	if value, ok := ptr.Interface().(P); ok {
		return value, nil
	}
	return zero, errors.Newf("%s does not implement %s", TypeID(typ), TypeID(reflect.TypeFor[P]()))
}
