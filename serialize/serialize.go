// Package serialize converts Go structs to maps and serializes them to
// JSON/YAML with configurable naming conventions. Struct fields keep their
// declaration order in JSON and YAML output.
//
// A field tagged `serialize:"-"` is skipped; `serialize:"name"` overrides
// the converted key. Non-struct values implementing fmt.Stringer are
// written as their String form.
package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Option configures serialization behavior.
type Option func(*options)

type options struct {
	namingConvention func(string) string
	omitEmpty        bool
}

// SnakeCase converts field names to snake_case (e.g., FirstName -> first_name).
var SnakeCase Option = func(o *options) {
	o.namingConvention = toSnakeCase
}

// KebabCase converts field names to kebab-case (e.g., FirstName -> first-name).
var KebabCase Option = func(o *options) {
	o.namingConvention = toKebabCase
}

// CamelCase converts field names to camelCase (e.g., FirstName -> firstName).
var CamelCase Option = func(o *options) {
	o.namingConvention = toCamelCase
}

// PascalCase keeps field names as PascalCase (e.g., FirstName -> FirstName).
var PascalCase Option = func(o *options) {
	o.namingConvention = toPascalCase
}

// OmitEmpty omits fields with zero values from output.
var OmitEmpty Option = func(o *options) {
	o.omitEmpty = true
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

func newOptions(opts []Option) *options {
	o := &options{namingConvention: toPascalCase}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ToMap converts a struct to a map with the given options.
func ToMap(v any, opts ...Option) map[string]any {
	m := structToOrdered(reflect.ValueOf(v), newOptions(opts))
	if m == nil {
		return nil
	}
	return m.toMap()
}

// ToYAML serializes a struct or slice of structs to YAML bytes.
func ToYAML(v any, opts ...Option) ([]byte, error) {
	return yaml.Marshal(convertValue(reflect.ValueOf(v), newOptions(opts)))
}

// ToJSON serializes a struct or slice of structs to JSON bytes.
func ToJSON(v any, opts ...Option) ([]byte, error) {
	return json.Marshal(convertValue(reflect.ValueOf(v), newOptions(opts)))
}

// ToJSONIndent is ToJSON with two-space indentation.
func ToJSONIndent(v any, opts ...Option) ([]byte, error) {
	return json.MarshalIndent(convertValue(reflect.ValueOf(v), newOptions(opts)), "", "  ")
}

type entry struct {
	key   string
	value any
}

// ordered is a map that remembers insertion order.
type ordered []entry

func (m ordered) toMap() map[string]any {
	out := make(map[string]any, len(m))
	for _, e := range m {
		out[e.key] = plain(e.value)
	}
	return out
}

func plain(v any) any {
	switch x := v.(type) {
	case ordered:
		return x.toMap()
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = plain(x[i])
		}
		return out
	default:
		return v
	}
}

func (m ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m ordered) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range m {
		val := &yaml.Node{}
		if err := val.Encode(e.value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.key}, val)
	}
	return node, nil
}

func structToOrdered(v reflect.Value, o *options) ordered {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil
	}

	result := ordered{}
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("serialize")
		if tag == "-" {
			continue
		}

		if o.omitEmpty && isZeroValue(fieldValue) {
			continue
		}

		key := tag
		if key == "" {
			key = o.namingConvention(field.Name)
		}
		result = append(result, entry{key, convertValue(fieldValue, o)})
	}

	return result
}

func convertValue(v reflect.Value, o *options) any {
	if !v.IsValid() {
		return nil
	}
	if s, ok := asStringer(v); ok {
		return s.String()
	}

	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return convertValue(v.Elem(), o)
	case reflect.Struct:
		return structToOrdered(v, o)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		// Return slice values directly for simple types
		if v.Type().Elem().Kind() == reflect.String && !v.Type().Elem().Implements(stringerType) {
			result := make([]string, v.Len())
			for i := 0; i < v.Len(); i++ {
				result[i] = v.Index(i).String()
			}
			return result
		}
		result := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			result[i] = convertValue(v.Index(i), o)
		}
		return result
	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		keys := v.MapKeys()
		names := make([]string, len(keys))
		for i, key := range keys {
			names[i] = fmt.Sprint(key.Interface())
		}
		idx := make([]int, len(keys))
		for i := range idx {
			idx[i] = i
		}
		slices.SortFunc(idx, func(a, b int) int { return strings.Compare(names[a], names[b]) })

		result := make(ordered, 0, len(keys))
		for _, i := range idx {
			result = append(result, entry{o.namingConvention(names[i]), convertValue(v.MapIndex(keys[i]), o)})
		}
		return result
	case reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return convertValue(v.Elem(), o)
	default:
		return v.Interface()
	}
}

// asStringer reports non-struct, non-nil values that implement
// fmt.Stringer.
func asStringer(v reflect.Value) (fmt.Stringer, bool) {
	switch v.Kind() {
	case reflect.Struct, reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return nil, false
	}
	if !v.CanInterface() || !v.Type().Implements(stringerType) {
		return nil, false
	}
	s, ok := v.Interface().(fmt.Stringer)
	return s, ok
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Array:
		return v.Len() == 0
	case reflect.Struct:
		return v.IsZero()
	default:
		return false
	}
}

// toSnakeCase converts PascalCase to snake_case.
// Handles consecutive capitals (e.g., "ID" -> "id", "APIKey" -> "api_key").
func toSnakeCase(s string) string {
	return splitWords(s, '_')
}

func toKebabCase(s string) string {
	return splitWords(s, '-')
}

func splitWords(s string, sep rune) string {
	if len(s) == 0 {
		return s
	}

	runes := []rune(s)
	var result strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Separate before an uppercase rune that starts a word.
			if i > 0 {
				prevLower := unicode.IsLower(runes[i-1])
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if prevLower || nextLower {
					result.WriteRune(sep)
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// toCamelCase converts PascalCase to camelCase.
func toCamelCase(s string) string {
	if len(s) == 0 {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// toPascalCase returns the string as-is (already PascalCase).
func toPascalCase(s string) string {
	return s
}
