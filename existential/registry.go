package existential

import (
	"bytes"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lex00/existential-go/errors"
)

// DefaultTypeKey is the object key a Registry stores type names under.
const DefaultTypeKey = "_type"

var (
	// ErrUnregisteredType indicates a concrete type or type name the
	// registry does not know.
	ErrUnregisteredType = errors.New("unregistered type")

	// ErrMissingTypeKey indicates encoded data without a type name.
	ErrMissingTypeKey = errors.New("missing type key")
)

// Registry maps names to the concrete types implementing P. The name of
// a value's type is stored under a key of its JSON object.
//
// A Registry is safe for concurrent use.
type Registry[P any] struct {
	key string

	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// RegistryOption configures a Registry.
type RegistryOption func(*registryOptions)

type registryOptions struct {
	key string
}

// WithTypeKey stores type names under key instead of DefaultTypeKey.
func WithTypeKey(key string) RegistryOption {
	return func(o *registryOptions) { o.key = key }
}

// NewRegistry returns an empty Registry. It panics if the type key is not
// a plain object key.
func NewRegistry[P any](opts ...RegistryOption) *Registry[P] {
	o := registryOptions{key: DefaultTypeKey}
	for _, opt := range opts {
		opt(&o)
	}
	if err := ValidateTypeKey(o.key); err != nil {
		panic(err)
	}
	return &Registry[P]{
		key:    o.key,
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// ValidateTypeKey checks that key can be used as a type key.
func ValidateTypeKey(key string) error {
	if key == "" {
		return errors.New("type key must not be empty")
	}
	if strings.ContainsAny(key, `.*?|#@!\`) {
		return errors.Newf("type key %q contains a path character", key)
	}
	return nil
}

// Key returns the object key type names are stored under.
func (r *Registry[P]) Key() string { return r.key }

// Register records the dynamic type of sample under name.
func (r *Registry[P]) Register(name string, sample P) error {
	typ := reflect.TypeOf(sample)
	if typ == nil {
		return errors.Newf("register %q: nil sample", name)
	}
	if name == "" {
		return errors.Newf("register %s: empty name", TypeID(typ))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok && existing != typ {
		return errors.Newf("register %q: already used by %s", name, TypeID(existing))
	}
	if existing, ok := r.byType[typ]; ok && existing != name {
		return errors.Newf("register %s: already registered as %q", TypeID(typ), existing)
	}
	r.byName[name] = typ
	r.byType[typ] = name
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry[P]) MustRegister(name string, sample P) {
	if err := r.Register(name, sample); err != nil {
		panic(err)
	}
}

// Names returns the registered names, sorted.
func (r *Registry[P]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecodeType reads the type name from a JSON object.
func (r *Registry[P]) DecodeType(data []byte) (reflect.Type, error) {
	res := gjson.GetBytes(data, r.key)
	if !res.Exists() {
		return nil, errors.Wrapf(ErrMissingTypeKey, "%q", r.key)
	}
	if res.Type != gjson.String {
		return nil, errors.Newf("type key %q: expected string, found %s", r.key, res.Type)
	}

	r.mu.RLock()
	typ, ok := r.byName[res.Str]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.WithHintf(errors.Wrapf(ErrUnregisteredType, "%q", res.Str),
			"registered: %s", strings.Join(r.Names(), ", "))
	}
	return typ, nil
}

// EncodeType adds the name of t to a JSON object.
func (r *Registry[P]) EncodeType(t reflect.Type, data []byte) ([]byte, error) {
	r.mu.RLock()
	name, ok := r.byType[t]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnregisteredType, "%s", TypeID(t))
	}

	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.Newf("%s: encoded value is not a JSON object", TypeID(t))
	}
	out, err := sjson.SetBytes(data, r.key, name)
	if err != nil {
		return nil, errors.Wrapf(err, "writing type key %q", r.key)
	}
	return out, nil
}
