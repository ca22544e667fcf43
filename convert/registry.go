package convert

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// ListPrefix marks a list type name, as in "[]int".
const ListPrefix = "[]"

// Registry maps type names and Go types to converters.
// It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Converter
	byType map[reflect.Type]Converter
}

// Default is the registry used when no other is supplied.
var Default = NewRegistry()

// NewRegistry creates a registry holding the built-in converters.
func NewRegistry() *Registry {
	r := &Registry{
		byName: make(map[string]Converter),
		byType: make(map[reflect.Type]Converter),
	}
	for _, c := range builtins() {
		r.add(c)
	}
	for alias, name := range builtinAliases {
		r.byName[alias] = r.byName[name]
	}
	return r
}

// add stores c. For type lookups a Direct converter is never displaced by
// a Text one.
func (r *Registry) add(c Converter) {
	r.byName[c.name] = c
	if existing, ok := r.byType[c.typ]; ok && existing.form == Direct && c.form == Text {
		return
	}
	r.byType[c.typ] = c
}

// Register adds or replaces a converter under its name.
func (r *Registry) Register(c Converter) error {
	if c.IsZero() || c.name == "" || strings.HasPrefix(c.name, ListPrefix) {
		return fmt.Errorf("%w: %q", ErrInvalid, c.name)
	}

	r.mu.Lock()
	r.add(c)
	r.mu.Unlock()
	return nil
}

// Alias makes alias resolve to the converter registered as name.
func (r *Registry) Alias(alias, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	r.byName[alias] = c
	return nil
}

// Lookup returns the converter registered under name.
func (r *Registry) Lookup(name string) (Converter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byName[name]
	return c, ok
}

// ForType selects the converter for t: registered first, then the type's
// own encoding.TextUnmarshaler, then a Direct built-in by kind. A type such
// as `type Color string` with an UnmarshalText method is parsed through that
// method, not set directly.
func (r *Registry) ForType(t reflect.Type) (Converter, bool) {
	r.mu.RLock()
	c, ok := r.byType[t]
	r.mu.RUnlock()
	if ok {
		return c, true
	}

	if c, ok := textFor(t); ok {
		return c, true
	}
	return kindFor(t)
}

// Resolve parses a type name such as "int" or "[]duration" and returns the
// element converter and whether the name denotes a list.
func (r *Registry) Resolve(typeName string) (Converter, bool, error) {
	name := strings.TrimSpace(typeName)
	list := strings.HasPrefix(name, ListPrefix)
	if list {
		name = strings.TrimSpace(strings.TrimPrefix(name, ListPrefix))
	}

	c, ok := r.Lookup(name)
	if !ok {
		return Converter{}, false, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return c, list, nil
}

// Names returns every registered name, aliases included, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// For returns the Default registry's converter for T.
func For[T any]() (Converter, bool) {
	return Default.ForType(reflect.TypeFor[T]())
}
