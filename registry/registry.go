// Package registry caches one coder state per Go type, keyed by
// reflect.Type, for callers that want to reuse a coder across many
// Encode/Decode calls without threading it through by hand. It exists
// purely for API convenience — nothing in coder, length, variant,
// intpack, or bytepack depends on it.
package registry

import (
	"reflect"
	"sync"
)

// Registry is a concurrency-safe cache of boxed coder states, one per
// concrete Go type.
type Registry struct {
	mu     sync.Mutex
	states map[reflect.Type]any
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{states: make(map[reflect.Type]any)}
}

// GetOrCreate returns the cached value for T, building it with build
// the first time T is requested from r.
func GetOrCreate[T any](r *Registry, build func() T) T {
	var zero T
	key := reflect.TypeOf(&zero).Elem()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.states[key]; ok {
		return existing.(T)
	}

	created := build()
	r.states[key] = created

	return created
}

// Delete drops the cached state for T, if any.
func Delete[T any](r *Registry) {
	var zero T
	key := reflect.TypeOf(&zero).Elem()

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.states, key)
}

// Len reports how many distinct types currently have cached state.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.states)
}

var global = New()

// GetOrCreateGlobal is GetOrCreate against a process-wide default
// registry, for callers that don't need per-call isolation.
func GetOrCreateGlobal[T any](build func() T) T {
	return GetOrCreate(global, build)
}
