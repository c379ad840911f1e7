package input

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps adapter names to factories. Names can be rebound at
// runtime to substitute an alternate implementation; rebinding affects
// only adapters constructed afterward.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register binds a factory to a name, replacing any previous binding.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// New constructs the adapter registered under name. Requesting an
// unregistered name is a configuration error, surfaced immediately.
func (r *Registry) New(name string, deps Deps) (Adapter, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return f(deps)
}

// Names returns all registered adapter names, sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
