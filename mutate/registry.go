package mutate

import (
	"slices"

	"github.com/fwojciec/blockwright"
)

var _ blockwright.AdapterRegistry = (*Registry)(nil)

// Registry maps render targets to the adapters that mutate them. Targets
// without an adapter are handled by returning manual instructions.
type Registry struct {
	adapters map[blockwright.RenderTarget]blockwright.ContentAdapter
}

// NewRegistry creates a new Registry holding the given adapters.
func NewRegistry(adapters ...blockwright.ContentAdapter) *Registry {
	r := &Registry{adapters: make(map[blockwright.RenderTarget]blockwright.ContentAdapter)}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Get returns the adapter for a target, or nil if none is registered.
func (r *Registry) Get(target blockwright.RenderTarget) blockwright.ContentAdapter {
	return r.adapters[target]
}

// Register adds an adapter under its own target.
// If an adapter is already registered for the target, it is replaced.
func (r *Registry) Register(adapter blockwright.ContentAdapter) {
	r.adapters[adapter.Target()] = adapter
}

// List returns all registered targets in sorted order.
func (r *Registry) List() []blockwright.RenderTarget {
	targets := make([]blockwright.RenderTarget, 0, len(r.adapters))
	for t := range r.adapters {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}
