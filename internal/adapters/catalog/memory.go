// Package catalogrepo provides component registry implementations.
package catalogrepo

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flowcanvas/flowcanvas/internal/core/catalog"
)

// InMemoryRegistry is a thread-safe map-backed component registry.
type InMemoryRegistry struct {
	mu         sync.RWMutex
	components map[string]*catalog.ComponentDefinition
}

// NewInMemoryRegistry creates an empty registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		components: make(map[string]*catalog.ComponentDefinition),
	}
}

// Register adds a component definition to the registry.
func (r *InMemoryRegistry) Register(def *catalog.ComponentDefinition) error {
	if def == nil {
		return catalog.ErrNilDefinition
	}
	if def.ID == "" {
		return fmt.Errorf("%w: empty component id", catalog.ErrNilDefinition)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.components[def.ID]; exists {
		return fmt.Errorf("%w: %s", catalog.ErrDuplicateID, def.ID)
	}
	r.components[def.ID] = def
	return nil
}

// GetComponent returns the definition for id.
func (r *InMemoryRegistry) GetComponent(id string) (*catalog.ComponentDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.components[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrComponentNotFound, id)
	}
	return def, nil
}

// List returns all registered definitions sorted by identifier.
func (r *InMemoryRegistry) List() []*catalog.ComponentDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*catalog.ComponentDefinition, 0, len(r.components))
	for _, def := range r.components {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
