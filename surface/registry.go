package surface

import (
	"sync"

	"github.com/pkg/errors"
)

// Registry is a Provider backed by a map of named surfaces.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]Surface)}
}

// Register makes s available under id, replacing any previous entry
func (r *Registry) Register(id string, s Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces[id] = s
}

// Unregister removes the surface registered under id
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surfaces, id)
}

// Acquire returns the surface registered under id
func (r *Registry) Acquire(id string) (Surface, error) {
	r.mu.RLock()
	s, ok := r.surfaces[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errors.WithStack(&SurfaceNotFoundError{ID: id})
	}
	return s, nil
}
