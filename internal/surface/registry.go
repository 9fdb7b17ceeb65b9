package surface

import "sync"

// Registry maps native window identities to their owning surfaces, so window
// system events can be routed without stashing raw pointers in per-window
// user data. The registry is read from event-dispatch code and may therefore
// be consulted from any goroutine; surfaces themselves remain single-owner.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[Handle]*Surface
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[Handle]*Surface)}
}

// Lookup returns the surface owning the given native window, if any.
func (r *Registry) Lookup(h Handle) (*Surface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[h]
	return s, ok
}

func (r *Registry) add(h Handle, s *Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surfaces[h] = s
}

func (r *Registry) remove(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.surfaces, h)
}
