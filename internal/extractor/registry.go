package extractor

import "sync"

// RegistryStats holds lookup statistics
type RegistryStats struct {
	Hits   int64
	Misses int64
	Size   int64
}

// Registry memoizes class descriptions by class name.
// Entries are never invalidated; a new source needs a new registry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*ClassDescription
	stats   RegistryStats
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*ClassDescription),
	}
}

// Get returns the description stored for name
func (r *Registry) Get(name string) (*ClassDescription, bool) {
	r.mu.RLock()
	desc, ok := r.entries[name]
	r.mu.RUnlock()

	r.mu.Lock()
	if ok {
		r.stats.Hits++
	} else {
		r.stats.Misses++
	}
	r.mu.Unlock()

	return desc, ok
}

// Put stores desc under name unless an entry already exists, and returns the stored entry
func (r *Registry) Put(name string, desc *ClassDescription) *ClassDescription {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[name]; ok {
		return existing
	}
	r.entries[name] = desc
	r.stats.Size = int64(len(r.entries))
	return desc
}

// Stats returns registry statistics
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}
