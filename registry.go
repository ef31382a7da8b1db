package stockroom

import "sort"

// Registry tracks every component type a storage has seen. It maps each
// TypeID back to its Component and assigns each type a dense bit row used
// for archetype masks. Rows are allocated in registration order; TypeIDs
// are name hashes and independent of registration order.
type Registry struct {
	rows       map[TypeID]uint32
	components map[TypeID]Component
	nextRow    uint32
}

func newRegistry() *Registry {
	return &Registry{
		rows:       make(map[TypeID]uint32),
		components: make(map[TypeID]Component),
	}
}

// Register records a component type, assigning it a bit row on first sight.
// Registering the same type again is a no-op.
func (r *Registry) Register(c Component) {
	id := c.TypeID()
	if _, ok := r.rows[id]; ok {
		return
	}
	r.rows[id] = r.nextRow
	r.components[id] = c
	r.nextRow++
}

// RowIndexFor returns the mask bit row for a component, registering it
// first if needed.
func (r *Registry) RowIndexFor(c Component) uint32 {
	r.Register(c)
	return r.rows[c.TypeID()]
}

// Lookup resolves a TypeID back to its registered component type.
func (r *Registry) Lookup(id TypeID) (Component, bool) {
	c, ok := r.components[id]
	return c, ok
}

// Count returns the number of registered component types.
func (r *Registry) Count() int {
	return len(r.components)
}

// RegisteredTypeIDs returns all registered TypeIDs in ascending order.
func (r *Registry) RegisteredTypeIDs() []TypeID {
	ids := make([]TypeID, 0, len(r.components))
	for id := range r.components {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
