package stockroom

import (
	"github.com/rotisserie/eris"
)

// World orchestrates entity/component CRUD against a single storage and
// runs registered systems. A World is single-threaded: all methods must be
// called from one logical thread of control.
type World struct {
	registry *Registry
	storage  Storage
	systems  []*systemEntry
	tick     uint64
}

func newWorld() *World {
	registry := newRegistry()
	w := &World{
		registry: registry,
		storage:  newStorage(registry),
	}
	Config.Logger().Debug().Msg("world_created")
	return w
}

func (w *World) Registry() *Registry {
	return w.registry
}

func (w *World) Storage() Storage {
	return w.storage
}

// Tick returns the number of completed Update calls.
func (w *World) Tick() uint64 {
	return w.tick
}

// CreateEntity allocates a new entity with no components. The entity is a
// member of the empty-signature archetype until a component is added.
func (w *World) CreateEntity() (EntityID, error) {
	entities, err := w.storage.NewEntities(1)
	if err != nil {
		return 0, eris.Wrap(err, "create entity")
	}
	return entities[0].ID(), nil
}

// DestroyEntity removes an entity and all of its components. Destroying an
// entity that does not exist (including a second destroy of the same id)
// returns EntityNotFoundError.
func (w *World) DestroyEntity(id EntityID) error {
	en, err := w.storage.Entity(id)
	if err != nil {
		return err
	}
	return w.storage.DestroyEntities(en)
}

// AddComponent attaches a component value to an entity, migrating it to the
// archetype matching its new type set.
func (w *World) AddComponent(id EntityID, c Component, value any) error {
	en, err := w.storage.Entity(id)
	if err != nil {
		return err
	}
	return en.(*entity).addComponent(c, value)
}

// RemoveComponent detaches a component from an entity. It reports whether
// the component was found and removed; the error is non-nil only for
// failures unrelated to presence, such as a locked storage.
func (w *World) RemoveComponent(id EntityID, c Component) (bool, error) {
	en, err := w.storage.Entity(id)
	if err != nil {
		return false, nil
	}
	err = en.RemoveComponent(c)
	switch err.(type) {
	case nil:
		return true, nil
	case ComponentNotFoundError:
		return false, nil
	default:
		return false, err
	}
}

// GetComponent returns the current value of a component on an entity.
// Misses (unknown entity, component not attached) return ok=false.
func (w *World) GetComponent(id EntityID, c Component) (any, bool) {
	return w.storage.(*storage).componentValue(id, c.TypeID())
}

// UpdateComponent overwrites the value of a component already attached to
// an entity.
func (w *World) UpdateComponent(id EntityID, c Component, value any) error {
	return w.storage.(*storage).setComponentValue(id, c, value)
}

// Query returns a cursor over all entities whose archetype signature
// contains every given component ("has-all-of"). Results come from the
// query cache when an identical query ran since the last mutation.
func (w *World) Query(components ...Component) *Cursor {
	return newCursor(newLeafNode(components), w.storage)
}

// QueryWith returns a cursor for a composed query node built with
// Factory.NewQuery (And/Or/Not trees).
func (w *World) QueryWith(node QueryNode) *Cursor {
	return newCursor(node, w.storage)
}
