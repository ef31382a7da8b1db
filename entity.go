package stockroom

import (
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Entity = &entity{}

type entity struct {
	sto           *storage
	id            EntityID
	relationships relationships
}

type relationships struct {
	parent    Entity
	onDestroy EntityDestroyCallback
}

func (e *entity) ID() EntityID {
	return e.id
}

func (e *entity) Valid() bool {
	_, ok := e.sto.locations[e.id]
	return ok
}

func (e *entity) Components() []Component {
	arch, _, ok := e.sto.locate(e.id)
	if !ok {
		return nil
	}
	return arch.Components()
}

func (e *entity) SetParent(parent Entity, callback EntityDestroyCallback) error {
	if e.relationships.parent != nil {
		return EntityRelationError{e, e.relationships.parent}
	}
	e.relationships.parent = parent
	err := parent.SetDestroyCallback(callback)
	if err != nil {
		return err
	}
	return nil
}

func (e *entity) SetDestroyCallback(callback EntityDestroyCallback) error {
	e.relationships.onDestroy = callback
	return nil
}

func (e *entity) AddComponent(c Component) error {
	return e.addComponent(c, nil)
}

// addComponent migrates the entity to the archetype that holds its current
// component set plus c, carrying every existing component value across. A
// nil value leaves the new component zero-valued.
func (e *entity) addComponent(c Component, value any) error {
	if e.sto.Locked() {
		return LockedStorageError{}
	}
	origin, row, ok := e.sto.locate(e.id)
	if !ok {
		return EntityNotFoundError{ID: e.id}
	}
	if origin.contains(c.TypeID()) {
		return ComponentExistsError{Component: c}
	}

	e.sto.registry.Register(c)
	destMask := origin.Mask()
	destMask.Mark(e.sto.registry.RowIndexFor(c))

	originComps := iter_util.Collect(origin.ComponentTypes())
	destComps := make([]Component, len(originComps)+1)
	copy(destComps, originComps)
	destComps[len(destComps)-1] = c

	dest := e.sto.getOrCreateArchetypeByMask(destMask, destComps)
	return e.migrate(origin, row, dest, c, value)
}

func (e *entity) RemoveComponent(c Component) error {
	if e.sto.Locked() {
		return LockedStorageError{}
	}
	origin, row, ok := e.sto.locate(e.id)
	if !ok {
		return EntityNotFoundError{ID: e.id}
	}
	if !origin.contains(c.TypeID()) {
		return ComponentNotFoundError{Component: c}
	}

	destMask := origin.Mask()
	destMask.Unmark(e.sto.registry.RowIndexFor(c))

	originComps := iter_util.Collect(origin.ComponentTypes())
	destComps := make([]Component, 0, len(originComps)-1)
	for _, comp := range originComps {
		if comp.TypeID() != c.TypeID() {
			destComps = append(destComps, comp)
		}
	}

	dest := e.sto.getOrCreateArchetypeByMask(destMask, destComps)
	return e.migrate(origin, row, dest, nil, nil)
}

// migrate moves the entity from origin to dest, copying the value of every
// component present in both. added is the freshly attached component (nil
// on removal); addedValue seeds it. Values are assembled and validated
// before any array is touched, the append runs, and only then is the origin
// row swap-removed, so a failure never leaves a partial update.
func (e *entity) migrate(origin *archetype, row int, dest *archetype, added Component, addedValue any) error {
	values := make([]any, len(dest.comps))
	for i, dc := range dest.comps {
		if added != nil && dc.TypeID() == added.TypeID() {
			values[i] = addedValue
			continue
		}
		v, ok := origin.valueAt(dc.TypeID(), row)
		if !ok {
			panic("migrate: destination component missing from origin archetype")
		}
		values[i] = v
	}

	newRow, err := dest.pushEntity(e.id, values)
	if err != nil {
		return err
	}

	moved := origin.swapRemove(row)
	if moved != 0 {
		movedLoc := e.sto.locations[moved]
		movedLoc.row = row
		e.sto.locations[moved] = movedLoc
	}
	e.sto.locations[e.id] = location{arch: dest.id, row: newRow}
	e.sto.queries.clear()
	return nil
}

func (e *entity) EnqueueAddComponent(c Component) error {
	if !e.sto.Locked() {
		return e.AddComponent(c)
	}
	e.sto.opQueue.EnqueueComponentOp(opAddComponent, e, c)
	return nil
}

func (e *entity) EnqueueRemoveComponent(c Component) error {
	if !e.sto.Locked() {
		return e.RemoveComponent(c)
	}
	e.sto.opQueue.EnqueueComponentOp(opRemoveComponent, e, c)
	return nil
}
