package stockroom

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
)

var _ Storage = &storage{}

// location records which archetype currently holds an entity and at which
// row. Rows are only valid until the next removal from that archetype;
// swap-removals rewrite the moved entity's row in the same operation.
type location struct {
	arch archetypeID
	row  int
}

type storage struct {
	lockCount  int
	registry   *Registry
	archetypes *archetypes
	locations  map[EntityID]location
	handles    map[EntityID]*entity
	nextEntity EntityID
	opQueue    opQueue
	queries    *queryCache
}

type archetypes struct {
	nextID           archetypeID
	asSlice          []*archetype
	idsGroupedByMask map[mask.Mask]archetypeID
}

func newStorage(registry *Registry) Storage {
	archetypes := &archetypes{
		nextID:           1,
		idsGroupedByMask: make(map[mask.Mask]archetypeID),
	}
	return &storage{
		registry:   registry,
		archetypes: archetypes,
		locations:  make(map[EntityID]location),
		handles:    make(map[EntityID]*entity),
		nextEntity: 1,
		opQueue:    newOpQueue(),
		queries:    newQueryCache(Config.queryCacheCapacity),
	}
}

func (sto *storage) Entity(id EntityID) (Entity, error) {
	en, ok := sto.handles[id]
	if !ok {
		return nil, EntityNotFoundError{ID: id}
	}
	return en, nil
}

func (sto *storage) NewEntities(n int, components ...Component) ([]Entity, error) {
	if sto.Locked() {
		return nil, LockedStorageError{}
	}
	entityArchetype := sto.getOrCreateArchetype(components)

	entities := make([]Entity, n)
	for i := range entities {
		id := sto.nextEntity
		sto.nextEntity++

		row := entityArchetype.zeroRow(id)
		sto.locations[id] = location{arch: entityArchetype.id, row: row}

		en := &entity{sto: sto, id: id}
		sto.handles[id] = en
		entities[i] = en

		if cb := Config.storageEvents.OnEntityCreated; cb != nil {
			cb(id)
		}
	}
	sto.queries.clear()
	logEntityBatch(Config.Logger(), "entities_created", n, entityArchetype)
	return entities, nil
}

func (sto *storage) DestroyEntities(entities ...Entity) error {
	if sto.Locked() {
		return LockedStorageError{}
	}
	for _, en := range entities {
		if en == nil {
			continue
		}
		if err := sto.destroy(en.ID()); err != nil {
			return err
		}
	}
	return nil
}

func (sto *storage) destroy(id EntityID) error {
	loc, ok := sto.locations[id]
	if !ok {
		return EntityNotFoundError{ID: id}
	}
	arch := sto.archetypeByID(loc.arch)
	if arch.entities[loc.row] != id {
		panic(fmt.Sprintf("entity %d location desync: archetype %d row %d holds %d", id, loc.arch, loc.row, arch.entities[loc.row]))
	}

	moved := arch.swapRemove(loc.row)
	if moved != 0 {
		movedLoc := sto.locations[moved]
		movedLoc.row = loc.row
		sto.locations[moved] = movedLoc
	}

	handle := sto.handles[id]
	delete(sto.locations, id)
	delete(sto.handles, id)
	sto.queries.clear()

	if handle != nil && handle.relationships.onDestroy != nil {
		handle.relationships.onDestroy(handle)
	}
	if cb := Config.storageEvents.OnEntityDestroyed; cb != nil {
		cb(id)
	}
	return nil
}

func (sto *storage) EnqueueNewEntities(amount int, components ...Component) error {
	if !sto.Locked() {
		_, err := sto.NewEntities(amount, components...)
		if err != nil {
			return fmt.Errorf("failed to create entities directly: %w", err)
		}
		return nil
	}

	sto.opQueue.createOps = append(sto.opQueue.createOps, operation{
		typ:    opCreate,
		amount: amount,
		comps:  components,
	})
	return nil
}

func (sto *storage) EnqueueDestroyEntities(entities ...Entity) error {
	if !sto.Locked() {
		return sto.DestroyEntities(entities...)
	}

	sto.opQueue.EnqueueDestroy(sto, entities)
	return nil
}

func (sto *storage) Registry() *Registry {
	return sto.registry
}

func (sto *storage) RowIndexFor(c Component) uint32 {
	return sto.registry.RowIndexFor(c)
}

func (sto *storage) Locked() bool {
	return sto.lockCount > 0
}

func (sto *storage) Lock() {
	sto.lockCount++
}

func (sto *storage) Unlock() {
	if sto.lockCount > 0 {
		sto.lockCount--
	}
	if sto.lockCount > 0 {
		return
	}
	err := sto.processOperationQueue()
	if err != nil {
		panic(err)
	}
}

// getOrCreateArchetype resolves the archetype holding exactly the given
// component set, creating it on first use of the signature.
func (sto *storage) getOrCreateArchetype(components []Component) *archetype {
	var entityMask mask.Mask
	for _, c := range components {
		entityMask.Mark(sto.registry.RowIndexFor(c))
	}
	return sto.getOrCreateArchetypeByMask(entityMask, components)
}

func (sto *storage) getOrCreateArchetypeByMask(m mask.Mask, components []Component) *archetype {
	if id, found := sto.archetypes.idsGroupedByMask[m]; found {
		return sto.archetypeByID(id)
	}

	created := newArchetype(sto.registry, sto.archetypes.nextID, components...)
	sto.archetypes.asSlice = append(sto.archetypes.asSlice, created)
	sto.archetypes.idsGroupedByMask[m] = sto.archetypes.nextID
	sto.archetypes.nextID++

	// A new archetype can match queries whose cached results predate it.
	sto.queries.clear()
	logArchetypeCreated(Config.Logger(), created)
	return created
}

func (sto *storage) archetypeByID(id archetypeID) *archetype {
	return sto.archetypes.asSlice[id-1]
}

// locate resolves an entity to its current archetype and row.
func (sto *storage) locate(id EntityID) (*archetype, int, bool) {
	loc, ok := sto.locations[id]
	if !ok {
		return nil, 0, false
	}
	return sto.archetypeByID(loc.arch), loc.row, true
}

func (sto *storage) componentValue(id EntityID, t TypeID) (any, bool) {
	arch, row, ok := sto.locate(id)
	if !ok {
		return nil, false
	}
	return arch.valueAt(t, row)
}

func (sto *storage) setComponentValue(id EntityID, c Component, v any) error {
	arch, row, ok := sto.locate(id)
	if !ok {
		return EntityNotFoundError{ID: id}
	}
	return arch.setValueAt(c, row, v)
}

// matchingArchetypes answers a query against the archetype index. Plain
// all-of queries are served from the result cache when possible; every
// structural mutation clears the cache in full, so a hit is never stale.
func (sto *storage) matchingArchetypes(node QueryNode) []*archetype {
	keyer, ok := node.(cacheKeyer)
	if !ok {
		return sto.scanArchetypes(node)
	}
	key, cacheable := keyer.cacheKey()
	if !cacheable {
		return sto.scanArchetypes(node)
	}

	if ids, hit := sto.queries.get(key); hit {
		matched := make([]*archetype, len(ids))
		for i, id := range ids {
			matched[i] = sto.archetypeByID(id)
		}
		return matched
	}

	matched := sto.scanArchetypes(node)
	ids := make([]archetypeID, len(matched))
	for i, arch := range matched {
		ids[i] = arch.id
	}
	sto.queries.put(key, ids)
	return matched
}

func (sto *storage) scanArchetypes(node QueryNode) []*archetype {
	matched := make([]*archetype, 0)
	for _, arch := range sto.archetypes.asSlice {
		if node.Evaluate(arch, sto) {
			matched = append(matched, arch)
		}
	}
	return matched
}
