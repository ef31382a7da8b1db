package stockroom

import (
	"github.com/TheBitDrifter/mask"
)

// EntityID is an opaque entity handle. IDs are unique within one Storage,
// start at 1, and are never reused. 0 means "no entity".
type EntityID uint64

// TypeID identifies a component type. It is a deterministic hash of the
// type's fully qualified name, stable within a process run.
type TypeID uint32

type Storage interface {
	Entity(id EntityID) (Entity, error)
	NewEntities(int, ...Component) ([]Entity, error)
	EnqueueNewEntities(int, ...Component) error
	DestroyEntities(...Entity) error
	EnqueueDestroyEntities(...Entity) error
	Registry() *Registry
	RowIndexFor(Component) uint32
	Locked() bool
	Lock()
	Unlock()
}

type EntityDestroyCallback func(Entity)

type Entity interface {
	ID() EntityID
	Valid() bool
	Components() []Component
	SetParent(parent Entity, callback EntityDestroyCallback) error
	SetDestroyCallback(EntityDestroyCallback) error
	AddComponent(Component) error
	RemoveComponent(Component) error
	EnqueueAddComponent(Component) error
	EnqueueRemoveComponent(Component) error
}

type Archetype interface {
	ID() uint32
	Signature() []TypeID
	Mask() mask.Mask
	Length() int
	Entities() []EntityID
	Components() []Component
}

type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

type QueryNode interface {
	Evaluate(archetype Archetype, storage Storage) bool
}

type iCursor interface {
	Next() bool
	EntityID() EntityID
}

// Warning: internal Dependencies abound!
type Cursor struct {
	// The query to filter entities
	query QueryNode

	// The storage to iterate over
	storage Storage

	// Current iteration state
	currentArchetype *archetype
	archetypeIndex   int
	entityIndex      int
	remaining        int

	// Initialization state
	initialized       bool
	matchedArchetypes []*archetype
}

// AccessibleComponent extends a base Component with typed access into
// archetype storage. The zero value is not usable; construct one with
// FactoryNewComponent.
type AccessibleComponent[T any] struct {
	Component
}
