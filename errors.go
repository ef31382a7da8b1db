package stockroom

import (
	"fmt"
	"reflect"
)

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently locked"
}

type EntityNotFoundError struct {
	ID EntityID
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d is not registered", e.ID)
}

type EntityRelationError struct {
	child, parent Entity
}

func (e EntityRelationError) Error() string {
	return fmt.Sprintf("child (%v) already has parent %v", e.child, e.parent)
}

type ComponentExistsError struct {
	Component Component
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %v", e.Component.Type())
}

type ComponentNotFoundError struct {
	Component Component
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %v", e.Component.Type())
}

// CountMismatchError reports an archetype add whose value count does not
// match the archetype signature. It indicates archetype/signature
// desynchronization in calling code, not a recoverable condition.
type CountMismatchError struct {
	Got, Want int
}

func (e CountMismatchError) Error() string {
	return fmt.Sprintf("archetype add: got %d component values, signature wants %d", e.Got, e.Want)
}

// ValueTypeError reports a component value whose dynamic type does not match
// the component type at its signature position.
type ValueTypeError struct {
	Index     int
	Got, Want reflect.Type
}

func (e ValueTypeError) Error() string {
	return fmt.Sprintf("component value at position %d is %v, signature wants %v", e.Index, e.Got, e.Want)
}

type SystemExistsError struct {
	Name string
}

func (e SystemExistsError) Error() string {
	return fmt.Sprintf("system already registered: %s", e.Name)
}

type SystemNotFoundError struct {
	Name string
}

func (e SystemNotFoundError) Error() string {
	return fmt.Sprintf("system not registered: %s", e.Name)
}
