package stockroom

import (
	"hash/fnv"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
)

// Component represents a data attribute/state that can be attached to entities.
// Components can be used to create queries for entities.
type Component interface {
	// TypeID returns the stable hash-derived identifier for this component type.
	TypeID() TypeID
	// Type returns the reflected component value type.
	Type() reflect.Type

	newColumn() column
	encode(v any) ([]byte, error)
	decode(data []byte) (any, error)
}

type componentType[T any] struct {
	id  TypeID
	typ reflect.Type
}

func newComponentType[T any]() componentType[T] {
	var zero T
	typ := reflect.TypeOf(zero)
	if typ == nil {
		typ = reflect.TypeOf((*T)(nil)).Elem()
	}
	return componentType[T]{
		id:  typeIDOf(typ),
		typ: typ,
	}
}

func (c componentType[T]) TypeID() TypeID {
	return c.id
}

func (c componentType[T]) Type() reflect.Type {
	return c.typ
}

func (c componentType[T]) newColumn() column {
	return &typedColumn[T]{}
}

func (c componentType[T]) encode(v any) ([]byte, error) {
	val, ok := v.(T)
	if !ok {
		return nil, eris.Errorf("cannot encode %T as %v", v, c.typ)
	}
	bz, err := json.Marshal(val)
	if err != nil {
		return nil, eris.Wrap(err, "component encode")
	}
	return bz, nil
}

func (c componentType[T]) decode(data []byte) (any, error) {
	var val T
	if err := json.Unmarshal(data, &val); err != nil {
		return nil, eris.Wrap(err, "component decode")
	}
	return val, nil
}

func typeOfValue(v any) reflect.Type {
	return reflect.TypeOf(v)
}

// typeIDOf hashes a type's fully qualified name into a TypeID. The hash is
// deterministic for a given name; collisions between distinct names are not
// detected.
func typeIDOf(t reflect.Type) TypeID {
	name := t.String()
	if pkg := t.PkgPath(); pkg != "" {
		name = pkg + "." + t.Name()
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return TypeID(h.Sum32())
}
