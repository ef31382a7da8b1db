package stockroom

import (
	"fmt"
	"iter"

	"github.com/TheBitDrifter/mask"
)

type archetypeID uint32

// archetype owns storage for exactly one component-type combination: an
// ordered entity list plus one column per signature member. All columns and
// the entity list always have equal length, and column row r belongs to
// entities[r].
type archetype struct {
	id       archetypeID
	comps    []Component // sorted by TypeID, deduplicated
	sig      signature   // comps[i].TypeID()
	bits     mask.Mask
	entities []EntityID
	columns  []column
}

func newArchetype(registry *Registry, id archetypeID, components ...Component) *archetype {
	comps, sig := normalizeComponents(components)

	var bits mask.Mask
	columns := make([]column, len(comps))
	for i, c := range comps {
		bits.Mark(registry.RowIndexFor(c))
		columns[i] = c.newColumn()
	}
	return &archetype{
		id:      id,
		comps:   comps,
		sig:     sig,
		bits:    bits,
		columns: columns,
	}
}

func (a *archetype) ID() uint32 {
	return uint32(a.id)
}

// Signature returns the archetype's sorted component TypeIDs.
func (a *archetype) Signature() []TypeID {
	sig := make([]TypeID, len(a.sig))
	copy(sig, a.sig)
	return sig
}

func (a *archetype) Mask() mask.Mask {
	return a.bits
}

func (a *archetype) Length() int {
	return len(a.entities)
}

func (a *archetype) Entities() []EntityID {
	return a.entities
}

func (a *archetype) Components() []Component {
	comps := make([]Component, len(a.comps))
	copy(comps, a.comps)
	return comps
}

func (a *archetype) ComponentTypes() iter.Seq[Component] {
	return func(yield func(Component) bool) {
		for _, c := range a.comps {
			if !yield(c) {
				return
			}
		}
	}
}

func (a *archetype) contains(id TypeID) bool {
	return a.sig.contains(id)
}

// matches reports whether every bit of required is present in the
// archetype's signature mask.
func (a *archetype) matches(required mask.Mask) bool {
	return a.bits.ContainsAll(required)
}

func (a *archetype) columnFor(id TypeID) (column, bool) {
	i, ok := a.sig.indexOf(id)
	if !ok {
		return nil, false
	}
	return a.columns[i], true
}

// pushEntity appends an entity with one value per signature member, in
// signature order. A nil value appends the component's zero value. The
// append is all-or-nothing: every precondition is checked before any column
// is touched.
func (a *archetype) pushEntity(id EntityID, values []any) (int, error) {
	if len(values) != len(a.comps) {
		return 0, CountMismatchError{Got: len(values), Want: len(a.comps)}
	}
	for i, v := range values {
		if v == nil {
			continue
		}
		if got := typeOfValue(v); got != a.comps[i].Type() {
			return 0, ValueTypeError{Index: i, Got: got, Want: a.comps[i].Type()}
		}
	}

	row := len(a.entities)
	a.entities = append(a.entities, id)
	for i, col := range a.columns {
		if !col.push(values[i]) {
			panic(fmt.Sprintf("archetype %d: column %d rejected value after type check", a.id, i))
		}
	}
	a.checkAligned()
	return row, nil
}

// zeroRow appends an entity with zero-valued components.
func (a *archetype) zeroRow(id EntityID) int {
	row := len(a.entities)
	a.entities = append(a.entities, id)
	for _, col := range a.columns {
		col.push(nil)
	}
	a.checkAligned()
	return row
}

// swapRemove removes row from the entity list and every column in one
// operation. It returns the entity that now occupies row, or 0 when the
// removed row was the last one.
func (a *archetype) swapRemove(row int) EntityID {
	a.checkAligned()
	last := len(a.entities) - 1
	moved := a.entities[last]
	a.entities[row] = moved
	a.entities = a.entities[:last]
	for _, col := range a.columns {
		col.swapRemove(row)
	}
	if row == last {
		return 0
	}
	return moved
}

// rowOf finds an entity's row by scanning the entity list.
func (a *archetype) rowOf(id EntityID) (int, bool) {
	for i, en := range a.entities {
		if en == id {
			return i, true
		}
	}
	return 0, false
}

func (a *archetype) valueAt(id TypeID, row int) (any, bool) {
	col, ok := a.columnFor(id)
	if !ok {
		return nil, false
	}
	return col.value(row), true
}

func (a *archetype) setValueAt(c Component, row int, v any) error {
	i, ok := a.sig.indexOf(c.TypeID())
	if !ok {
		return ComponentNotFoundError{Component: c}
	}
	if !a.columns[i].set(row, v) {
		return ValueTypeError{Index: i, Got: typeOfValue(v), Want: a.comps[i].Type()}
	}
	return nil
}

// checkAligned panics when any column length disagrees with the entity
// list. A mismatch means the parallel arrays are corrupted.
func (a *archetype) checkAligned() {
	n := len(a.entities)
	for i, col := range a.columns {
		if col.len() != n {
			panic(fmt.Sprintf("archetype %d: column %d has %d rows, entity list has %d", a.id, i, col.len(), n))
		}
	}
}
