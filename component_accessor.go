package stockroom

// GetFromCursor retrieves a component value for the entity at the cursor
// position. The pointer is valid only until the next structural mutation.
func (c AccessibleComponent[T]) GetFromCursor(cursor *Cursor) *T {
	col, ok := cursor.currentArchetype.columnFor(c.TypeID())
	if !ok {
		return nil
	}
	return &col.(*typedColumn[T]).data[cursor.entityIndex-1]
}

// GetFromCursorSafe safely retrieves a component value, checking if the component exists
// Returns a boolean indicating success and the component pointer if found
func (c AccessibleComponent[T]) GetFromCursorSafe(cursor *Cursor) (bool, *T) {
	if !c.CheckCursor(cursor) {
		return false, nil
	}
	return true, c.GetFromCursor(cursor)
}

// CheckCursor determines if the component exists in the archetype at the cursor position
func (c AccessibleComponent[T]) CheckCursor(cursor *Cursor) bool {
	return cursor.currentArchetype.contains(c.TypeID())
}

// GetFromEntity retrieves a component value for the specified entity, or
// nil when the entity is gone or lacks the component.
func (c AccessibleComponent[T]) GetFromEntity(target Entity) *T {
	en, ok := target.(*entity)
	if !ok {
		return nil
	}
	arch, row, found := en.sto.locate(en.id)
	if !found {
		return nil
	}
	col, has := arch.columnFor(c.TypeID())
	if !has {
		return nil
	}
	return &col.(*typedColumn[T]).data[row]
}
