package stockroom

// column is one densely packed component array inside an archetype. Each
// concrete column is typed; the interface carries the operations the
// archetype needs without knowing the element type.
type column interface {
	len() int
	// push appends a boxed value. A nil value appends the zero value.
	// Reports false when the value's dynamic type does not match.
	push(v any) bool
	// swapRemove overwrites row i with the last row and truncates.
	swapRemove(i int)
	value(i int) any
	// set overwrites row i. Reports false on a type mismatch.
	set(i int, v any) bool
}

type typedColumn[T any] struct {
	data []T
}

func (c *typedColumn[T]) len() int {
	return len(c.data)
}

func (c *typedColumn[T]) push(v any) bool {
	if v == nil {
		var zero T
		c.data = append(c.data, zero)
		return true
	}
	val, ok := v.(T)
	if !ok {
		return false
	}
	c.data = append(c.data, val)
	return true
}

func (c *typedColumn[T]) swapRemove(i int) {
	last := len(c.data) - 1
	c.data[i] = c.data[last]
	var zero T
	c.data[last] = zero
	c.data = c.data[:last]
}

func (c *typedColumn[T]) value(i int) any {
	return c.data[i]
}

func (c *typedColumn[T]) set(i int, v any) bool {
	val, ok := v.(T)
	if !ok {
		return false
	}
	c.data[i] = val
	return true
}
