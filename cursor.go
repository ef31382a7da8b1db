package stockroom

import (
	"iter"
)

var _ iCursor = &Cursor{}

func newCursor(query QueryNode, storage Storage) *Cursor {
	return &Cursor{
		query:   query,
		storage: storage,
	}
}

// Next advances the cursor to the next matching entity. The first call
// locks the storage; exhausting the cursor (or calling Reset) unlocks it
// and flushes any operations queued during iteration.
func (c *Cursor) Next() bool {
	if c.entityIndex < c.remaining {
		c.entityIndex++
		return true
	}
	return c.advance()
}

func (c *Cursor) advance() bool {
	if !c.initialized {
		c.initialize()
	}
	for c.archetypeIndex < len(c.matchedArchetypes) {
		c.currentArchetype = c.matchedArchetypes[c.archetypeIndex]
		c.remaining = c.currentArchetype.Length()

		if c.entityIndex < c.remaining {
			c.entityIndex++
			return true
		}
		c.archetypeIndex++
		c.entityIndex = 0
	}
	c.Reset()
	return false
}

// EntityID returns the id of the entity the cursor currently points at.
func (c *Cursor) EntityID() EntityID {
	return c.currentArchetype.entities[c.entityIndex-1]
}

// Entities iterates all matching entity ids. Breaking out early resets the
// cursor, so the storage never stays locked.
func (c *Cursor) Entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for c.Next() {
			if !yield(c.EntityID()) {
				c.Reset()
				return
			}
		}
	}
}

func (c *Cursor) initialize() {
	if c.initialized {
		return
	}
	c.storage.Lock()
	c.matchedArchetypes = c.storage.(*storage).matchingArchetypes(c.query)
	if len(c.matchedArchetypes) > 0 {
		c.archetypeIndex = 0
		c.currentArchetype = c.matchedArchetypes[0]
		c.remaining = c.currentArchetype.Length()
	}
	c.initialized = true
}

func (c *Cursor) Reset() {
	wasInitialized := c.initialized
	c.archetypeIndex = 0
	c.entityIndex = 0
	c.remaining = 0
	c.matchedArchetypes = nil
	c.currentArchetype = nil
	c.initialized = false
	if wasInitialized {
		c.storage.Unlock()
	}
}

// RemainingInArchetype reports how many entities are left in the current
// archetype, including the current one.
func (c *Cursor) RemainingInArchetype() int {
	return c.remaining - c.entityIndex
}

// TotalMatched counts all entities matching the query, then resets the
// cursor so the storage is left unlocked.
func (c *Cursor) TotalMatched() int {
	if !c.initialized {
		c.initialize()
	}
	total := 0
	for _, arch := range c.matchedArchetypes {
		total += arch.Length()
	}
	c.Reset()
	return total
}
