/*
Package stockroom provides an archetype-based Entity-Component-System (ECS) engine for games and simulations.

Stockroom groups entities by their exact set of component types into contiguous
storage blocks called archetypes. Entities sharing the same component types live
in the same archetype, with one densely packed array per component type, so
"all entities having components {A,B,...}" queries resolve to a handful of
archetype scans instead of a per-entity filter.

Core Concepts:

  - Entity: A unique identifier that represents a simulation object.
  - Component: A plain data record attached to an entity.
  - Archetype: Storage for all entities sharing one exact component-type set.
  - Query: A way to find entities with specific component combinations.
  - System: A prioritized update function run once per World tick.

Basic Usage:

	// Create a world
	world := stockroom.Factory.NewWorld()

	// Define components
	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()

	// Create an entity and attach components
	id, _ := world.CreateEntity()
	world.AddComponent(id, position, Position{X: 10, Y: 20})
	world.AddComponent(id, velocity, Velocity{X: 1, Y: 2})

	// Query entities and process them
	cursor := world.Query(position, velocity)
	for cursor.Next() {
		pos := position.GetFromCursor(cursor)
		vel := velocity.GetFromCursor(cursor)
		pos.X += vel.X
		pos.Y += vel.Y
	}

	// Or register a system and tick the world
	world.RegisterSystem("movement", 100, func(w *stockroom.World, dt float64) error {
		cursor := w.Query(position, velocity)
		for cursor.Next() {
			pos := position.GetFromCursor(cursor)
			vel := velocity.GetFromCursor(cursor)
			pos.X += vel.X * dt
			pos.Y += vel.Y * dt
		}
		return nil
	})
	world.Update(1.0 / 60.0)

The storage layer (Registry, Storage, Cursor) also works standalone when the
World facade is not needed.
*/
package stockroom
