package stockroom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/stockroom"
)

type Health struct {
	Current, Max int
}

func TestWorldEntityLifecycle(t *testing.T) {
	world := stockroom.Factory.NewWorld()

	e1, err := world.CreateEntity()
	require.NoError(t, err)
	e2, err := world.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, stockroom.EntityID(1), e1)
	assert.Equal(t, stockroom.EntityID(2), e2)

	require.NoError(t, world.DestroyEntity(e1))

	// Double destroy is an explicit error, not a silent no-op
	err = world.DestroyEntity(e1)
	var notFound stockroom.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, e1, notFound.ID)

	// Destroyed ids are never reused
	e3, err := world.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, stockroom.EntityID(3), e3)
}

func TestWorldComponentCRUD(t *testing.T) {
	world := stockroom.Factory.NewWorld()
	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()

	id, err := world.CreateEntity()
	require.NoError(t, err)

	require.NoError(t, world.AddComponent(id, position, Position{X: 1, Y: 2}))

	got, ok := world.GetComponent(id, position)
	require.True(t, ok)
	assert.Equal(t, Position{X: 1, Y: 2}, got)

	// Duplicate add is rejected
	err = world.AddComponent(id, position, Position{X: 9})
	var exists stockroom.ComponentExistsError
	assert.ErrorAs(t, err, &exists)

	// Update overwrites in place
	require.NoError(t, world.UpdateComponent(id, position, Position{X: 7, Y: 8}))
	got, ok = world.GetComponent(id, position)
	require.True(t, ok)
	assert.Equal(t, Position{X: 7, Y: 8}, got)

	// A wrong value type surfaces as a contract error
	err = world.UpdateComponent(id, position, Velocity{})
	var badType stockroom.ValueTypeError
	assert.ErrorAs(t, err, &badType)

	// Remove reports presence
	removed, err := world.RemoveComponent(id, position)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = world.RemoveComponent(id, position)
	require.NoError(t, err)
	assert.False(t, removed)

	// Misses stay quiet
	_, ok = world.GetComponent(id, position)
	assert.False(t, ok)
	_, ok = world.GetComponent(9999, velocity)
	assert.False(t, ok)
}

func TestWorldAddComponentToMissingEntity(t *testing.T) {
	world := stockroom.Factory.NewWorld()
	position := stockroom.FactoryNewComponent[Position]()

	err := world.AddComponent(42, position, Position{})
	var notFound stockroom.EntityNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestWorldQueryMembership(t *testing.T) {
	world := stockroom.Factory.NewWorld()
	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()
	health := stockroom.FactoryNewComponent[Health]()

	e1, err := world.CreateEntity()
	require.NoError(t, err)
	require.NoError(t, world.AddComponent(e1, position, Position{}))
	require.NoError(t, world.AddComponent(e1, velocity, Velocity{X: 1, Y: 1}))

	assert.Equal(t, []stockroom.EntityID{e1}, queryIDs(world, position, velocity))
	assert.Equal(t, []stockroom.EntityID{e1}, queryIDs(world, position))
	assert.Empty(t, queryIDs(world, health))

	// Entities appear in a query iff the required set is a subset of
	// their signature.
	e2, err := world.CreateEntity()
	require.NoError(t, err)
	require.NoError(t, world.AddComponent(e2, position, Position{}))
	assert.ElementsMatch(t, []stockroom.EntityID{e1, e2}, queryIDs(world, position))
	assert.Equal(t, []stockroom.EntityID{e1}, queryIDs(world, position, velocity))
}

func queryIDs(world *stockroom.World, comps ...stockroom.Component) []stockroom.EntityID {
	var ids []stockroom.EntityID
	cursor := world.Query(comps...)
	for id := range cursor.Entities() {
		ids = append(ids, id)
	}
	return ids
}
