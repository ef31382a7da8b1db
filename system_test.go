package stockroom_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/stockroom"
)

func TestSystemPriorityOrder(t *testing.T) {
	world := stockroom.Factory.NewWorld()

	var ran []string
	record := func(name string) stockroom.SystemFunc {
		return func(w *stockroom.World, dt float64) error {
			ran = append(ran, name)
			return nil
		}
	}

	require.NoError(t, world.RegisterSystem("render", -10, record("render")))
	require.NoError(t, world.RegisterSystem("physics", 100, record("physics")))
	require.NoError(t, world.RegisterSystem("input", 100, record("input")))
	require.NoError(t, world.RegisterSystem("ai", 50, record("ai")))

	require.NoError(t, world.Update(1.0/60))

	// Descending priority, registration order breaking ties.
	assert.Equal(t, []string{"physics", "input", "ai", "render"}, ran)
	assert.Equal(t, []string{"physics", "input", "ai", "render"}, world.RegisteredSystems())
	assert.Equal(t, uint64(1), world.Tick())
}

func TestSystemRegistrationErrors(t *testing.T) {
	world := stockroom.Factory.NewWorld()
	noop := func(w *stockroom.World, dt float64) error { return nil }

	require.NoError(t, world.RegisterSystem("movement", 0, noop))

	err := world.RegisterSystem("movement", 5, noop)
	var exists stockroom.SystemExistsError
	require.ErrorAs(t, err, &exists)
	assert.Equal(t, "movement", exists.Name)

	assert.Error(t, world.RegisterSystem("broken", 0, nil))

	err = world.SetSystemEnabled("missing", false)
	var notFound stockroom.SystemNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestSystemDisable(t *testing.T) {
	world := stockroom.Factory.NewWorld()

	var ran []string
	record := func(name string) stockroom.SystemFunc {
		return func(w *stockroom.World, dt float64) error {
			ran = append(ran, name)
			return nil
		}
	}
	require.NoError(t, world.RegisterSystem("a", 2, record("a")))
	require.NoError(t, world.RegisterSystem("b", 1, record("b")))

	require.NoError(t, world.SetSystemEnabled("a", false))
	require.NoError(t, world.Update(0))
	assert.Equal(t, []string{"b"}, ran)

	require.NoError(t, world.SetSystemEnabled("a", true))
	ran = nil
	require.NoError(t, world.Update(0))
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestSystemErrorAbortsTick(t *testing.T) {
	world := stockroom.Factory.NewWorld()

	boom := errors.New("boom")
	var afterRan bool
	require.NoError(t, world.RegisterSystem("failing", 10, func(w *stockroom.World, dt float64) error {
		return boom
	}))
	require.NoError(t, world.RegisterSystem("after", 0, func(w *stockroom.World, dt float64) error {
		afterRan = true
		return nil
	}))

	err := world.Update(0)
	require.ErrorIs(t, err, boom)
	assert.False(t, afterRan)

	// An aborted update does not count as a completed tick.
	assert.Equal(t, uint64(0), world.Tick())
}

func TestSystemMutatesDuringIteration(t *testing.T) {
	world := stockroom.Factory.NewWorld()
	position := stockroom.FactoryNewComponent[Position]()
	velocity := stockroom.FactoryNewComponent[Velocity]()

	for i := 0; i < 3; i++ {
		id, err := world.CreateEntity()
		require.NoError(t, err)
		require.NoError(t, world.AddComponent(id, position, Position{X: float64(i)}))
		require.NoError(t, world.AddComponent(id, velocity, Velocity{X: 1}))
	}

	// Destroys issued mid-iteration are deferred until the cursor releases
	// its lock, so the walk sees a stable view.
	require.NoError(t, world.RegisterSystem("reaper", 0, func(w *stockroom.World, dt float64) error {
		cursor := w.Query(position, velocity)
		seen := 0
		for id := range cursor.Entities() {
			seen++
			en, err := w.Storage().Entity(id)
			if err != nil {
				return err
			}
			if err := w.Storage().EnqueueDestroyEntities(en); err != nil {
				return err
			}
		}
		assert.Equal(t, 3, seen)
		return nil
	}))

	require.NoError(t, world.Update(0))
	assert.Zero(t, world.Query(position, velocity).TotalMatched())
}
