package stockroom

import (
	"sort"

	"github.com/rotisserie/eris"
)

// SystemFunc is a user-defined function executed once per World update. A
// system may mutate the world it receives; entities it is iterating may
// move, so mutations during a cursor walk should go through the Enqueue
// variants.
type SystemFunc func(w *World, dt float64) error

type systemEntry struct {
	name     string
	priority int
	enabled  bool
	fn       SystemFunc
}

// RegisterSystem adds a named system. Higher priorities run earlier;
// systems sharing a priority run in registration order.
func (w *World) RegisterSystem(name string, priority int, fn SystemFunc) error {
	if fn == nil {
		return eris.Errorf("system %q has a nil update function", name)
	}
	for _, s := range w.systems {
		if s.name == name {
			return SystemExistsError{Name: name}
		}
	}
	w.systems = append(w.systems, &systemEntry{
		name:     name,
		priority: priority,
		enabled:  true,
		fn:       fn,
	})
	Config.Logger().Debug().
		Str("system", name).
		Int("priority", priority).
		Msg("system_registered")
	return nil
}

// SetSystemEnabled toggles a system without unregistering it.
func (w *World) SetSystemEnabled(name string, enabled bool) error {
	for _, s := range w.systems {
		if s.name == name {
			s.enabled = enabled
			return nil
		}
	}
	return SystemNotFoundError{Name: name}
}

// RegisteredSystems returns the names of all registered systems in
// execution order.
func (w *World) RegisteredSystems() []string {
	w.sortSystems()
	names := make([]string, len(w.systems))
	for i, s := range w.systems {
		names[i] = s.name
	}
	return names
}

// Update runs every enabled system once, in descending priority order,
// synchronously on the calling goroutine. The first system error aborts
// the tick and is returned wrapped with the system's name.
func (w *World) Update(dt float64) error {
	w.sortSystems()
	for _, s := range w.systems {
		if !s.enabled {
			continue
		}
		sysLog := systemLogger(Config.Logger(), s.name)
		sysLog.Debug().
			Int("priority", s.priority).
			Uint64("tick", w.tick).
			Float64("dt", dt).
			Msg("system_run")
		if err := s.fn(w, dt); err != nil {
			return eris.Wrapf(err, "system %q failed", s.name)
		}
	}
	w.tick++
	return nil
}

func (w *World) sortSystems() {
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].priority > w.systems[j].priority
	})
}
