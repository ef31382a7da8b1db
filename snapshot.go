package stockroom

import (
	"sort"

	"github.com/rotisserie/eris"
)

// SnapshotEntry is one (entity, component type, encoded value) triple. The
// engine commits only to this enumeration; on-disk formats, grouping and
// versioning belong to the persistence collaborator.
type SnapshotEntry struct {
	Entity EntityID `json:"entity"`
	Type   TypeID   `json:"type"`
	Data   []byte   `json:"data"`
}

// Snapshot enumerates every attached component as an encoded triple. All
// data is copied out; no entry aliases live archetype storage. Entries are
// ordered by entity id, then type id.
func (w *World) Snapshot() ([]SnapshotEntry, error) {
	sto := w.storage.(*storage)
	var entries []SnapshotEntry
	for _, arch := range sto.archetypes.asSlice {
		for row, id := range arch.entities {
			for _, c := range arch.comps {
				v, ok := arch.valueAt(c.TypeID(), row)
				if !ok {
					panic("snapshot: signature component missing its column")
				}
				bz, err := c.encode(v)
				if err != nil {
					return nil, eris.Wrapf(err, "snapshot entity %d", id)
				}
				entries = append(entries, SnapshotEntry{
					Entity: id,
					Type:   c.TypeID(),
					Data:   bz,
				})
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Entity != entries[j].Entity {
			return entries[i].Entity < entries[j].Entity
		}
		return entries[i].Type < entries[j].Type
	})
	return entries, nil
}

// Restore replays snapshot entries into the world through CreateEntity and
// AddComponent. Every component type in the entries must already be
// registered (construct the component values once with FactoryNewComponent
// and touch the storage with them, or re-register via Registry).
//
// Entities receive fresh ids; the returned map translates snapshot ids to
// their replacements.
func (w *World) Restore(entries []SnapshotEntry) (map[EntityID]EntityID, error) {
	mapping := make(map[EntityID]EntityID)
	for _, entry := range entries {
		c, ok := w.registry.Lookup(entry.Type)
		if !ok {
			return nil, eris.Errorf("restore: component type %d is not registered", entry.Type)
		}
		value, err := c.decode(entry.Data)
		if err != nil {
			return nil, eris.Wrapf(err, "restore entity %d", entry.Entity)
		}

		id, seen := mapping[entry.Entity]
		if !seen {
			id, err = w.CreateEntity()
			if err != nil {
				return nil, eris.Wrapf(err, "restore entity %d", entry.Entity)
			}
			mapping[entry.Entity] = id
		}
		if err := w.AddComponent(id, c, value); err != nil {
			return nil, eris.Wrapf(err, "restore entity %d", entry.Entity)
		}
	}
	return mapping, nil
}
