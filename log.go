package stockroom

import (
	"github.com/rs/zerolog"
)

func logArchetypeCreated(logger *zerolog.Logger, a *archetype) {
	ev := logger.Debug()
	arr := zerolog.Arr()
	for _, c := range a.comps {
		dict := zerolog.Dict()
		dict = dict.Uint32("type_id", uint32(c.TypeID()))
		dict = dict.Str("type_name", c.Type().String())
		arr = arr.Dict(dict)
	}
	ev.Uint32("archetype_id", a.ID()).
		Array("signature", arr).
		Msg("archetype_created")
}

func logEntityBatch(logger *zerolog.Logger, event string, count int, a *archetype) {
	logger.Debug().
		Int("count", count).
		Uint32("archetype_id", a.ID()).
		Msg(event)
}

// systemLogger creates a sub logger with the entry {"system": name}.
func systemLogger(logger *zerolog.Logger, name string) *zerolog.Logger {
	sub := logger.With().Str("system", name).Logger()
	return &sub
}
