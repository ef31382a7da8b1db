package stockroom

import "github.com/rs/zerolog"

// Config holds global configuration for the storage system
var Config config = config{
	queryCacheCapacity: 256,
	logger:             zerolog.Nop(),
}

type config struct {
	queryCacheCapacity int
	logger             zerolog.Logger
	storageEvents      StorageEvents
}

// StorageEvents carries optional callbacks fired on entity lifecycle
// changes. Callbacks must not mutate the storage that fired them.
type StorageEvents struct {
	OnEntityCreated   func(EntityID)
	OnEntityDestroyed func(EntityID)
}

// SetStorageEvents configures the storage event callbacks
func (c *config) SetStorageEvents(e StorageEvents) {
	c.storageEvents = e
}

// SetLogger replaces the package logger. The default is a no-op logger.
func (c *config) SetLogger(l zerolog.Logger) {
	c.logger = l
}

func (c *config) Logger() *zerolog.Logger {
	return &c.logger
}

// SetQueryCacheCapacity sets the result-cache capacity used by storages
// created afterwards.
func (c *config) SetQueryCacheCapacity(n int) {
	if n > 0 {
		c.queryCacheCapacity = n
	}
}
