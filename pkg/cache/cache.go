package cache

import (
	"fmt"
	"log/slog"

	"github.com/melanx/mrnotify/pkg/common"
)

type CacheSettings struct {
	// The logger to use for the store.
	Logger *slog.Logger
	// The type of the store.
	Type common.CacheType
	// The path to the file of the store.
	Path string
}

// Gets the cache store for the given settings.
func GetCacheStore(settings *CacheSettings) (common.ICacheStore, error) {
	path := settings.Path
	if path == "" {
		path = common.DefaultCacheFile
	}
	logger := settings.Logger.With(slog.String("cache", string(settings.Type)))
	switch settings.Type {
	case common.CACHE_TYPE_JSON, "":
		return NewJsonFileStore(path, logger), nil
	case common.CACHE_TYPE_SQLITE:
		return NewSqliteStore(path, logger), nil
	case common.CACHE_TYPE_MEMORY:
		return NewMemoryStore(nil), nil
	}
	return nil, fmt.Errorf("no cache store defined for '%s'", settings.Type)
}
