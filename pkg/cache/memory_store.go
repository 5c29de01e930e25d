package cache

import (
	"github.com/melanx/mrnotify/pkg/common"
)

// Keeps the known versions in memory only. Used for dry runs and tests.
type MemoryStore struct {
	data      common.KnownVersions
	SaveCount int
}

func NewMemoryStore(initial common.KnownVersions) *MemoryStore {
	if initial == nil {
		initial = common.KnownVersions{}
	}
	return &MemoryStore{data: initial.Clone()}
}

func (s *MemoryStore) Type() common.CacheType {
	return common.CACHE_TYPE_MEMORY
}

func (s *MemoryStore) Load() (common.KnownVersions, error) {
	return s.data.Clone(), nil
}

func (s *MemoryStore) Save(knownVersions common.KnownVersions) error {
	s.data = knownVersions.Clone()
	s.SaveCount++
	return nil
}
