package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/melanx/mrnotify/pkg/common"
)

// Stores the known versions in a json object of the form {"slug": ["versionId", ...]}.
type JsonFileStore struct {
	FilePath string
	Logger   *slog.Logger
}

func NewJsonFileStore(filePath string, logger *slog.Logger) *JsonFileStore {
	return &JsonFileStore{
		FilePath: filePath,
		Logger:   logger,
	}
}

func (s *JsonFileStore) Type() common.CacheType {
	return common.CACHE_TYPE_JSON
}

func (s *JsonFileStore) Load() (common.KnownVersions, error) {
	// Check if the file exists and if so, read it
	content, err := os.ReadFile(s.FilePath)
	if errors.Is(err, os.ErrNotExist) {
		s.Logger.Debug(fmt.Sprintf("No cache file found at '%s'", s.FilePath))
		return common.KnownVersions{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error reading the cache file '%s': %w", s.FilePath, err)
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return common.KnownVersions{}, nil
	}
	knownVersions := common.KnownVersions{}
	if err := json.Unmarshal(content, &knownVersions); err != nil {
		return nil, fmt.Errorf("error converting the cache file '%s' from json: %w", s.FilePath, err)
	}
	// A null entry is treated like an empty list
	for project, versions := range knownVersions {
		if versions == nil {
			knownVersions[project] = []string{}
		}
	}
	s.Logger.Debug(fmt.Sprintf("Loaded %d known versions of %d projects", knownVersions.VersionCount(), len(knownVersions)))
	return knownVersions, nil
}

func (s *JsonFileStore) Save(knownVersions common.KnownVersions) error {
	content, err := json.MarshalIndent(knownVersions, "", "  ")
	if err != nil {
		return fmt.Errorf("error converting the cache to json: %w", err)
	}
	if err := common.WriteFileAtomic(s.FilePath, append(content, '\n'), 0o644); err != nil {
		return fmt.Errorf("error writing the cache file '%s': %w", s.FilePath, err)
	}
	s.Logger.Debug(fmt.Sprintf("Saved %d known versions of %d projects", knownVersions.VersionCount(), len(knownVersions)))
	return nil
}
