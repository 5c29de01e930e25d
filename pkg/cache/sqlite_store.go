package cache

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/melanx/mrnotify/pkg/common"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS known_versions (
	project    TEXT    NOT NULL,
	position   INTEGER NOT NULL,
	version_id TEXT    NOT NULL,
	PRIMARY KEY (project, position)
)`

// Stores the known versions in a sqlite database.
type SqliteStore struct {
	FilePath string
	Logger   *slog.Logger
}

func NewSqliteStore(filePath string, logger *slog.Logger) *SqliteStore {
	return &SqliteStore{
		FilePath: filePath,
		Logger:   logger,
	}
}

func (s *SqliteStore) Type() common.CacheType {
	return common.CACHE_TYPE_SQLITE
}

func (s *SqliteStore) Load() (common.KnownVersions, error) {
	// A missing database is the same as an empty cache
	if exists, err := common.FileExists(s.FilePath); err != nil {
		return nil, err
	} else if !exists {
		s.Logger.Debug(fmt.Sprintf("No cache database found at '%s'", s.FilePath))
		return common.KnownVersions{}, nil
	}

	ctx := context.Background()
	db, err := s.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT project, version_id FROM known_versions ORDER BY project, position`)
	if err != nil {
		return nil, fmt.Errorf("error reading the cache database '%s': %w", s.FilePath, err)
	}
	defer rows.Close()
	knownVersions := common.KnownVersions{}
	for rows.Next() {
		var project, versionId string
		if err := rows.Scan(&project, &versionId); err != nil {
			return nil, fmt.Errorf("error reading the cache database '%s': %w", s.FilePath, err)
		}
		knownVersions[project] = append(knownVersions[project], versionId)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading the cache database '%s': %w", s.FilePath, err)
	}
	// Projects without any versions are stored with position -1
	for project, versions := range knownVersions {
		knownVersions[project] = removeEmptyMarker(versions)
	}
	s.Logger.Debug(fmt.Sprintf("Loaded %d known versions of %d projects", knownVersions.VersionCount(), len(knownVersions)))
	return knownVersions, nil
}

func (s *SqliteStore) Save(knownVersions common.KnownVersions) error {
	if err := os.MkdirAll(filepath.Dir(s.FilePath), os.ModePerm); err != nil {
		return fmt.Errorf("error creating the directory for the cache database '%s': %w", s.FilePath, err)
	}
	ctx := context.Background()
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	// Replace everything within one transaction
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting a transaction on '%s': %w", s.FilePath, err)
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM known_versions`); err != nil {
		return fmt.Errorf("error clearing the cache database '%s': %w", s.FilePath, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO known_versions (project, position, version_id) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, project := range knownVersions.Projects() {
		versions := knownVersions[project]
		if len(versions) == 0 {
			if _, err := stmt.ExecContext(ctx, project, -1, ""); err != nil {
				return fmt.Errorf("error writing project '%s' to the cache database: %w", project, err)
			}
			continue
		}
		for position, versionId := range versions {
			if _, err := stmt.ExecContext(ctx, project, position, versionId); err != nil {
				return fmt.Errorf("error writing project '%s' to the cache database: %w", project, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing the cache database '%s': %w", s.FilePath, err)
	}
	s.Logger.Debug(fmt.Sprintf("Saved %d known versions of %d projects", knownVersions.VersionCount(), len(knownVersions)))
	return nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func (s *SqliteStore) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.FilePath)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 3000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure cache database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return db, nil
}

func removeEmptyMarker(versions []string) []string {
	result := []string{}
	for _, versionId := range versions {
		if versionId != "" {
			result = append(result, versionId)
		}
	}
	return result
}
