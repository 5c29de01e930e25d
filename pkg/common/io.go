package common

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

func FileExists(filePath string) (bool, error) {
	info, err := os.Stat(filePath)
	if err == nil {
		return !info.IsDir(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Resolves the given paths or glob patterns to a sorted list of existing files.
// A plain path that does not exist is returned as is so that reading it reports the error.
func ResolveProjectFiles(patterns []string) ([]string, error) {
	files := []string{}
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[{") {
			files = append(files, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid project file pattern '%s': %w", pattern, err)
		}
		files = append(files, matches...)
	}
	return lo.Uniq(files), nil
}

// Reads the project ids from all given files.
func ReadProjectFiles(filePaths []string, commentPrefix string) ([]string, error) {
	projectIds := []string{}
	for _, filePath := range filePaths {
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed opening projects file '%s': %w", filePath, err)
		}
		ids, err := ParseProjectList(file, commentPrefix)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed reading projects file '%s': %w", filePath, err)
		}
		projectIds = append(projectIds, ids...)
	}
	return projectIds, nil
}

// Reads a newline delimited list of project ids.
func ParseProjectList(reader io.Reader, commentPrefix string) ([]string, error) {
	lines := []string{}
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return FilterProjectIds(lines, commentPrefix), nil
}

// Removes empty entries, comments and duplicates. The order of the first occurrence is kept.
func FilterProjectIds(entries []string, commentPrefix string) []string {
	ids := lo.FilterMap(entries, func(entry string, _ int) (string, bool) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return "", false
		}
		if commentPrefix != "" && strings.HasPrefix(entry, commentPrefix) {
			return "", false
		}
		return entry, true
	})
	return lo.Uniq(ids)
}

// Writes the data to a temporary file next to the target and renames it over the target.
// The target is either fully replaced or left untouched.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating the directory for file '%s': %w", filePath, err)
	}
	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating a temporary file for '%s': %w", filePath, err)
	}
	tempPath := tempFile.Name()
	// Cleanup the temp file if anything goes wrong
	success := false
	defer func() {
		if !success {
			os.Remove(tempPath)
		}
	}()
	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("error writing the temporary file for '%s': %w", filePath, err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return err
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tempPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		return fmt.Errorf("error replacing the file '%s': %w", filePath, err)
	}
	success = true
	return nil
}
