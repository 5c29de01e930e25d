package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adhocore/jsonc"
	"github.com/goccy/go-yaml"
	"github.com/melanx/mrnotify/pkg/common"
)

// The extensions that are probed if a config path has none, in this order.
var ConfigFileExtensions = []string{".json", ".jsonc", ".yaml", ".yml"}

// Loads the given configuration and merges it over the default config.
// An empty path loads only the defaults.
func Load(configPath string) (*RootConfig, error) {
	mergedConfig := DefaultConfig()
	if configPath == "" {
		return mergedConfig, nil
	}
	configPath = strings.TrimPrefix(configPath, "local:")
	fileConfig, err := loadConfigFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed reading config '%s': %w", configPath, err)
	}
	mergedConfig.MergeWith(fileConfig)
	return mergedConfig, nil
}

// Searches for a config file by probing the known extensions on the given path.
// Returns an empty string if nothing was found.
func SearchConfigFileFromPath(searchPath string) (string, error) {
	for _, ext := range ConfigFileExtensions {
		probePath := searchPath + ext
		if exists, err := common.FileExists(probePath); err != nil {
			return "", err
		} else if exists {
			return probePath, nil
		}
	}
	return "", nil
}

// Parses the content of a config file. The format is chosen by the extension.
func ParseConfig(content []byte, ext string) (*RootConfig, error) {
	config := &RootConfig{}
	switch strings.ToLower(ext) {
	case ".json", ".jsonc":
		// Allow comments and trailing commas in json files
		j := jsonc.New()
		stripped := j.StripS(string(content))
		if err := json.Unmarshal([]byte(stripped), config); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, config); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format '%s'", ext)
	}
	return config, nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func loadConfigFromFile(location string) (*RootConfig, error) {
	// Build a list of paths that should be searched
	searchPaths := []string{location}
	if !filepath.IsAbs(location) {
		// Current executable directory
		if executablePath, err := os.Executable(); err == nil {
			tempSearchPath := filepath.Clean(filepath.Join(filepath.Dir(executablePath), location))
			searchPaths = append(searchPaths, tempSearchPath)
		}
	}

	// Search thru the defined search paths
	hasExt := filepath.Ext(location) != ""
	finalValidConfigPath := ""
	for _, searchPath := range searchPaths {
		if hasExt {
			// We have an extension, directly search in the given path
			if exists, err := common.FileExists(searchPath); err != nil {
				return nil, err
			} else if exists {
				finalValidConfigPath = searchPath
				break
			}
		} else {
			// No extension, probe with the valid extensions
			if foundPath, err := SearchConfigFileFromPath(searchPath); err != nil {
				return nil, err
			} else if foundPath != "" {
				finalValidConfigPath = foundPath
				break
			}
		}
	}
	if finalValidConfigPath == "" {
		return nil, fmt.Errorf("file not found for '%s': %w", location, os.ErrNotExist)
	}

	content, err := os.ReadFile(finalValidConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed reading file '%s': %w", finalValidConfigPath, err)
	}
	config, err := ParseConfig(content, filepath.Ext(finalValidConfigPath))
	if err != nil {
		return nil, fmt.Errorf("failed parsing file '%s': %w", finalValidConfigPath, err)
	}
	return config, nil
}
