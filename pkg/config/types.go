package config

import (
	"github.com/melanx/mrnotify/pkg/common"
)

// This type represents the mrnotify config object.
type RootConfig struct {
	// The base url of the Modrinth api.
	ApiUrl string `json:"apiUrl" yaml:"apiUrl"`
	// The user agent that is sent to the Modrinth api.
	UserAgent string `json:"userAgent" yaml:"userAgent"`
	// Lines in project lists starting with this prefix are ignored.
	CommentPrefix string `json:"commentPrefix" yaml:"commentPrefix"`
	// Project slugs or ids to track.
	Projects []string `json:"projects" yaml:"projects"`
	// Files (or glob patterns) containing one project per line.
	ProjectFiles []string `json:"projectFiles" yaml:"projectFiles"`
	// Settings for the store of the known versions.
	Cache *CacheConfig `json:"cache" yaml:"cache"`
	// The targets that receive the notifications.
	Notifiers []*NotifierConfig `json:"notifiers" yaml:"notifiers"`
	// A list of rules that can apply to hosts.
	HostRules []*common.HostRule `json:"hostRules" yaml:"hostRules"`
	// Records versions as known even if announcing them failed.
	AcknowledgeFailed *bool `json:"acknowledgeFailed" yaml:"acknowledgeFailed"`
	// Sorts the game versions in notifications from newest to oldest.
	SortGameVersions *bool `json:"sortGameVersions" yaml:"sortGameVersions"`
	// If set, the metrics of the run are written to this file.
	MetricsFile string `json:"metricsFile" yaml:"metricsFile"`
}

type CacheConfig struct {
	Type common.CacheType `json:"type" yaml:"type"`
	Path string           `json:"path" yaml:"path"`
}

type NotifierConfig struct {
	// An optional id. Notifiers with the same id are merged together.
	Id       string              `json:"id" yaml:"id"`
	Type     common.NotifierType `json:"type" yaml:"type"`
	Url      string              `json:"url" yaml:"url"`
	Endpoint string              `json:"endpoint" yaml:"endpoint"`
	Token    string              `json:"token" yaml:"token"`
	Project  string              `json:"project" yaml:"project"`
	Labels   []string            `json:"labels" yaml:"labels"`
	Subject  string              `json:"subject" yaml:"subject"`
	Command  string              `json:"command" yaml:"command"`
	Args     []string            `json:"args" yaml:"args"`
}

// Gets a config with all the default values.
func DefaultConfig() *RootConfig {
	return &RootConfig{
		ApiUrl:        common.DefaultApiUrl,
		UserAgent:     common.DefaultUserAgent,
		CommentPrefix: common.DefaultCommentPrefix,
		Projects:      []string{},
		ProjectFiles:  []string{},
		Cache: &CacheConfig{
			Type: common.CACHE_TYPE_JSON,
			Path: common.DefaultCacheFile,
		},
		Notifiers:         []*NotifierConfig{},
		HostRules:         []*common.HostRule{},
		AcknowledgeFailed: common.FalsePtr,
		SortGameVersions:  common.FalsePtr,
	}
}
