package config

import (
	"slices"

	"github.com/samber/lo"
)

func (configA *RootConfig) MergeWithAsCopy(configB *RootConfig) *RootConfig {
	merged := &RootConfig{}
	merged.MergeWith(configA)
	merged.MergeWith(configB)
	return merged
}

func (configA *RootConfig) MergeWith(configB *RootConfig) {
	if configB == nil {
		return
	}
	if configB.ApiUrl != "" {
		configA.ApiUrl = configB.ApiUrl
	}
	if configB.UserAgent != "" {
		configA.UserAgent = configB.UserAgent
	}
	if configB.CommentPrefix != "" {
		configA.CommentPrefix = configB.CommentPrefix
	}
	// Projects
	configA.Projects = lo.Union(configA.Projects, configB.Projects)
	// ProjectFiles
	configA.ProjectFiles = lo.Union(configA.ProjectFiles, configB.ProjectFiles)
	// Cache
	if configA.Cache == nil {
		configA.Cache = &CacheConfig{}
	}
	configA.Cache.MergeWith(configB.Cache)
	// Notifiers
	if configA.Notifiers == nil {
		configA.Notifiers = []*NotifierConfig{}
	}
	for _, notifierB := range configB.Notifiers {
		if notifierB == nil {
			continue
		}
		// Search for an existing notifier with the same id
		notifierAIndex := -1
		if notifierB.Id != "" {
			notifierAIndex = slices.IndexFunc(configA.Notifiers, func(n *NotifierConfig) bool { return n.Id == notifierB.Id })
		}
		if notifierAIndex >= 0 {
			// Found one so merge it
			configA.Notifiers[notifierAIndex].MergeWith(notifierB)
		} else {
			// Not found, so add it
			newNotifier := &NotifierConfig{}
			newNotifier.MergeWith(notifierB)
			configA.Notifiers = append(configA.Notifiers, newNotifier)
		}
	}
	// Host Rules
	configA.HostRules = append(configA.HostRules, configB.HostRules...)
	// Flags
	if configB.AcknowledgeFailed != nil {
		configA.AcknowledgeFailed = configB.AcknowledgeFailed
	}
	if configB.SortGameVersions != nil {
		configA.SortGameVersions = configB.SortGameVersions
	}
	if configB.MetricsFile != "" {
		configA.MetricsFile = configB.MetricsFile
	}
}

func (cacheConfigA *CacheConfig) MergeWith(cacheConfigB *CacheConfig) {
	if cacheConfigB == nil {
		return
	}
	if cacheConfigB.Type != "" {
		cacheConfigA.Type = cacheConfigB.Type
	}
	if cacheConfigB.Path != "" {
		cacheConfigA.Path = cacheConfigB.Path
	}
}

func (notifierConfigA *NotifierConfig) MergeWith(notifierConfigB *NotifierConfig) {
	if notifierConfigB == nil {
		return
	}
	if notifierConfigB.Id != "" {
		notifierConfigA.Id = notifierConfigB.Id
	}
	if notifierConfigB.Type != "" {
		notifierConfigA.Type = notifierConfigB.Type
	}
	if notifierConfigB.Url != "" {
		notifierConfigA.Url = notifierConfigB.Url
	}
	if notifierConfigB.Endpoint != "" {
		notifierConfigA.Endpoint = notifierConfigB.Endpoint
	}
	if notifierConfigB.Token != "" {
		notifierConfigA.Token = notifierConfigB.Token
	}
	if notifierConfigB.Project != "" {
		notifierConfigA.Project = notifierConfigB.Project
	}
	notifierConfigA.Labels = lo.Union(notifierConfigA.Labels, notifierConfigB.Labels)
	if notifierConfigB.Subject != "" {
		notifierConfigA.Subject = notifierConfigB.Subject
	}
	if notifierConfigB.Command != "" {
		notifierConfigA.Command = notifierConfigB.Command
	}
	if len(notifierConfigB.Args) > 0 {
		notifierConfigA.Args = slices.Clone(notifierConfigB.Args)
	}
}
