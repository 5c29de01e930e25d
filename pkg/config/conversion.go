package config

import (
	"log/slog"

	"github.com/melanx/mrnotify/pkg/cache"
	"github.com/melanx/mrnotify/pkg/detector"
	"github.com/melanx/mrnotify/pkg/modrinth"
	"github.com/melanx/mrnotify/pkg/notifiers"
	"github.com/samber/lo"
)

func (cfg *RootConfig) ToClientSettings(logger *slog.Logger) *modrinth.ClientSettings {
	return &modrinth.ClientSettings{
		Logger:    logger,
		ApiUrl:    cfg.ApiUrl,
		UserAgent: cfg.UserAgent,
		HostRules: cfg.HostRules,
	}
}

func (cfg *RootConfig) ToCacheSettings(logger *slog.Logger) *cache.CacheSettings {
	settings := &cache.CacheSettings{Logger: logger}
	if cfg.Cache != nil {
		settings.Type = cfg.Cache.Type
		settings.Path = cfg.Cache.Path
	}
	return settings
}

func (cfg *RootConfig) ToNotifierSettings(logger *slog.Logger) []*notifiers.NotifierSettings {
	return lo.Map(cfg.Notifiers, func(n *NotifierConfig, _ int) *notifiers.NotifierSettings {
		return &notifiers.NotifierSettings{
			Logger:   logger,
			Type:     n.Type,
			Url:      n.Url,
			Endpoint: n.Endpoint,
			Token:    n.Token,
			Project:  n.Project,
			Labels:   n.Labels,
			Subject:  n.Subject,
			Command:  n.Command,
			Args:     n.Args,
		}
	})
}

func (cfg *RootConfig) ToDetectorSettings(logger *slog.Logger) *detector.DetectorSettings {
	return &detector.DetectorSettings{
		Logger:            logger,
		CommentPrefix:     cfg.CommentPrefix,
		AcknowledgeFailed: lo.FromPtr(cfg.AcknowledgeFailed),
		SortGameVersions:  lo.FromPtr(cfg.SortGameVersions),
	}
}
