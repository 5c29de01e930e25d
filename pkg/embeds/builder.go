// Package embeds builds the chat messages that announce new versions.
package embeds

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/melanx/mrnotify/pkg/common"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Maximum length of the author name in an embed.
	MaxAuthorNameLength = 256
	// Maximum length of a field value in an embed.
	MaxFieldValueLength = 1024
)

// Webhooks reject empty field values, so these are used instead.
const (
	UnknownValue     = "Unknown"
	NoChangelogValue = "No changelog provided"
)

// Modrinth always publishes in UTC with fractional seconds.
var publishDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{1,9}Z$`)

type BuilderSettings struct {
	// Sorts the game versions from newest to oldest.
	SortGameVersions bool
}

// Builds the embed with the default settings.
func Build(project *common.ProjectSnapshot, version *common.VersionDetail) (*common.Embed, error) {
	return BuildWithSettings(project, version, nil)
}

// Builds the embed announcing the given version of the project.
func BuildWithSettings(project *common.ProjectSnapshot, version *common.VersionDetail, settings *BuilderSettings) (*common.Embed, error) {
	if settings == nil {
		settings = &BuilderSettings{}
	}
	timestamp, err := ParsePublishDate(version.DatePublished)
	if err != nil {
		return nil, err
	}
	projectUrl := ProjectUrl(project)

	fields := []*common.EmbedField{
		{
			Name:   "File version",
			Value:  common.Truncate(fmt.Sprintf("[%s](%s/version/%s)", version.VersionNumber, projectUrl, version.Id), MaxFieldValueLength),
			Inline: true,
		},
	}
	gameVersions := version.GameVersions
	if settings.SortGameVersions {
		gameVersions = SortGameVersions(gameVersions)
	}
	fields = append(fields, &common.EmbedField{
		Name:   pluralize("Game version", gameVersions),
		Value:  common.Truncate(joinOrPlaceholder(gameVersions, UnknownValue), MaxFieldValueLength),
		Inline: true,
	})
	loaderLinks := lo.Map(version.Loaders, func(loader string, _ int) string {
		return fmt.Sprintf("[%s](%s)", cases.Title(language.Und).String(loader), LoaderUrl(project, loader))
	})
	fields = append(fields, &common.EmbedField{
		Name:   pluralize("Loader", version.Loaders),
		Value:  common.Truncate(joinOrPlaceholder(loaderLinks, UnknownValue), MaxFieldValueLength),
		Inline: true,
	})
	changelog := version.Changelog
	if strings.TrimSpace(changelog) == "" {
		changelog = NoChangelogValue
	}
	fields = append(fields, &common.EmbedField{
		Name:   "Changelog",
		Value:  common.Truncate(changelog, MaxFieldValueLength),
		Inline: false,
	})

	embed := &common.Embed{
		Title: fmt.Sprintf("New file released <t:%d:R>!", timestamp.Unix()),
		Author: &common.EmbedAuthor{
			Name:    common.Truncate(project.Title, MaxAuthorNameLength),
			Url:     projectUrl,
			IconUrl: project.IconUrl,
		},
		Fields:    fields,
		Timestamp: version.DatePublished,
		Footer: &common.EmbedFooter{
			Text:    common.FooterText,
			IconUrl: common.ModrinthIconUrl,
		},
		Color: project.Color,
	}
	if project.IconUrl != "" {
		embed.Thumbnail = &common.EmbedThumbnail{Url: project.IconUrl}
	}
	return embed, nil
}

// Parses the publish date of a version. Only UTC times with fractional seconds are accepted.
func ParsePublishDate(value string) (time.Time, error) {
	if !publishDateRegex.MatchString(value) {
		return time.Time{}, fmt.Errorf("unexpected publish date format '%s'", value)
	}
	timestamp, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed parsing publish date '%s': %w", value, err)
	}
	return timestamp.UTC(), nil
}

// Gets the url to the page of the project.
func ProjectUrl(project *common.ProjectSnapshot) string {
	return fmt.Sprintf("%s/%s/%s", common.ModrinthSiteUrl, project.UrlType(), project.Slug)
}

// Gets the url to the browse page filtered by the given loader.
func LoaderUrl(project *common.ProjectSnapshot, loader string) string {
	return fmt.Sprintf("%s/%ss?g=categories:%s", common.ModrinthSiteUrl, project.UrlType(), url.QueryEscape("'"+loader+"'"))
}

func joinOrPlaceholder(values []string, placeholder string) string {
	if len(values) == 0 {
		return placeholder
	}
	return strings.Join(values, "\n")
}

func pluralize(label string, values []string) string {
	return label + lo.Ternary(len(values) > 1, "s", "")
}
