// Package detector finds new versions of tracked projects and announces them.
package detector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/melanx/mrnotify/pkg/common"
	"github.com/melanx/mrnotify/pkg/embeds"
	"github.com/samber/lo"
)

type DetectorSettings struct {
	// The logger to use for the detector.
	Logger *slog.Logger
	// The client to fetch projects and versions with.
	Client common.IModrinthClient
	// The notifiers that receive each new version.
	Notifiers []common.INotifier
	// Entries starting with this prefix are ignored. Defaults to "#".
	CommentPrefix string
	// Records versions as known even if announcing them failed.
	AcknowledgeFailed bool
	// Sorts the game versions in the notifications from newest to oldest.
	SortGameVersions bool
}

// Identifies a version of a tracked project.
type VersionRef struct {
	Project   string
	VersionId string
}

// A version that could not be announced.
type VersionFailure struct {
	VersionRef
	Err error
}

// The outcome of a single run.
type RunResult struct {
	// The number of tracked projects after filtering.
	TrackedProjects int
	// Projects seen for the first time. They were recorded without notifications.
	NewProjects []string
	// Tracked projects that were not part of the response.
	MissingProjects []string
	// Versions that were announced to all notifiers.
	Notified []*VersionRef
	// Versions that could not be announced.
	Failed []*VersionFailure
}

type Detector struct {
	logger   *slog.Logger
	settings *DetectorSettings
}

func NewDetector(settings *DetectorSettings) *Detector {
	if settings.CommentPrefix == "" {
		settings.CommentPrefix = common.DefaultCommentPrefix
	}
	return &Detector{
		logger:   settings.Logger.With(slog.String("component", "detector")),
		settings: settings,
	}
}

// Compares the current versions of the tracked projects with the known versions and
// announces every new version. Returns the known versions to persist. The passed
// known versions are not modified. On error, nothing must be persisted.
func (d *Detector) Run(ctx context.Context, trackedProjectIds []string, known common.KnownVersions) (common.KnownVersions, *RunResult, error) {
	projectIds := common.FilterProjectIds(trackedProjectIds, d.settings.CommentPrefix)
	updated := known.Clone()
	result := &RunResult{
		TrackedProjects: len(projectIds),
		NewProjects:     []string{},
		MissingProjects: []string{},
		Notified:        []*VersionRef{},
		Failed:          []*VersionFailure{},
	}
	if len(projectIds) == 0 {
		d.logger.Warn("No projects found to check")
		return updated, result, nil
	}
	d.logger.Info(fmt.Sprintf("Checking %s", common.GetSingularPluralStringSimple(projectIds, "project")))

	// Fetch all projects with one request
	projects, err := d.settings.Client.GetProjects(ctx, projectIds)
	if err != nil {
		return nil, nil, err
	}
	projectsById := indexProjects(projects)

	for _, projectId := range projectIds {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("run was cancelled: %w", err)
		}
		project, ok := projectsById[projectId]
		if !ok {
			d.logger.Warn(fmt.Sprintf("Project '%s' not found, skipping it", projectId))
			result.MissingProjects = append(result.MissingProjects, projectId)
			continue
		}
		knownVersionIds, isKnown := known[projectId]
		if !isKnown {
			// Without a baseline, nothing can be new
			d.logger.Info(fmt.Sprintf("New project found: %s", project.Title))
			result.NewProjects = append(result.NewProjects, projectId)
			updated[projectId] = slices.Clone(project.Versions)
			continue
		}

		newVersionIds := lo.Without(project.Versions, knownVersionIds...)
		if len(newVersionIds) == 0 {
			d.logger.Debug(fmt.Sprintf("No new versions for '%s'", project.Title))
			updated[projectId] = slices.Clone(project.Versions)
			continue
		}
		d.logger.Info(fmt.Sprintf("Found %s for '%s'", common.GetSingularPluralStringSimple(newVersionIds, "new version"), project.Title))

		failedVersionIds := []string{}
		for _, versionId := range newVersionIds {
			ref := &VersionRef{Project: projectId, VersionId: versionId}
			if err := d.announce(ctx, project, versionId); err != nil {
				d.logger.Error(fmt.Sprintf("Failed announcing version '%s' of '%s': %s", versionId, project.Title, err))
				result.Failed = append(result.Failed, &VersionFailure{VersionRef: *ref, Err: err})
				if !d.settings.AcknowledgeFailed {
					failedVersionIds = append(failedVersionIds, versionId)
				}
				continue
			}
			result.Notified = append(result.Notified, ref)
		}
		// Versions that failed stay unknown so the next run retries them
		updated[projectId] = lo.Without(project.Versions, failedVersionIds...)
	}

	d.logger.Info(fmt.Sprintf("Announced %s, %d failed", common.GetSingularPluralStringSimple(result.Notified, "new version"), len(result.Failed)))
	return updated, result, nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

// Fetches the version details and sends the notification to all notifiers.
func (d *Detector) announce(ctx context.Context, project *common.ProjectSnapshot, versionId string) error {
	version, err := d.settings.Client.GetVersion(ctx, versionId)
	if err != nil {
		return err
	}
	embed, err := embeds.BuildWithSettings(project, version, &embeds.BuilderSettings{
		SortGameVersions: d.settings.SortGameVersions,
	})
	if err != nil {
		return fmt.Errorf("failed building the notification: %w", err)
	}
	notification := &common.Notification{
		Project: project,
		Version: version,
		Embed:   embed,
	}
	d.logger.Info(fmt.Sprintf("New version \"%s\" in \"%s\"", version.DisplayName(), project.Title))

	errs := []error{}
	for _, notifier := range d.settings.Notifiers {
		if err := notifier.Notify(ctx, notification); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", notifier.Type(), err))
		}
	}
	return errors.Join(errs...)
}

// Indexes the projects by slug and by id so both can be tracked.
func indexProjects(projects []*common.ProjectSnapshot) map[string]*common.ProjectSnapshot {
	projectsById := lo.KeyBy(projects, func(p *common.ProjectSnapshot) string { return p.Slug })
	for _, project := range projects {
		if project.Id == "" {
			continue
		}
		if _, exists := projectsById[project.Id]; !exists {
			projectsById[project.Id] = project
		}
	}
	return projectsById
}
