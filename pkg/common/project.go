package common

import (
	"fmt"
	"strings"
)

// A project as returned by the batch projects endpoint.
type ProjectSnapshot struct {
	// The unique id of the project.
	Id string `json:"id"`
	// The unique slug of the project.
	Slug string `json:"slug"`
	// The display title of the project.
	Title string `json:"title"`
	// Url to the icon of the project. Can be empty.
	IconUrl string `json:"icon_url"`
	// The display color of the project. Can be nil when the project has no icon.
	Color *int `json:"color"`
	// The type of the project (eg. "mod", "resourcepack").
	ProjectType string `json:"project_type"`
	// The ids of all published versions, in the order returned by the API.
	Versions []string `json:"versions"`
}

func (p *ProjectSnapshot) String() string {
	return fmt.Sprintf("{slug: %s, title: %s, type: %s, versions: %d}", p.Slug, p.Title, p.ProjectType, len(p.Versions))
}

// Gets the project type to use in urls, defaults to "mod".
func (p *ProjectSnapshot) UrlType() string {
	if p.ProjectType == "" {
		return "mod"
	}
	return strings.ToLower(p.ProjectType)
}

// Validates that all required fields are set.
func (p *ProjectSnapshot) Validate() error {
	missing := []string{}
	if p.Slug == "" {
		missing = append(missing, "slug")
	}
	if p.Title == "" {
		missing = append(missing, "title")
	}
	if p.Versions == nil {
		missing = append(missing, "versions")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: project is missing %s", ErrInvalidRecord, strings.Join(missing, ", "))
	}
	return nil
}

// A single version of a project.
type VersionDetail struct {
	// The id of the version.
	Id string `json:"id"`
	// The display name of the version.
	Name string `json:"name"`
	// The version number as entered by the author.
	VersionNumber string `json:"version_number"`
	// The publish time in ISO-8601 UTC with fractional seconds.
	DatePublished string `json:"date_published"`
	// The game versions this version is compatible with.
	GameVersions []string `json:"game_versions"`
	// The loaders this version is compatible with.
	Loaders []string `json:"loaders"`
	// The changelog of the version.
	Changelog string `json:"changelog"`
}

// Validates that all required fields are set.
func (v *VersionDetail) Validate() error {
	missing := []string{}
	if v.Id == "" {
		missing = append(missing, "id")
	}
	if v.VersionNumber == "" {
		missing = append(missing, "version_number")
	}
	if v.DatePublished == "" {
		missing = append(missing, "date_published")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: version is missing %s", ErrInvalidRecord, strings.Join(missing, ", "))
	}
	return nil
}

// Gets the best name to display for the version.
func (v *VersionDetail) DisplayName() string {
	if v.Name != "" {
		return v.Name
	}
	return v.VersionNumber
}
