package embeds

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/melanx/mrnotify/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProject() *common.ProjectSnapshot {
	return &common.ProjectSnapshot{
		Slug:        "sodium",
		Title:       "Sodium",
		IconUrl:     "https://cdn.modrinth.com/sodium.png",
		Color:       common.Ptr(8703084),
		ProjectType: "mod",
		Versions:    []string{"old", "abc"},
	}
}

func testVersion() *common.VersionDetail {
	return &common.VersionDetail{
		Id:            "abc",
		VersionNumber: "0.5.3",
		DatePublished: "2023-09-21T18:25:12.123456Z",
		GameVersions:  []string{"1.20", "1.20.1"},
		Loaders:       []string{"fabric", "quilt"},
		Changelog:     "Fixed things",
	}
}

func TestBuild(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	embed, err := Build(testProject(), testVersion())
	require.NoError(err)

	assert.Equal("New file released <t:1695320712:R>!", embed.Title)
	assert.Equal("Sodium", embed.Author.Name)
	assert.Equal("https://modrinth.com/mod/sodium", embed.Author.Url)
	assert.Equal("https://cdn.modrinth.com/sodium.png", embed.Author.IconUrl)
	assert.Equal("https://cdn.modrinth.com/sodium.png", embed.Thumbnail.Url)
	assert.Equal("2023-09-21T18:25:12.123456Z", embed.Timestamp)
	assert.Equal(common.FooterText, embed.Footer.Text)
	assert.Equal(common.ModrinthIconUrl, embed.Footer.IconUrl)
	assert.Equal(8703084, *embed.Color)

	require.Len(embed.Fields, 4)
	assert.Equal("File version", embed.Fields[0].Name)
	assert.Equal("[0.5.3](https://modrinth.com/mod/sodium/version/abc)", embed.Fields[0].Value)
	assert.True(embed.Fields[0].Inline)
	assert.Equal("Game versions", embed.Fields[1].Name)
	assert.Equal("1.20\n1.20.1", embed.Fields[1].Value)
	assert.Equal("Loaders", embed.Fields[2].Name)
	assert.Equal("[Fabric](https://modrinth.com/mods?g=categories:%27fabric%27)\n[Quilt](https://modrinth.com/mods?g=categories:%27quilt%27)", embed.Fields[2].Value)
	assert.Equal("Changelog", embed.Fields[3].Name)
	assert.Equal("Fixed things", embed.Fields[3].Value)
	assert.False(embed.Fields[3].Inline)
}

func TestBuildSingularLabels(t *testing.T) {
	assert := assert.New(t)

	version := testVersion()
	version.GameVersions = []string{"1.20.1"}
	version.Loaders = []string{"neoforge"}
	embed, err := Build(testProject(), version)
	assert.NoError(err)
	assert.Equal("Game version", embed.Fields[1].Name)
	assert.Equal("Loader", embed.Fields[2].Name)
	assert.Equal("[Neoforge](https://modrinth.com/mods?g=categories:%27neoforge%27)", embed.Fields[2].Value)
}

func TestBuildUsesProjectType(t *testing.T) {
	assert := assert.New(t)

	project := testProject()
	project.ProjectType = "resourcepack"
	project.Slug = "faithful-32x"
	version := testVersion()
	version.Loaders = []string{"minecraft"}
	embed, err := Build(project, version)
	assert.NoError(err)
	assert.Equal("https://modrinth.com/resourcepack/faithful-32x", embed.Author.Url)
	assert.Equal("[0.5.3](https://modrinth.com/resourcepack/faithful-32x/version/abc)", embed.Fields[0].Value)
	assert.Contains(embed.Fields[2].Value, "https://modrinth.com/resourcepacks?g=categories:%27minecraft%27")
}

func TestBuildTruncates(t *testing.T) {
	assert := assert.New(t)

	project := testProject()
	project.Title = strings.Repeat("T", 300)
	version := testVersion()
	version.Changelog = strings.Repeat("c", MaxFieldValueLength+1)

	embed, err := Build(project, version)
	assert.NoError(err)
	assert.Equal(MaxAuthorNameLength, utf8.RuneCountInString(embed.Author.Name))
	assert.True(strings.HasSuffix(embed.Author.Name, common.Ellipsis))
	changelog := embed.Fields[len(embed.Fields)-1].Value
	assert.Equal(MaxFieldValueLength, utf8.RuneCountInString(changelog))
	assert.True(strings.HasSuffix(changelog, common.Ellipsis))

	version.Changelog = strings.Repeat("c", MaxFieldValueLength)
	embed, err = Build(project, version)
	assert.NoError(err)
	assert.Equal(version.Changelog, embed.Fields[len(embed.Fields)-1].Value)
}

func TestBuildWithoutOptionalData(t *testing.T) {
	assert := assert.New(t)

	project := testProject()
	project.IconUrl = ""
	project.Color = nil
	version := testVersion()
	version.GameVersions = nil
	version.Loaders = nil

	embed, err := Build(project, version)
	assert.NoError(err)
	assert.Nil(embed.Thumbnail)
	assert.Nil(embed.Color)
	assert.Len(embed.Fields, 4)
	assert.Equal("Game version", embed.Fields[1].Name)
	assert.Equal("Unknown", embed.Fields[1].Value)
	assert.Equal("Loader", embed.Fields[2].Name)
	assert.Equal("Unknown", embed.Fields[2].Value)

	// Optional parts are not serialized
	raw, err := json.Marshal(embed)
	assert.NoError(err)
	assert.NotContains(string(raw), "thumbnail")
	assert.NotContains(string(raw), "color")
}

func TestBuildWithoutChangelog(t *testing.T) {
	assert := assert.New(t)

	for _, changelog := range []string{"", "  \n\t"} {
		version := testVersion()
		version.Changelog = changelog
		embed, err := Build(testProject(), version)
		assert.NoError(err)
		changelogField := embed.Fields[len(embed.Fields)-1]
		assert.Equal("Changelog", changelogField.Name)
		assert.Equal("No changelog provided", changelogField.Value)
	}

	// A version with only the required data still has no empty field
	embed, err := Build(testProject(), &common.VersionDetail{Id: "a", VersionNumber: "1", DatePublished: "2024-01-02T03:04:05.678Z"})
	assert.NoError(err)
	assert.Len(embed.Fields, 4)
	for _, field := range embed.Fields {
		assert.NotEmpty(field.Value, field.Name)
	}
}

func TestBuildRejectsInvalidDates(t *testing.T) {
	assert := assert.New(t)

	for _, date := range []string{"2023-09-21T18:25:12Z", "2023-09-21T18:25:12.123+02:00", "21.09.2023", ""} {
		version := testVersion()
		version.DatePublished = date
		embed, err := Build(testProject(), version)
		assert.Error(err, date)
		assert.Nil(embed)
	}
}

func TestParsePublishDate(t *testing.T) {
	assert := assert.New(t)

	timestamp, err := ParsePublishDate("2023-09-21T18:25:12.5Z")
	assert.NoError(err)
	assert.Equal(int64(1695320712), timestamp.Unix())
	assert.Equal(500_000_000, timestamp.Nanosecond())
}

func TestSortGameVersions(t *testing.T) {
	assert := assert.New(t)

	sorted := SortGameVersions([]string{"1.19.4", "23w31a", "1.20", "1.20.1", "1.8.9", "1.20.2-pre1"})
	assert.Equal([]string{"1.20.1", "1.20", "1.19.4", "1.8.9", "23w31a", "1.20.2-pre1"}, sorted)

	embed, err := BuildWithSettings(testProject(), testVersion(), &BuilderSettings{SortGameVersions: true})
	assert.NoError(err)
	assert.Equal("1.20.1\n1.20", embed.Fields[1].Value)
}
