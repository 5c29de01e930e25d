package detector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/melanx/mrnotify/pkg/common"
	"github.com/melanx/mrnotify/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

////////////////////////////////////////////////////////////
// Fakes
////////////////////////////////////////////////////////////

type fakeClient struct {
	projects       map[string]*common.ProjectSnapshot
	projectsErr    error
	brokenVersions map[string]bool
	noChangelog    map[string]bool
	projectCalls   [][]string
	versionCalls   []string
}

func newFakeClient(projects ...*common.ProjectSnapshot) *fakeClient {
	client := &fakeClient{projects: map[string]*common.ProjectSnapshot{}, brokenVersions: map[string]bool{}, noChangelog: map[string]bool{}}
	for _, project := range projects {
		client.projects[project.Slug] = project
	}
	return client
}

func (c *fakeClient) GetProjects(ctx context.Context, projectIds []string) ([]*common.ProjectSnapshot, error) {
	c.projectCalls = append(c.projectCalls, projectIds)
	if c.projectsErr != nil {
		return nil, c.projectsErr
	}
	result := []*common.ProjectSnapshot{}
	for _, id := range projectIds {
		for _, project := range c.projects {
			if project.Slug == id || project.Id == id {
				result = append(result, project)
			}
		}
	}
	return result, nil
}

func (c *fakeClient) GetVersion(ctx context.Context, versionId string) (*common.VersionDetail, error) {
	c.versionCalls = append(c.versionCalls, versionId)
	if c.brokenVersions[versionId] {
		return nil, &common.HttpStatusError{Url: "version/" + versionId, StatusCode: 404}
	}
	changelog := "Changes of " + versionId
	if c.noChangelog[versionId] {
		changelog = ""
	}
	return &common.VersionDetail{
		Id:            versionId,
		VersionNumber: "v-" + versionId,
		DatePublished: "2024-01-02T03:04:05.678Z",
		GameVersions:  []string{"1.20.1"},
		Loaders:       []string{"fabric"},
		Changelog:     changelog,
	}, nil
}

type recordingNotifier struct {
	received []string
	failFor  map[string]bool
}

func (n *recordingNotifier) Type() common.NotifierType {
	return common.NOTIFIER_TYPE_NOOP
}

func (n *recordingNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	if n.failFor[notification.Version.Id] {
		return errors.New("webhook rejected the message")
	}
	n.received = append(n.received, fmt.Sprintf("%s:%s", notification.Project.Slug, notification.Version.Id))
	return nil
}

// Rejects embeds with empty field values like Discord webhooks do.
type fieldCheckingNotifier struct {
	recordingNotifier
}

func (n *fieldCheckingNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	for _, field := range notification.Embed.Fields {
		if field.Value == "" {
			return fmt.Errorf("field '%s' must not be empty", field.Name)
		}
	}
	return n.recordingNotifier.Notify(ctx, notification)
}

func project(slug string, versions ...string) *common.ProjectSnapshot {
	return &common.ProjectSnapshot{
		Slug:        slug,
		Title:       "Title of " + slug,
		ProjectType: "mod",
		Versions:    versions,
	}
}

func newTestDetector(client common.IModrinthClient, notifiers ...common.INotifier) *Detector {
	return NewDetector(&DetectorSettings{
		Logger:    logging.NewDiscardLogger(),
		Client:    client,
		Notifiers: notifiers,
	})
}

////////////////////////////////////////////////////////////
// Tests
////////////////////////////////////////////////////////////

func TestExactDiff(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "A", "B", "C"))
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	updated, result, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{"sodium": {"A", "B"}})
	require.NoError(err)

	assert.Equal([]string{"sodium:C"}, notifier.received)
	assert.Equal([]string{"C"}, client.versionCalls)
	assert.Equal(common.KnownVersions{"sodium": {"A", "B", "C"}}, updated)
	require.Len(result.Notified, 1)
	assert.Equal(VersionRef{Project: "sodium", VersionId: "C"}, *result.Notified[0])
	assert.Empty(result.Failed)
}

func TestFirstSightSuppression(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "A", "B", "C"))
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	updated, result, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{})
	require.NoError(err)

	assert.Empty(notifier.received)
	assert.Empty(client.versionCalls)
	assert.Equal(common.KnownVersions{"sodium": {"A", "B", "C"}}, updated)
	assert.Equal([]string{"sodium"}, result.NewProjects)
}

func TestIdempotence(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "A", "B"), project("lithium", "X"))
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	known := common.KnownVersions{"sodium": {"A"}, "lithium": {}}
	first, _, err := detector.Run(context.Background(), []string{"sodium", "lithium"}, known)
	require.NoError(err)
	assert.Equal([]string{"sodium:B", "lithium:X"}, notifier.received)

	second, result, err := detector.Run(context.Background(), []string{"sodium", "lithium"}, first)
	require.NoError(err)
	assert.Len(notifier.received, 2)
	assert.Empty(result.Notified)
	assert.Equal(first, second)
}

func TestUnknownProjectIsolation(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("Y", "y1", "y2"))
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	known := common.KnownVersions{"X": {"x1"}, "Y": {"y1"}}
	updated, result, err := detector.Run(context.Background(), []string{"X", "Y"}, known)
	require.NoError(err)

	assert.Equal([]string{"X"}, result.MissingProjects)
	assert.Equal([]string{"Y:y2"}, notifier.received)
	assert.Equal(common.KnownVersions{"X": {"x1"}, "Y": {"y1", "y2"}}, updated)
	// The input is not modified
	assert.Equal(common.KnownVersions{"X": {"x1"}, "Y": {"y1"}}, known)
}

func TestBatchFailureAborts(t *testing.T) {
	assert := assert.New(t)

	client := newFakeClient(project("sodium", "A", "B"))
	client.projectsErr = &common.HttpStatusError{Url: "projects", StatusCode: 500}
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	updated, result, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{"sodium": {"A"}})
	assert.Error(err)
	assert.Nil(updated)
	assert.Nil(result)
	assert.Empty(notifier.received)
	assert.Empty(client.versionCalls)
}

func TestSingleBatchRequestAndOrder(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("a", "a1", "a2", "a3"), project("b", "b1", "b2"))
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	_, _, err := detector.Run(context.Background(), []string{"b", "a"}, common.KnownVersions{"a": {"a2"}, "b": {}})
	require.NoError(err)

	assert.Len(client.projectCalls, 1)
	assert.Equal([]string{"b", "a"}, client.projectCalls[0])
	assert.Equal([]string{"b:b1", "b:b2", "a:a1", "a:a3"}, notifier.received)
}

func TestFiltersTrackedIds(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "A"))
	detector := newTestDetector(client)

	_, result, err := detector.Run(context.Background(), []string{"", "# lithium", "sodium", "  ", "sodium"}, common.KnownVersions{})
	require.NoError(err)
	assert.Equal([][]string{{"sodium"}}, client.projectCalls)
	assert.Equal(1, result.TrackedProjects)
}

func TestEmptyProjectListIsNoop(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient()
	detector := newTestDetector(client)

	updated, result, err := detector.Run(context.Background(), []string{"# only a comment"}, common.KnownVersions{})
	require.NoError(err)
	assert.Empty(client.projectCalls)
	assert.Empty(updated)
	assert.Equal(0, result.TrackedProjects)
}

func TestUntrackedEntriesAreKept(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "A"))
	detector := newTestDetector(client)

	updated, _, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{"old": {"z"}, "sodium": {"A"}})
	require.NoError(err)
	assert.Equal(common.KnownVersions{"old": {"z"}, "sodium": {"A"}}, updated)
}

func TestRemovedVersionsAreDropped(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "B", "C"))
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	updated, _, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{"sodium": {"A", "B"}})
	require.NoError(err)
	assert.Equal([]string{"sodium:C"}, notifier.received)
	assert.Equal(common.KnownVersions{"sodium": {"B", "C"}}, updated)
}

func TestFailedVersionsAreRetried(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "A", "B", "C", "D"))
	client.brokenVersions["B"] = true
	notifier := &recordingNotifier{failFor: map[string]bool{"C": true}}
	detector := newTestDetector(client, notifier)

	updated, result, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{"sodium": {"A"}})
	require.NoError(err)
	assert.Equal([]string{"sodium:D"}, notifier.received)
	assert.Equal(common.KnownVersions{"sodium": {"A", "D"}}, updated)
	require.Len(result.Failed, 2)
	assert.Equal("B", result.Failed[0].VersionId)
	assert.Equal("C", result.Failed[1].VersionId)

	// The next run retries the failed versions only
	client.brokenVersions = map[string]bool{}
	notifier.failFor = nil
	updated, result, err = detector.Run(context.Background(), []string{"sodium"}, updated)
	require.NoError(err)
	assert.Equal([]string{"sodium:D", "sodium:B", "sodium:C"}, notifier.received)
	assert.Equal(common.KnownVersions{"sodium": {"A", "B", "C", "D"}}, updated)
	assert.Empty(result.Failed)
}

func TestVersionWithoutChangelogIsAnnounced(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "A", "B"))
	client.noChangelog["B"] = true
	notifier := &fieldCheckingNotifier{}
	detector := newTestDetector(client, notifier)

	updated, result, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{"sodium": {"A"}})
	require.NoError(err)
	assert.Empty(result.Failed)
	assert.Equal([]string{"sodium:B"}, notifier.received)
	assert.Equal(common.KnownVersions{"sodium": {"A", "B"}}, updated)

	// Nothing is announced again
	_, result, err = detector.Run(context.Background(), []string{"sodium"}, updated)
	require.NoError(err)
	assert.Empty(result.Notified)
	assert.Len(notifier.received, 1)
}

func TestAcknowledgeFailed(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := newFakeClient(project("sodium", "A", "B"))
	client.brokenVersions["B"] = true
	detector := NewDetector(&DetectorSettings{
		Logger:            logging.NewDiscardLogger(),
		Client:            client,
		AcknowledgeFailed: true,
	})

	updated, result, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{"sodium": {"A"}})
	require.NoError(err)
	assert.Len(result.Failed, 1)
	assert.Equal(common.KnownVersions{"sodium": {"A", "B"}}, updated)
}

func TestInvalidPublishDateIsAFailure(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	client := &badDateClient{fakeClient: newFakeClient(project("sodium", "A", "B"))}
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	updated, result, err := detector.Run(context.Background(), []string{"sodium"}, common.KnownVersions{"sodium": {"A"}})
	require.NoError(err)
	assert.Empty(notifier.received)
	assert.Len(result.Failed, 1)
	assert.Equal(common.KnownVersions{"sodium": {"A"}}, updated)
}

func TestTrackByProjectId(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sodium := project("sodium", "A", "B")
	sodium.Id = "AANobbMI"
	client := newFakeClient(sodium)
	notifier := &recordingNotifier{}
	detector := newTestDetector(client, notifier)

	updated, _, err := detector.Run(context.Background(), []string{"AANobbMI"}, common.KnownVersions{"AANobbMI": {"A"}})
	require.NoError(err)
	assert.Equal([]string{"sodium:B"}, notifier.received)
	assert.Equal(common.KnownVersions{"AANobbMI": {"A", "B"}}, updated)
}

func TestCancelledRunAborts(t *testing.T) {
	assert := assert.New(t)

	client := newFakeClient(project("sodium", "A", "B"))
	detector := newTestDetector(client)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	updated, _, err := detector.Run(ctx, []string{"sodium"}, common.KnownVersions{"sodium": {"A"}})
	assert.ErrorIs(err, context.Canceled)
	assert.Nil(updated)
}

type badDateClient struct {
	*fakeClient
}

func (c *badDateClient) GetVersion(ctx context.Context, versionId string) (*common.VersionDetail, error) {
	version, err := c.fakeClient.GetVersion(ctx, versionId)
	if err != nil {
		return nil, err
	}
	version.DatePublished = "2024-01-02 03:04:05"
	return version, nil
}
