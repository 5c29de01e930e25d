package notifiers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/melanx/mrnotify/pkg/common"
)

// Creates an issue in a GitHub repository for each notification.
type GitHubNotifier struct {
	*notifierBase
	client     *github.Client
	owner      string
	repository string
}

func NewGitHubNotifier(settings *NotifierSettings) (*GitHubNotifier, error) {
	owner, repository, err := splitProject(settings.Project)
	if err != nil {
		return nil, err
	}
	client, err := createGitHubClient(settings)
	if err != nil {
		return nil, err
	}
	return &GitHubNotifier{
		notifierBase: newNotifierBase(settings),
		client:       client,
		owner:        owner,
		repository:   repository,
	}, nil
}

func (n *GitHubNotifier) Type() common.NotifierType {
	return common.NOTIFIER_TYPE_GITHUB
}

func (n *GitHubNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	request := &github.IssueRequest{
		Title: github.Ptr(issueTitle(notification)),
		Body:  github.Ptr(issueBody(notification)),
	}
	if len(n.settings.Labels) > 0 {
		request.Labels = &n.settings.Labels
	}
	issue, _, err := n.client.Issues.Create(ctx, n.owner, n.repository, request)
	if err != nil {
		return fmt.Errorf("failed creating issue: %w", err)
	}
	n.logger.Info(fmt.Sprintf("Created issue: %s", issue.GetHTMLURL()))
	return nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func createGitHubClient(settings *NotifierSettings) (*github.Client, error) {
	token := settings.TokendExpanded()
	if token == "" {
		return nil, fmt.Errorf("no token defined")
	}
	client := github.NewClient(nil).WithAuthToken(token)
	if endpoint := settings.EndpointExpanded(); endpoint != "" {
		return client.WithEnterpriseURLs(endpoint, endpoint)
	}
	return client, nil
}

// Splits the project path into "owner" and "repository".
func splitProject(project string) (string, string, error) {
	parts := strings.SplitN(project, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid project '%s', expected 'owner/repository'", project)
	}
	return parts[0], parts[1], nil
}
