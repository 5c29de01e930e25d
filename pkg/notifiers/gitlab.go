package notifiers

import (
	"context"
	"fmt"

	"github.com/melanx/mrnotify/pkg/common"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// Creates an issue in a GitLab project for each notification.
type GitlabNotifier struct {
	*notifierBase
	client *gitlab.Client
}

func NewGitlabNotifier(settings *NotifierSettings) (*GitlabNotifier, error) {
	if settings.Project == "" {
		return nil, fmt.Errorf("no project defined")
	}
	token := settings.TokendExpanded()
	if token == "" {
		return nil, fmt.Errorf("no token defined")
	}
	endpoint := "https://gitlab.com/api/v4"
	if settings.Endpoint != "" {
		endpoint = settings.EndpointExpanded()
	}
	client, err := gitlab.NewClient(token, gitlab.WithBaseURL(endpoint))
	if err != nil {
		return nil, err
	}
	return &GitlabNotifier{
		notifierBase: newNotifierBase(settings),
		client:       client,
	}, nil
}

func (n *GitlabNotifier) Type() common.NotifierType {
	return common.NOTIFIER_TYPE_GITLAB
}

func (n *GitlabNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	options := &gitlab.CreateIssueOptions{
		Title:       gitlab.Ptr(issueTitle(notification)),
		Description: gitlab.Ptr(issueBody(notification)),
	}
	if len(n.settings.Labels) > 0 {
		labels := gitlab.LabelOptions(n.settings.Labels)
		options.Labels = &labels
	}
	issue, _, err := n.client.Issues.CreateIssue(n.settings.Project, options, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed creating issue: %w", err)
	}
	n.logger.Info(fmt.Sprintf("Created issue: %s", issue.WebURL))
	return nil
}
