package notifiers

import (
	"context"
	"fmt"

	"code.gitea.io/sdk/gitea"
	"github.com/melanx/mrnotify/pkg/common"
)

// Creates an issue in a Gitea repository for each notification.
type GiteaNotifier struct {
	*notifierBase
	owner      string
	repository string
}

func NewGiteaNotifier(settings *NotifierSettings) (*GiteaNotifier, error) {
	owner, repository, err := splitProject(settings.Project)
	if err != nil {
		return nil, err
	}
	if settings.TokendExpanded() == "" {
		return nil, fmt.Errorf("no token defined")
	}
	return &GiteaNotifier{
		notifierBase: newNotifierBase(settings),
		owner:        owner,
		repository:   repository,
	}, nil
}

func (n *GiteaNotifier) Type() common.NotifierType {
	return common.NOTIFIER_TYPE_GITEA
}

func (n *GiteaNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	client, err := n.createClient(ctx)
	if err != nil {
		return err
	}
	issue, _, err := client.CreateIssue(n.owner, n.repository, gitea.CreateIssueOption{
		Title: issueTitle(notification),
		Body:  issueBody(notification),
	})
	if err != nil {
		return fmt.Errorf("failed creating issue: %w", err)
	}
	n.logger.Info(fmt.Sprintf("Created issue: %s", issue.HTMLURL))
	return nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func (n *GiteaNotifier) createClient(ctx context.Context) (*gitea.Client, error) {
	endpoint := "https://gitea.com"
	if n.settings.Endpoint != "" {
		endpoint = n.settings.EndpointExpanded()
	}
	return gitea.NewClient(endpoint, gitea.SetToken(n.settings.TokendExpanded()), gitea.SetContext(ctx))
}
