package notifiers

import (
	"context"
	"fmt"

	"github.com/melanx/mrnotify/pkg/common"
)

// Posts the notifications to a Discord compatible webhook.
type DiscordNotifier struct {
	*notifierBase
	url string
}

func NewDiscordNotifier(settings *NotifierSettings) (*DiscordNotifier, error) {
	url := settings.UrlExpanded()
	if url == "" {
		return nil, fmt.Errorf("no webhook url defined")
	}
	return &DiscordNotifier{
		notifierBase: newNotifierBase(settings),
		url:          url,
	}, nil
}

func (n *DiscordNotifier) Type() common.NotifierType {
	return common.NOTIFIER_TYPE_DISCORD
}

func (n *DiscordNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	if _, err := common.HttpUtil.PostJSON(ctx, n.url, notification.WebhookMessage(), nil); err != nil {
		return fmt.Errorf("failed posting to the webhook: %w", err)
	}
	n.logger.Debug(fmt.Sprintf("Posted version '%s' of '%s'", notification.Version.VersionNumber, notification.Project.Slug))
	return nil
}
