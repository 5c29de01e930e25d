package notifiers

import (
	"context"
	"fmt"

	"github.com/melanx/mrnotify/pkg/common"
)

// A notifier that only logs the notifications.
type NoopNotifier struct {
	*notifierBase
}

func NewNoopNotifier(settings *NotifierSettings) *NoopNotifier {
	return &NoopNotifier{
		notifierBase: newNotifierBase(settings),
	}
}

func (n *NoopNotifier) Type() common.NotifierType {
	return common.NOTIFIER_TYPE_NOOP
}

func (n *NoopNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	n.logger.Info(fmt.Sprintf("Would notify about version '%s' of '%s'", notification.Version.VersionNumber, notification.Project.Title))
	return nil
}
