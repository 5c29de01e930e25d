package notifiers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/melanx/mrnotify/pkg/common"
	"github.com/nats-io/nats.go"
)

const defaultNatsSubject = "mrnotify.versions"

// Publishes each notification as json to a nats subject.
type NatsNotifier struct {
	*notifierBase
	url     string
	subject string
}

func NewNatsNotifier(settings *NotifierSettings) (*NatsNotifier, error) {
	url := settings.UrlExpanded()
	if url == "" {
		url = nats.DefaultURL
	}
	subject := settings.Subject
	if subject == "" {
		subject = defaultNatsSubject
	}
	return &NatsNotifier{
		notifierBase: newNotifierBase(settings),
		url:          url,
		subject:      subject,
	}, nil
}

func (n *NatsNotifier) Type() common.NotifierType {
	return common.NOTIFIER_TYPE_NATS
}

func (n *NatsNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed serializing notification: %w", err)
	}
	options := []nats.Option{nats.Name("mrnotify"), nats.Timeout(10 * time.Second)}
	if token := n.settings.TokendExpanded(); token != "" {
		options = append(options, nats.Token(token))
	}
	conn, err := nats.Connect(n.url, options...)
	if err != nil {
		return fmt.Errorf("failed connecting to nats at '%s': %w", n.url, err)
	}
	defer conn.Close()
	subject := fmt.Sprintf("%s.%s", n.subject, notification.Project.Slug)
	if err := conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed publishing to '%s': %w", subject, err)
	}
	if err := conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf("failed flushing to '%s': %w", subject, err)
	}
	n.logger.Debug(fmt.Sprintf("Published to '%s'", subject))
	return nil
}
