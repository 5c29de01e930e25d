package notifiers

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/melanx/mrnotify/pkg/common"
)

// This struct contains the settings for a single notifier.
type NotifierSettings struct {
	// The logger to use for the notifier.
	Logger *slog.Logger
	// The type of the notifier.
	Type common.NotifierType
	// The url of the webhook or the nats server. Is expanded from environment variables.
	Url string
	// The api endpoint for issue based notifiers. Uses the public instance if empty.
	Endpoint string
	// The token to authenticate with. Is expanded from environment variables.
	Token string
	// The target project (eg. "owner/repository") for issue based notifiers.
	Project string
	// Labels to add to created issues.
	Labels []string
	// The subject to publish to for the nats notifier.
	Subject string
	// The executable and its arguments for the exec notifier.
	Command string
	Args    []string
}

func (s *NotifierSettings) UrlExpanded() string {
	return os.ExpandEnv(s.Url)
}

func (s *NotifierSettings) TokendExpanded() string {
	return os.ExpandEnv(s.Token)
}

func (s *NotifierSettings) EndpointExpanded() string {
	return os.ExpandEnv(s.Endpoint)
}

type notifierBase struct {
	logger   *slog.Logger
	settings *NotifierSettings
}

func newNotifierBase(settings *NotifierSettings) *notifierBase {
	return &notifierBase{
		logger:   settings.Logger.With(slog.String("notifier", string(settings.Type))),
		settings: settings,
	}
}

// Gets the notifier for the given settings.
func GetNotifier(settings *NotifierSettings) (common.INotifier, error) {
	switch settings.Type {
	case common.NOTIFIER_TYPE_DISCORD:
		return NewDiscordNotifier(settings)
	case common.NOTIFIER_TYPE_EXEC:
		return NewExecNotifier(settings)
	case common.NOTIFIER_TYPE_GITEA:
		return NewGiteaNotifier(settings)
	case common.NOTIFIER_TYPE_GITHUB:
		return NewGitHubNotifier(settings)
	case common.NOTIFIER_TYPE_GITLAB:
		return NewGitlabNotifier(settings)
	case common.NOTIFIER_TYPE_NATS:
		return NewNatsNotifier(settings)
	case common.NOTIFIER_TYPE_NOOP:
		return NewNoopNotifier(settings), nil
	}
	return nil, fmt.Errorf("no notifier defined for '%s'", settings.Type)
}

// Creates all notifiers for the given settings.
func GetNotifiers(settingsList []*NotifierSettings) ([]common.INotifier, error) {
	notifiers := []common.INotifier{}
	for _, settings := range settingsList {
		notifier, err := GetNotifier(settings)
		if err != nil {
			return nil, err
		}
		notifiers = append(notifiers, notifier)
	}
	return notifiers, nil
}
