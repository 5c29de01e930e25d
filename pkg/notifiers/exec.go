package notifiers

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/melanx/mrnotify/pkg/common"
	"github.com/roemer/goext"
)

// Runs a command for each notification. The notification is passed as json in the last argument.
type ExecNotifier struct {
	*notifierBase
}

func NewExecNotifier(settings *NotifierSettings) (*ExecNotifier, error) {
	if settings.Command == "" {
		return nil, fmt.Errorf("no command defined")
	}
	return &ExecNotifier{
		notifierBase: newNotifierBase(settings),
	}, nil
}

func (n *ExecNotifier) Type() common.NotifierType {
	return common.NOTIFIER_TYPE_EXEC
}

func (n *ExecNotifier) Notify(ctx context.Context, notification *common.Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed serializing notification: %w", err)
	}
	args := append(slices.Clone(n.settings.Args), string(data))
	stdout, stderr, err := goext.CmdRunners.Default.RunGetOutput(n.settings.Command, args...)
	if err != nil {
		return fmt.Errorf("command '%s' failed: %w, stderr: %s", n.settings.Command, err, stderr)
	}
	if stdout != "" {
		n.logger.Debug(fmt.Sprintf("Command output: %s", stdout))
	}
	return nil
}
