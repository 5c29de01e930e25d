package notifiers

import (
	"fmt"
	"strings"

	"github.com/melanx/mrnotify/pkg/common"
)

// Builds the title for issue based notifiers.
func issueTitle(notification *common.Notification) string {
	return fmt.Sprintf("New version %s of %s", notification.Version.VersionNumber, notification.Project.Title)
}

// Renders the embed of the notification as markdown.
func issueBody(notification *common.Notification) string {
	var sb strings.Builder
	embed := notification.Embed
	if embed.Author != nil {
		sb.WriteString(fmt.Sprintf("## [%s](%s)\n\n", embed.Author.Name, embed.Author.Url))
	}
	sb.WriteString(fmt.Sprintf("Published: %s\n\n", embed.Timestamp))
	for _, field := range embed.Fields {
		sb.WriteString(fmt.Sprintf("### %s\n\n", field.Name))
		sb.WriteString(field.Value)
		sb.WriteString("\n\n")
	}
	if embed.Footer != nil {
		sb.WriteString(fmt.Sprintf("_%s_\n", embed.Footer.Text))
	}
	return sb.String()
}
