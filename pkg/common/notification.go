package common

// A rich message embed as understood by Discord compatible webhooks.
type Embed struct {
	Title     string          `json:"title"`
	Author    *EmbedAuthor    `json:"author,omitempty"`
	Fields    []*EmbedField   `json:"fields,omitempty"`
	Thumbnail *EmbedThumbnail `json:"thumbnail,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Footer    *EmbedFooter    `json:"footer,omitempty"`
	Color     *int            `json:"color,omitempty"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	Url     string `json:"url,omitempty"`
	IconUrl string `json:"icon_url,omitempty"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type EmbedThumbnail struct {
	Url string `json:"url"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconUrl string `json:"icon_url,omitempty"`
}

// The body that is posted to a webhook.
type WebhookMessage struct {
	Username  string   `json:"username"`
	AvatarUrl string   `json:"avatar_url"`
	Embeds    []*Embed `json:"embeds"`
}

// A notification about a single new version of a project.
type Notification struct {
	Project *ProjectSnapshot `json:"project"`
	Version *VersionDetail   `json:"version"`
	Embed   *Embed           `json:"embed"`
}

// Builds the webhook message containing the embed of this notification.
func (n *Notification) WebhookMessage() *WebhookMessage {
	return &WebhookMessage{
		Username:  WebhookUsername,
		AvatarUrl: ModrinthIconUrl,
		Embeds:    []*Embed{n.Embed},
	}
}
