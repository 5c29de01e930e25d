package common

var TruePtr *bool = &[]bool{true}[0]
var FalsePtr *bool = &[]bool{false}[0]

type NotifierType string

const (
	NOTIFIER_TYPE_DISCORD NotifierType = "discord"
	NOTIFIER_TYPE_EXEC    NotifierType = "exec"
	NOTIFIER_TYPE_GITEA   NotifierType = "gitea"
	NOTIFIER_TYPE_GITHUB  NotifierType = "github"
	NOTIFIER_TYPE_GITLAB  NotifierType = "gitlab"
	NOTIFIER_TYPE_NATS    NotifierType = "nats"
	NOTIFIER_TYPE_NOOP    NotifierType = "noop"
)

type CacheType string

const (
	CACHE_TYPE_JSON   CacheType = "json"
	CACHE_TYPE_MEMORY CacheType = "memory"
	CACHE_TYPE_SQLITE CacheType = "sqlite"
)

const (
	// The public Modrinth API.
	DefaultApiUrl = "https://api.modrinth.com/v2"
	// The user agent sent to the Modrinth API.
	DefaultUserAgent = "GitHub@MelanX/ModrinthUpdateChecker"
	// Lines in a project list starting with this prefix are ignored.
	DefaultCommentPrefix = "#"
	// The default location of the cache file.
	DefaultCacheFile = "last_checked.json"

	// The base url of the Modrinth website.
	ModrinthSiteUrl = "https://modrinth.com"
	// The Modrinth logo, used as avatar and footer icon.
	ModrinthIconUrl = "https://cdn.modrinth.com/data/ZrwIGI6c/ca5c1a959e5f23bdc3482c7acbaa1d47ec3a0bd5.png"
	// The name under which the webhook messages are sent.
	WebhookUsername = "Modrinth"
	// The text in the footer of each embed.
	FooterText = "Sent by Modrinth Update Checker"
)
