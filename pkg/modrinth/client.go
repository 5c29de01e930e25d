package modrinth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/melanx/mrnotify/pkg/common"
)

type ClientSettings struct {
	// The logger to use for the client.
	Logger *slog.Logger
	// The base url of the API. Defaults to the public Modrinth API.
	ApiUrl string
	// The user agent to send with each request.
	UserAgent string
	// Host rules that might apply when calling the API.
	HostRules []*common.HostRule
}

// A client for the parts of the Modrinth API needed to detect new versions.
type Client struct {
	logger    *slog.Logger
	apiUrl    string
	userAgent string
	token     string
}

func NewClient(settings *ClientSettings) *Client {
	apiUrl := strings.TrimSuffix(settings.ApiUrl, "/")
	if apiUrl == "" {
		apiUrl = common.DefaultApiUrl
	}
	userAgent := settings.UserAgent
	if userAgent == "" {
		userAgent = common.DefaultUserAgent
	}
	client := &Client{
		logger:    settings.Logger.With(slog.String("component", "modrinth")),
		apiUrl:    apiUrl,
		userAgent: userAgent,
	}
	// Get a host rule if any was defined
	if parsedUrl, err := url.Parse(apiUrl); err == nil {
		if hostRule := common.FindHostRule(settings.HostRules, parsedUrl.Host); hostRule != nil {
			client.token = hostRule.TokendExpanded()
		}
	}
	return client
}

func (c *Client) GetProjects(ctx context.Context, projectIds []string) ([]*common.ProjectSnapshot, error) {
	idsJson, err := json.Marshal(projectIds)
	if err != nil {
		return nil, err
	}
	requestUrl := fmt.Sprintf("%s/projects?%s", c.apiUrl, url.Values{"ids": []string{string(idsJson)}}.Encode())
	c.logger.Debug(fmt.Sprintf("Fetching %s", common.GetSingularPluralStringSimple(projectIds, "project")))
	body, err := c.get(ctx, requestUrl)
	if err != nil {
		return nil, fmt.Errorf("failed fetching projects: %w", err)
	}

	// Parse the records separately so a single broken one does not fail all
	var rawRecords []json.RawMessage
	if err := json.Unmarshal(body, &rawRecords); err != nil {
		return nil, fmt.Errorf("failed parsing projects response: %w", err)
	}
	projects := []*common.ProjectSnapshot{}
	for idx, rawRecord := range rawRecords {
		project, err := parseProject(rawRecord)
		if err != nil {
			c.logger.Warn(fmt.Sprintf("Ignoring project record %d: %s", idx, err))
			continue
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func (c *Client) GetVersion(ctx context.Context, versionId string) (*common.VersionDetail, error) {
	requestUrl := fmt.Sprintf("%s/version/%s", c.apiUrl, url.PathEscape(versionId))
	body, err := c.get(ctx, requestUrl)
	if err != nil {
		return nil, fmt.Errorf("failed fetching version '%s': %w", versionId, err)
	}
	version := &common.VersionDetail{}
	if err := json.Unmarshal(body, version); err != nil {
		return nil, fmt.Errorf("failed parsing version '%s': %w", versionId, err)
	}
	if err := version.Validate(); err != nil {
		return nil, fmt.Errorf("failed parsing version '%s': %w", versionId, err)
	}
	return version, nil
}

////////////////////////////////////////////////////////////
// Internal
////////////////////////////////////////////////////////////

func (c *Client) get(ctx context.Context, requestUrl string) ([]byte, error) {
	headers := map[string]string{
		"User-Agent":   c.userAgent,
		"Content-Type": common.ContentTypeJSON,
	}
	if c.token != "" {
		headers["Authorization"] = c.token
	}
	req, err := common.HttpUtil.NewGetRequest(ctx, requestUrl, headers)
	if err != nil {
		return nil, err
	}
	return common.HttpUtil.DownloadToMemory(req)
}

func parseProject(rawRecord json.RawMessage) (*common.ProjectSnapshot, error) {
	project := &common.ProjectSnapshot{}
	if err := json.Unmarshal(rawRecord, project); err != nil {
		return nil, errors.Join(common.ErrInvalidRecord, err)
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}
