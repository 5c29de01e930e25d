package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const ContentTypeJSON = "application/json"

// The maximum number of body bytes kept in a HttpStatusError.
const maxErrorBodyLength = 512

// Unexported type
type httpUtil struct{}

// exported global variable
var HttpUtil httpUtil

// Executes the request and returns the body if the response has a success status.
func (h httpUtil) DownloadToMemory(request *http.Request) ([]byte, error) {
	resp, err := http.DefaultClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HttpStatusError{
			Url:        request.URL.String(),
			StatusCode: resp.StatusCode,
			Body:       Truncate(strings.TrimSpace(string(bodyBytes)), maxErrorBodyLength),
		}
	}
	return bodyBytes, nil
}

// Creates a GET request with the given headers.
func (h httpUtil) NewGetRequest(ctx context.Context, url string, headers map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

// Posts the given payload as json and returns the body of the response.
func (h httpUtil) PostJSON(ctx context.Context, url string, payload any, headers map[string]string) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", ContentTypeJSON)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return h.DownloadToMemory(req)
}
