package snippet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/centinela-news/feed-sync/internal/domain"
)

// Client calls the hosted snippet generation endpoint.
type Client struct {
	endpointURL string
	apiKey      string
	httpClient  *http.Client
}

func NewClient(endpointURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpointURL: endpointURL,
		apiKey:      apiKey,
		httpClient:  httpClient,
	}
}

type snippetRequest struct {
	Content string `json:"content"`
	Title   string `json:"title"`
}

type snippetResponse struct {
	Snippet string `json:"snippet"`
}

// Generate requests a snippet for one article. Any transport failure is
// a network error; a non-2xx status or an empty snippet is a remote one.
func (c *Client) Generate(ctx context.Context, content, title string) (string, error) {
	body, err := json.Marshal(snippetRequest{Content: content, Title: title})
	if err != nil {
		return "", fmt.Errorf("encoding snippet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building snippet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", domain.WrapNetworkError(fmt.Errorf("calling snippet endpoint: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", domain.WrapRemoteError(fmt.Errorf("snippet endpoint returned status %d", resp.StatusCode))
	}

	var decoded snippetResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", domain.WrapRemoteError(fmt.Errorf("decoding snippet response: %w", err))
	}
	if decoded.Snippet == "" {
		return "", domain.WrapRemoteError(fmt.Errorf("snippet endpoint returned empty snippet"))
	}

	return decoded.Snippet, nil
}
