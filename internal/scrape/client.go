package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoAPIKey is returned by Scrape when the client has no Firecrawl credential
var ErrNoAPIKey = errors.New("firecrawl API key not set")

// StatusError is returned when the Firecrawl API answers with a non-200 status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("firecrawl API error: status %d: %s", e.StatusCode, e.Body)
}

// Client handles Firecrawl API operations
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Firecrawl client
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type scrapeRequest struct {
	URL         string      `json:"url"`
	PageOptions pageOptions `json:"pageOptions"`
}

type pageOptions struct {
	OnlyMainContent bool `json:"onlyMainContent"`
	IncludeHTML     bool `json:"includeHtml"`
}

type scrapeResponse struct {
	Data *struct {
		Content string `json:"content"`
	} `json:"data"`
}

// Scrape asks Firecrawl for the main text content of url
func (c *Client) Scrape(ctx context.Context, url string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(scrapeRequest{
		URL: url,
		PageOptions: pageOptions{
			OnlyMainContent: true,
			IncludeHTML:     false,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	var scrapeResp scrapeResponse
	if err := json.NewDecoder(resp.Body).Decode(&scrapeResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	// a body without a data object carries no page text
	if scrapeResp.Data == nil {
		return "", nil
	}
	return scrapeResp.Data.Content, nil
}
