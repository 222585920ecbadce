package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pep299/keyword-analyzer/internal/analysis"
)

const defaultBaseURL = "https://slack.com/api"

// digestTopKeywords is how many high priority keywords the digest lists
const digestTopKeywords = 3

// Client handles Slack notifications
type Client struct {
	botToken   string
	channel    string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Slack client
func NewClient(botToken, channel string) *Client {
	return &Client{
		botToken: botToken,
		channel:  channel,
		baseURL:  defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL points the client at another API root
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// ChatPostMessageRequest represents a Slack chat.postMessage request
type ChatPostMessageRequest struct {
	Channel   string `json:"channel"`
	Text      string `json:"text"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

// SendAnalysisDigest posts the totals and leading keywords of a finished run
func (c *Client) SendAnalysisDigest(ctx context.Context, summary *analysis.Summary, runID string) error {
	return c.sendMessage(ctx, FormatDigest(summary, runID), c.channel)
}

// FormatDigest renders the digest text for a run
func FormatDigest(summary *analysis.Summary, runID string) string {
	p := message.NewPrinter(language.English)

	var top strings.Builder
	for i, r := range summary.HighPriority {
		if i == digestTopKeywords {
			break
		}
		p.Fprintf(&top, "• %s (%d searches, %s CPC)\n", r.Keyword, r.Volume, r.CPC)
	}
	if top.Len() == 0 {
		top.WriteString("• none\n")
	}

	return p.Sprintf(`📊 *Keyword analysis finished*

Total monthly searches: %d
Average CPC: %s
High priority: %d · Section 179: %d · Treatment: %d · Low competition: %d

*Top keywords*
%s
Run: %s`,
		summary.TotalMonthlySearches,
		analysis.FormatCurrency(summary.AverageCPC),
		len(summary.HighPriority),
		len(summary.TaxSeasonal),
		len(summary.TreatmentSpecific),
		len(summary.LowCompetition),
		top.String(),
		runID)
}

// sendMessage sends a message to the specified Slack channel
func (c *Client) sendMessage(ctx context.Context, text string, channel string) error {
	req := ChatPostMessageRequest{
		Channel:   channel,
		Text:      text,
		Username:  "Keyword Analyzer",
		IconEmoji: ":bar_chart:",
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat.postMessage", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.botToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack API returned status %d", resp.StatusCode)
	}

	var slackResp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error,omitempty"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&slackResp); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if !slackResp.OK {
		return fmt.Errorf("slack API error: %s", slackResp.Error)
	}

	return nil
}
