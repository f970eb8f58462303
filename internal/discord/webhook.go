// Package discord posts report summaries to a Discord webhook.
package discord

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"ranked-report/internal/collector"

	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
)

const (
	// Colors for Discord embeds
	colorRed   = 15158332 // 0xE74C3C
	colorGreen = 5763719  // 0x57F287

	defaultWebhookTimeout = 10 * time.Second

	// Max attempts when rate limited
	maxRetries = 3
)

var ErrWebhook = errors.New("webhook request failed")

// WebhookPayload represents a Discord webhook message
type WebhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
}

// Embed represents a Discord embed
type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
	Footer      *EmbedFooter `json:"footer,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
}

// EmbedField represents a field in a Discord embed
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter represents the footer of a Discord embed
type EmbedFooter struct {
	Text string `json:"text"`
}

// NewReportPayload creates the summary embed for a report. The embed is green
// when the player won at least half of the reported games.
func NewReportPayload(report *collector.Report) WebhookPayload {
	summary := report.Summary()

	color := colorRed
	if summary.Games > 0 && summary.WinRate >= 50 {
		color = colorGreen
	}

	embed := Embed{
		Title: fmt.Sprintf("📊 Ranked report: %s", report.Player.Identity),
		Color: color,
		Fields: []EmbedField{
			{Name: "Games", Value: humanize.Comma(int64(summary.Games)), Inline: true},
			{Name: "Record", Value: fmt.Sprintf("%dW %dL", summary.Wins, summary.Losses), Inline: true},
			{Name: "Win Rate", Value: fmt.Sprintf("%.1f%%", summary.WinRate), Inline: true},
			{Name: "Avg KDA", Value: fmt.Sprintf("%.2f", summary.AvgKDA), Inline: true},
			{Name: "Avg Gold/min", Value: fmt.Sprintf("%.1f", summary.AvgGoldPerMin), Inline: true},
			{Name: "Avg Damage", Value: humanize.Comma(int64(summary.AvgDamage)), Inline: true},
			{Name: "Failed Fetches", Value: strconv.Itoa(summary.Failed), Inline: true},
		},
		Footer: &EmbedFooter{
			Text: fmt.Sprintf("%s | run %s", report.Region(), report.RunID),
		},
	}

	if !report.StartedAt.IsZero() {
		embed.Timestamp = report.StartedAt.UTC().Format(time.RFC3339)
	}

	return WebhookPayload{Embeds: []Embed{embed}}
}

// WebhookClient sends notifications to Discord webhooks
type WebhookClient struct {
	webhookURL string
	httpClient *http.Client
}

// NewWebhookClient creates a new WebhookClient
func NewWebhookClient(webhookURL string) *WebhookClient {
	return &WebhookClient{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: defaultWebhookTimeout,
		},
	}
}

// SendReport posts the summary of a report
func (c *WebhookClient) SendReport(ctx context.Context, report *collector.Report) error {
	return c.sendPayload(ctx, NewReportPayload(report))
}

// sendPayload sends a webhook payload with retry on rate limiting
func (c *WebhookClient) sendPayload(ctx context.Context, payload WebhookPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		resp.Body.Close()

		// Discord returns 204 No Content, or 200 with ?wait=true
		if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK {
			return nil
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryAfter(resp.Header.Get("Retry-After"))):
				continue
			}
		}

		return fmt.Errorf("%w: status %d", ErrWebhook, resp.StatusCode)
	}

	return fmt.Errorf("%w: rate limited after %d attempts", ErrWebhook, maxRetries)
}

// retryAfter parses the Retry-After header, which Discord sends in
// (possibly fractional) seconds
func retryAfter(header string) time.Duration {
	if header == "" {
		return time.Second
	}

	seconds, err := strconv.ParseFloat(header, 64)
	if err != nil || seconds < 0 {
		return time.Second
	}

	return time.Duration(seconds * float64(time.Second))
}
