package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tourbook/catalog/internal/observability"
)

type DiscordWebhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type DiscordEmbed struct {
	Title     string                `json:"title"`
	Color     int                   `json:"color"`
	Fields    []DiscordWebhookField `json:"fields"`
	Timestamp string                `json:"timestamp"`
}

type DiscordWebhookRequest struct {
	Username string         `json:"username"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type SlackAttachment struct {
	Color     string       `json:"color"`
	Title     string       `json:"title"`
	Fields    []SlackField `json:"fields"`
	Timestamp int64        `json:"ts"`
}

type SlackWebhookRequest struct {
	Username    string            `json:"username"`
	Text        string            `json:"text"`
	Attachments []SlackAttachment `json:"attachments"`
}

const (
	WebhookFormatJSON    = "json"
	WebhookFormatDiscord = "discord"
	WebhookFormatSlack   = "slack"

	ColorRed    = 16711680 // deleted
	ColorGreen  = 65280    // created
	ColorOrange = 16753920 // updated

	Username = "Tour Catalog"

	webhookQueueSize = 256
)

func discordColor(action string) int {
	switch action {
	case ActionCreated:
		return ColorGreen
	case ActionDeleted:
		return ColorRed
	default:
		return ColorOrange
	}
}

func slackColor(action string) string {
	switch action {
	case ActionCreated:
		return "good"
	case ActionDeleted:
		return "danger"
	default:
		return "warning"
	}
}

// webhookPayload renders an event in the receiver's format.
func webhookPayload(format string, e Event, now time.Time) (any, error) {
	title := fmt.Sprintf("%s %d %s", e.Entity, e.ID, e.Action)

	switch format {
	case "", WebhookFormatJSON:
		return e, nil
	case WebhookFormatDiscord:
		return DiscordWebhookRequest{
			Username: Username,
			Embeds: []DiscordEmbed{{
				Title: title,
				Color: discordColor(e.Action),
				Fields: []DiscordWebhookField{
					{Name: "Entity", Value: e.Entity, Inline: true},
					{Name: "ID", Value: fmt.Sprint(e.ID), Inline: true},
					{Name: "Action", Value: e.Action, Inline: true},
				},
				Timestamp: now.Format(time.RFC3339),
			}},
		}, nil
	case WebhookFormatSlack:
		return SlackWebhookRequest{
			Username: Username,
			Text:     e.Type,
			Attachments: []SlackAttachment{{
				Color: slackColor(e.Action),
				Title: title,
				Fields: []SlackField{
					{Title: "Entity", Value: e.Entity, Short: true},
					{Title: "ID", Value: fmt.Sprint(e.ID), Short: true},
				},
				Timestamp: now.Unix(),
			}},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported webhook format: %s", format)
	}
}

// WebhookPublisher posts catalog events to an HTTP endpoint from a background
// worker. Publish never blocks; events are dropped when the queue is full.
type WebhookPublisher struct {
	url    string
	format string
	client *http.Client
	queue  chan Event
}

func NewWebhookPublisher(url, format string, client *http.Client) (*WebhookPublisher, error) {
	if _, err := webhookPayload(format, Event{}, time.Now()); err != nil {
		return nil, err
	}

	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &WebhookPublisher{
		url:    url,
		format: format,
		client: client,
		queue:  make(chan Event, webhookQueueSize),
	}, nil
}

func (w *WebhookPublisher) Publish(e Event) {
	select {
	case w.queue <- e:
	default:
		observability.WebhookDeliveriesTotal.WithLabelValues("dropped").Inc()
		slog.Warn("Webhook queue full, dropping event", "type", e.Type, "id", e.ID)
	}
}

// Run delivers queued events until ctx is cancelled.
func (w *WebhookPublisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e := <-w.queue:
			if err := w.send(ctx, e); err != nil {
				observability.WebhookDeliveriesTotal.WithLabelValues("failed").Inc()
				slog.Warn("Failed to deliver webhook", "error", err, "type", e.Type, "id", e.ID)
				continue
			}
			observability.WebhookDeliveriesTotal.WithLabelValues("delivered").Inc()
		}
	}
}

func (w *WebhookPublisher) send(ctx context.Context, e Event) error {
	payload, err := webhookPayload(w.format, e, time.Now())

	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)

	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))

	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)

	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
