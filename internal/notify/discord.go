package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/donaldgifford/csbluegem-go/internal/metrics"
	"github.com/donaldgifford/csbluegem-go/pkg/bluegem"
)

const (
	colorNormal   = 0x3498DB
	colorStatTrak = 0xE67E22
)

// Discord allows at most 10 embeds per webhook message.
const maxEmbedsPerMessage = 10

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Thumbnail   *discordThumbnail   `json:"thumbnail,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordThumbnail struct {
	URL string `json:"url"`
}

// SendSale sends a single sale alert as a Discord embed.
func (d *DiscordNotifier) SendSale(ctx context.Context, alert *SaleAlert) error {
	embed := buildEmbed(alert)
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{embed},
	}
	return d.post(ctx, payload)
}

// SendBatch sends multiple sale alerts as a single Discord message.
func (d *DiscordNotifier) SendBatch(
	ctx context.Context,
	alerts []SaleAlert,
	watchName string,
) error {
	embeds := make([]discordEmbed, 0, len(alerts))

	limit := min(len(alerts), maxEmbedsPerMessage)

	for i := range limit {
		embeds = append(embeds, buildEmbed(&alerts[i]))
	}

	if len(alerts) > maxEmbedsPerMessage {
		embeds = append(embeds, discordEmbed{
			Title: fmt.Sprintf(
				"... and %d more sales for %s",
				len(alerts)-maxEmbedsPerMessage,
				watchName,
			),
			Color:       colorNormal,
			Description: "Narrow the watch filters to reduce volume.",
		})
	}

	payload := discordWebhookPayload{Embeds: embeds}
	return d.post(ctx, payload)
}

func buildEmbed(alert *SaleAlert) discordEmbed {
	sale := &alert.Sale

	embed := discordEmbed{
		Title: fmt.Sprintf("New sale: %s #%d", alert.Item, sale.Pattern),
		URL:   sale.CSFloatLink,
		Color: typeColor(sale.Type),
		Fields: []discordEmbedField{
			{Name: "Pattern", Value: fmt.Sprintf("%d", sale.Pattern), Inline: true},
			{Name: "Wear", Value: fmt.Sprintf("%g", sale.Wear), Inline: true},
			{Name: "Price", Value: formatPrice(sale.Price, alert.Currency), Inline: true},
			{Name: "Origin", Value: string(sale.Origin), Inline: true},
			{Name: "Date", Value: sale.Timestamp.Format("2006-01-02"), Inline: true},
			{Name: "Type", Value: string(sale.Type), Inline: true},
		},
	}

	if url := sale.Screenshots.InspectURL(); url != "" {
		embed.Thumbnail = &discordThumbnail{URL: url}
	}

	return embed
}

func typeColor(t bluegem.ItemType) int {
	if t == bluegem.TypeStatTrak {
		return colorStatTrak
	}
	return colorNormal
}

func formatPrice(price int, currency bluegem.Currency) string {
	if currency == "" {
		currency = bluegem.CurrencyUSD
	}
	return fmt.Sprintf("%d %s", price, currency)
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	start := time.Now()
	defer func() {
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		metrics.NotificationFailures.Inc()
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.NotificationFailures.Inc()
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
