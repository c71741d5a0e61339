package alert

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/herdtrack/internal/config"
	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

// Client delivers health alerts to an external webhook.
type Client interface {
	SendHealthAlert(ctx context.Context, alert HealthAlert) error
}

// HealthAlert is the JSON payload posted to the webhook.
type HealthAlert struct {
	TenantID    string              `json:"tenant_id"`
	GeneratedAt time.Time           `json:"generated_at"`
	Summary     string              `json:"summary"`
	Flags       []models.HealthFlag `json:"flags"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewClient builds a webhook alert client from the provided configuration.
func NewClient(cfg config.AlertConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	if cfg.AuthToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.AuthToken))
	}

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: cfg.WebhookURL,
	}
}

// SendHealthAlert posts the alert payload to the configured webhook.
func (c *WebhookClient) SendHealthAlert(ctx context.Context, alert HealthAlert) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("send health alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
