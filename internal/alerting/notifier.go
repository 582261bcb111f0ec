package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Notification 封裝一次價格預警的內容。
type Notification struct {
	RuleID       int64
	CropName     string
	CurrentPrice decimal.Decimal
	Limit        decimal.Decimal
	Direction    Direction
	PriceDate    time.Time
}

// Direction distinguishes which limit was crossed.
type Direction string

const (
	DirectionAbove Direction = "above"
	DirectionBelow Direction = "below"
)

// Title renders the notification headline.
func (n Notification) Title() string {
	return fmt.Sprintf("%s價格預警", n.CropName)
}

// Message renders the notification body.
func (n Notification) Message() string {
	if n.Direction == DirectionAbove {
		return fmt.Sprintf("目前價格 %s 元已超過上限 %s 元",
			n.CurrentPrice.StringFixed(2), n.Limit.StringFixed(2))
	}
	return fmt.Sprintf("目前價格 %s 元已低於下限 %s 元",
		n.CurrentPrice.StringFixed(2), n.Limit.StringFixed(2))
}

// Notifier 定義預警輸送介面。
type Notifier interface {
	Notify(ctx context.Context, note Notification) error
}

// LogNotifier writes notifications to the structured log. It stands in for
// the desktop toast channel when no delivery endpoint is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier constructs the log channel.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "alert_log").Logger()}
}

// Notify emits the alert as a warning log entry.
func (n *LogNotifier) Notify(_ context.Context, note Notification) error {
	n.logger.Warn().
		Int64("rule_id", note.RuleID).
		Str("crop", note.CropName).
		Str("price", note.CurrentPrice.StringFixed(2)).
		Str("direction", string(note.Direction)).
		Msg(note.Message())
	return nil
}

// WebhookNotifier 透過 HTTP POST 推送 JSON 預警。
type WebhookNotifier struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewWebhookNotifier 構造 webhook 預警器。
func NewWebhookNotifier(endpoint string, timeout time.Duration, logger zerolog.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WebhookNotifier{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "alert_webhook").Logger(),
	}
}

// Notify POSTs the alert payload and expects a 2xx response.
func (n *WebhookNotifier) Notify(ctx context.Context, note Notification) error {
	payload := map[string]any{
		"title":     note.Title(),
		"body":      note.Message(),
		"crop":      note.CropName,
		"price":     note.CurrentPrice.StringFixed(2),
		"limit":     note.Limit.StringFixed(2),
		"direction": string(note.Direction),
		"date":      note.PriceDate.UTC().Format("2006-01-02"),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook 響應碼異常: %d", resp.StatusCode)
	}

	n.logger.Info().
		Str("crop", note.CropName).
		Str("direction", string(note.Direction)).
		Msg("預警已發送 (webhook)")
	return nil
}

var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*WebhookNotifier)(nil)
)
