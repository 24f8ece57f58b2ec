package payment

import (
	"encoding/json"
	"fmt"
	"strings"
)

const EventPaymentCaptured = "payment.captured"

// WebhookEvent is the subset of a gateway webhook body that we use.
type WebhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity PaymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// PaymentEntity describes one payment. Amount is in minor units.
type PaymentEntity struct {
	ID       string          `json:"id"`
	OrderID  string          `json:"order_id"`
	Amount   int64           `json:"amount"`
	Currency string          `json:"currency"`
	Status   string          `json:"status"`
	Notes    json.RawMessage `json:"notes"`
}

// Note returns a string note attached at checkout, or "". The gateway sends
// notes as an object, or as an empty array when there are none.
func (p PaymentEntity) Note(key string) string {
	if len(p.Notes) == 0 {
		return ""
	}
	var notes map[string]interface{}
	if err := json.Unmarshal(p.Notes, &notes); err != nil {
		return ""
	}
	value, _ := notes[key].(string)
	return strings.TrimSpace(value)
}

// ParseWebhook decodes a webhook body.
func ParseWebhook(raw []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("invalid webhook payload: %w", err)
	}
	if event.Event == "" {
		return nil, fmt.Errorf("invalid webhook payload: missing event")
	}
	return &event, nil
}
