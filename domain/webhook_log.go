package domain

import (
	"encoding/json"
	"time"
)

// WebhookLog is an opaque audit record of a payment-gateway callback. It never
// feeds back into product or order state.
type WebhookLog struct {
	ID        string          `db:"id" json:"id"`
	Type      string          `db:"type" json:"type"`
	Data      json.RawMessage `db:"data" json:"data"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}
