package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records a successful payout. It is derived from an order transition
// and immutable once created.
type Payment struct {
	ID        string          `db:"id" json:"id"`
	PaidBy    string          `db:"paid_by" json:"paidBy"`
	PaidTo    string          `db:"paid_to" json:"paidTo"`
	ProductID string          `db:"product_id" json:"productId"`
	PayoutID  string          `db:"payout_id" json:"payoutId"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Status    string          `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}
