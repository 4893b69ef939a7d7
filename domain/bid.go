package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is one row of the append-only negotiation ledger. A round is closed by
// recording the responder on the row; subsequent rounds get fresh rows.
type Bid struct {
	ID           string          `db:"id" json:"id"`
	ProductID    string          `db:"product_id" json:"productId"`
	BidCreatedBy string          `db:"bid_created_by" json:"bidCreatedBy"`
	RespondedBy  *string         `db:"responded_by" json:"respondedBy"`
	NewValue     decimal.Decimal `db:"new_value" json:"newValue"`
	Notes        string          `db:"notes" json:"notes"`
	BidStatus    BidStatus       `db:"bid_status" json:"bidStatus"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`

	BidCreator *UserSummary `db:"-" json:"bidCreator,omitempty"`
	Responder  *UserSummary `db:"-" json:"responder,omitempty"`
}
