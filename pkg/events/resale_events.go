package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exchanges
const (
	ProductExchange = "resale.product"
	OrderExchange   = "resale.order"
	AuthExchange    = "resale.auth"
)

// Event names
const (
	ProductCreatedEvent = "product.created"
	BidCreatedEvent     = "product.bid.created"
	BidRespondedEvent   = "product.bid.responded"
	OrderUpdatedEvent   = "order.updated"
	OtpRequestedEvent   = "auth.otp.requested"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

type ProductCreatedPayload struct {
	ID            string          `json:"id"`
	CategoryID    string          `json:"categoryId"`
	Title         string          `json:"title"`
	OfferedAmount decimal.Decimal `json:"offeredAmount"`
	CreatedBy     string          `json:"createdBy"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type BidCreatedPayload struct {
	BidID        string          `json:"bidId"`
	ProductID    string          `json:"productId"`
	BidCreatedBy string          `json:"bidCreatedBy"`
	NewValue     decimal.Decimal `json:"newValue"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type BidRespondedPayload struct {
	BidID       string          `json:"bidId"`
	ProductID   string          `json:"productId"`
	RespondedBy string          `json:"respondedBy"`
	BidStatus   int             `json:"bidStatus"`
	NewValue    decimal.Decimal `json:"newValue"`
	RespondedAt time.Time       `json:"respondedAt"`
}

type OrderUpdatedPayload struct {
	ProductID   string     `json:"productId"`
	SellerID    string     `json:"sellerId"`
	SellerEmail string     `json:"sellerEmail"`
	UpdatedBy   string     `json:"updatedBy"`
	OrderStatus int        `json:"orderStatus"`
	Amount      string     `json:"amount"`
	PayoutID    string     `json:"payoutId,omitempty"`
	PickedUpAt  *time.Time `json:"pickedUpAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type OtpRequestedPayload struct {
	UserID      string    `json:"userId"`
	Mobile      string    `json:"mobile"`
	Otp         string    `json:"otp"`
	Purpose     string    `json:"purpose"` // "signup", "reset-password", "update-mobile"
	RequestedAt time.Time `json:"requestedAt"`
}
