package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sell request. It is created by a user, negotiated through bid
// rows and then fulfilled through the order lifecycle. Products are never
// hard-deleted.
type Product struct {
	ID             string           `db:"id" json:"id"`
	CategoryID     string           `db:"category_id" json:"categoryId"`
	Type           *string          `db:"type" json:"type"`
	Title          string           `db:"title" json:"title"`
	Description    *string          `db:"description" json:"description"`
	Brand          *string          `db:"brand" json:"brand"`
	PurchasedYear  *string          `db:"purchased_year" json:"purchasedYear"`
	DistanceDriven *string          `db:"distance_driven" json:"distanceDriven"`
	OfferedAmount  decimal.Decimal  `db:"offered_amount" json:"offeredAmount"`
	AcceptedAmount *decimal.Decimal `db:"accepted_amount" json:"acceptedAmount"`

	BidStatus        BidStatus   `db:"bid_status" json:"bidStatus"`
	OrderStatus      OrderStatus `db:"order_status" json:"orderStatus"`
	PickedUpDate     *time.Time  `db:"picked_up_date" json:"pickedUpDate"`
	PayoutInProgress bool        `db:"payout_in_progress" json:"-"`

	CreatedBy       string  `db:"created_by" json:"createdBy"`
	PriceAcceptedBy *string `db:"price_accepted_by" json:"priceAcceptedBy"`
	PickupAddress   *string `db:"pickup_address" json:"pickupAddress"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	Images     []ProductImage `db:"-" json:"images,omitempty"`
	Category   *Category      `db:"-" json:"category,omitempty"`
	Creator    *UserSummary   `db:"-" json:"createdByDetails,omitempty"`
	BidHistory []Bid          `db:"-" json:"bidHistory,omitempty"`
}

type ProductImage struct {
	ID        string    `db:"id" json:"id"`
	ProductID string    `db:"product_id" json:"productId"`
	URI       string    `db:"uri" json:"uri"`
	IsDefault bool      `db:"is_default" json:"isDefault"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
