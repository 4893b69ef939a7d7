package domain

import (
	"time"

	"github.com/lib/pq"
)

// Notification is a fan-out record, not authoritative state. Receiver, read
// and deleted sets are per-user membership arrays.
type Notification struct {
	ID          string           `db:"id" json:"id"`
	SenderID    string           `db:"sender_id" json:"senderId"`
	ReceiverIDs pq.StringArray   `db:"receiver_ids" json:"receiverIds"`
	Type        NotificationType `db:"type" json:"type"`
	Title       string           `db:"title" json:"title"`
	Description string           `db:"description" json:"description"`
	ProductID   *string          `db:"product_id" json:"productId"`
	ReadBy      pq.StringArray   `db:"read_by" json:"readBy"`
	DeletedBy   pq.StringArray   `db:"deleted_by" json:"-"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`

	Sender  *UserSummary `db:"-" json:"senderDetail,omitempty"`
	Product *Product     `db:"-" json:"productDetail,omitempty"`
}
