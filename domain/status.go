package domain

// BidStatus is the lifecycle of a single bid row. MODIFIED is never terminal:
// responding with MODIFIED spawns a fresh CREATED row for the next round.
type BidStatus int

const (
	BidCreated  BidStatus = 1
	BidAccepted BidStatus = 2
	BidRejected BidStatus = 3
	BidModified BidStatus = 4
)

func (s BidStatus) Valid() bool {
	return s >= BidCreated && s <= BidModified
}

// OrderStatus is the post-acceptance fulfilment lifecycle. Strictly
// forward-only: no operation may move it backwards.
type OrderStatus int

const (
	OrderPending             OrderStatus = 1
	OrderPickupDateEstimated OrderStatus = 2
	OrderPickedUp            OrderStatus = 3
	OrderPaid                OrderStatus = 4
)

// UserRole is the closed set of roles checked by the auth middleware.
type UserRole int

const (
	RoleAdmin UserRole = 1
	RoleUser  UserRole = 2
)

type NotificationType int

const (
	NotificationBid   NotificationType = 1
	NotificationOrder NotificationType = 2
)
