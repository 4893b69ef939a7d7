package app

import (
	"context"
	"time"

	"resale/domain"
	"resale/pkg/paginate"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows product listings. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID  string
	BidStatus   domain.BidStatus
	OrderStatus domain.OrderStatus
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	CreatedBy   string
}

type UserFilter struct {
	Search string
}

type Repository interface {
	Close() error

	// Categories
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryByID(ctx context.Context, id string) (domain.Category, error)
	CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CountSubcategories(ctx context.Context, id string) (int, error)

	// Products
	CreateProduct(ctx context.Context, product domain.Product, images []domain.ProductImage) (domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	GetProductDetails(ctx context.Context, id string) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product, images []domain.ProductImage) error
	ListProducts(ctx context.Context, filter ProductFilter, page paginate.Params) (paginate.Page[domain.Product], error)

	// Bids
	CountProductBids(ctx context.Context, productID string) (int, error)
	CreateBid(ctx context.Context, bid domain.Bid) (domain.Bid, error)
	GetBid(ctx context.Context, id string) (domain.Bid, error)
	// CounterBid closes the given bid row with a MODIFIED response and appends
	// the next CREATED row in one transaction.
	CounterBid(ctx context.Context, bidID, responderID, notes string, next domain.Bid) (domain.Bid, error)
	// ResolveBid closes the given bid row with an ACCEPTED or REJECTED
	// response; on ACCEPTED the product's accepted amount, bid status and
	// acceptor are updated in the same transaction.
	ResolveBid(ctx context.Context, bid domain.Bid, responderID, notes string, status domain.BidStatus, priceAcceptedBy string) error

	// Orders. The order-status writes are conditional on the expected current
	// state and report whether a row matched, so concurrent requests cannot
	// replay or reverse a transition.
	EstimatePickupDate(ctx context.Context, productID string, date time.Time) (bool, error)
	SetOrderPickedUp(ctx context.Context, productID string) (bool, error)
	BeginPayout(ctx context.Context, productID string) (bool, error)
	CompletePayout(ctx context.Context, payment domain.Payment) error
	AbortPayout(ctx context.Context, productID string) error

	// Users
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByMobile(ctx context.Context, mobile string) (domain.User, error)
	GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (domain.User, error)
	ListUsers(ctx context.Context, filter UserFilter, page paginate.Params) (paginate.Page[domain.User], error)
	GetAdminIDs(ctx context.Context) ([]string, error)
	UpdateUserProfile(ctx context.Context, userID, name, email string) error
	SetUserPassword(ctx context.Context, userID, passwordHash string) error
	SetUserOtp(ctx context.Context, userID, otp string, expiry time.Time) error
	ResetUserPassword(ctx context.Context, userID, passwordHash string) error
	SetMobileChangeOtp(ctx context.Context, userID, tempMobile, otp string, expiry time.Time) error
	CommitMobileChange(ctx context.Context, userID string) error
	UpdateUserFunds(ctx context.Context, userID string, bankAccountNumber, ifscCode, accountHolderName, upi, fundAccountID string) error
	SetUserBlocked(ctx context.Context, userID string, reported bool, reason string) error

	// Payments
	TotalUserEarning(ctx context.Context, userID string) (decimal.Decimal, error)

	// Notifications
	CreateNotification(ctx context.Context, notification domain.Notification) (domain.Notification, error)
	ListUserNotifications(ctx context.Context, userID string, page paginate.Params) (paginate.Page[domain.Notification], error)
	UnreadNotificationCount(ctx context.Context, userID string) (int64, error)
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, userID, notificationID string) error

	// Webhook logs
	CreateWebhookLog(ctx context.Context, logType string, data []byte) error
}
