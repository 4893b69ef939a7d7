package app

import (
	"context"
	"database/sql"
	"strings"
	"sync"
	"time"

	"resale/domain"
	"resale/pkg/paginate"
	"resale/pkg/razorpay"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeRepository is an in-memory Repository that mirrors the conditional
// update semantics of the Postgres implementation.
type fakeRepository struct {
	mu sync.Mutex

	users         map[string]domain.User
	categories    map[string]domain.Category
	products      map[string]domain.Product
	bids          map[string]domain.Bid
	bidOrder      []string
	payments      []domain.Payment
	notifications []domain.Notification
	webhooks      []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:      make(map[string]domain.User),
		categories: make(map[string]domain.Category),
		products:   make(map[string]domain.Product),
		bids:       make(map[string]domain.Bid),
	}
}

func (f *fakeRepository) Close() error { return nil }

// Categories

func (f *fakeRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeRepository) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.categories[id]
	if !ok {
		return domain.Category{}, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	category.ID = uuid.New().String()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	f.categories[category.ID] = category
	return category, nil
}

func (f *fakeRepository) DeleteCategory(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.categories[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeRepository) CountSubcategories(ctx context.Context, id string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, c := range f.categories {
		if c.ParentID != nil && *c.ParentID == id {
			count++
		}
	}
	return count, nil
}

// Products

func (f *fakeRepository) CreateProduct(ctx context.Context, product domain.Product, images []domain.ProductImage) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product.ID = uuid.New().String()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	for i := range images {
		images[i].ID = uuid.New().String()
		images[i].ProductID = product.ID
	}
	product.Images = images
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeRepository) GetProductDetails(ctx context.Context, id string) (domain.Product, error) {
	return f.GetProduct(ctx, id)
}

func (f *fakeRepository) UpdateProduct(ctx context.Context, product domain.Product, images []domain.ProductImage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[product.ID]; !ok {
		return sql.ErrNoRows
	}
	product.UpdatedAt = time.Now()
	product.Images = images
	f.products[product.ID] = product
	return nil
}

func (f *fakeRepository) ListProducts(ctx context.Context, filter ProductFilter, page paginate.Params) (paginate.Page[domain.Product], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Product, 0)
	for _, p := range f.products {
		if filter.CreatedBy != "" && p.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.BidStatus != 0 && p.BidStatus != filter.BidStatus {
			continue
		}
		if filter.OrderStatus != 0 && p.OrderStatus != filter.OrderStatus {
			continue
		}
		out = append(out, p)
	}
	return paginate.NewPage(out, page, int64(len(out))), nil
}

// Bids

func (f *fakeRepository) CountProductBids(ctx context.Context, productID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bids {
		if b.ProductID == productID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) CreateBid(ctx context.Context, bid domain.Bid) (domain.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertBid(bid), nil
}

func (f *fakeRepository) insertBid(bid domain.Bid) domain.Bid {
	bid.ID = uuid.New().String()
	bid.CreatedAt = time.Now()
	bid.UpdatedAt = bid.CreatedAt
	f.bids[bid.ID] = bid
	f.bidOrder = append(f.bidOrder, bid.ID)
	return bid
}

func (f *fakeRepository) GetBid(ctx context.Context, id string) (domain.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bids[id]
	if !ok {
		return domain.Bid{}, sql.ErrNoRows
	}
	return b, nil
}

func (f *fakeRepository) closeBid(bidID, responderID, notes string, status domain.BidStatus) error {
	b, ok := f.bids[bidID]
	if !ok || b.BidStatus != domain.BidCreated {
		return sql.ErrNoRows
	}
	b.RespondedBy = &responderID
	if notes != "" {
		b.Notes = notes
	}
	b.BidStatus = status
	b.UpdatedAt = time.Now()
	f.bids[bidID] = b
	return nil
}

func (f *fakeRepository) CounterBid(ctx context.Context, bidID, responderID, notes string, next domain.Bid) (domain.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.closeBid(bidID, responderID, notes, domain.BidModified); err != nil {
		return domain.Bid{}, err
	}
	return f.insertBid(next), nil
}

func (f *fakeRepository) ResolveBid(ctx context.Context, bid domain.Bid, responderID, notes string, status domain.BidStatus, priceAcceptedBy string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.closeBid(bid.ID, responderID, notes, status); err != nil {
		return err
	}
	if status == domain.BidAccepted {
		p := f.products[bid.ProductID]
		amount := bid.NewValue
		p.AcceptedAmount = &amount
		p.BidStatus = domain.BidAccepted
		p.PriceAcceptedBy = &priceAcceptedBy
		p.UpdatedAt = time.Now()
		f.products[bid.ProductID] = p
	}
	return nil
}

// Orders

func (f *fakeRepository) EstimatePickupDate(ctx context.Context, productID string, date time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok || p.BidStatus != domain.BidAccepted {
		return false, nil
	}
	if p.OrderStatus != domain.OrderPending && p.OrderStatus != domain.OrderPickupDateEstimated {
		return false, nil
	}
	p.OrderStatus = domain.OrderPickupDateEstimated
	p.PickedUpDate = &date
	f.products[productID] = p
	return true, nil
}

func (f *fakeRepository) SetOrderPickedUp(ctx context.Context, productID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok || p.BidStatus != domain.BidAccepted || p.OrderStatus != domain.OrderPickupDateEstimated {
		return false, nil
	}
	p.OrderStatus = domain.OrderPickedUp
	f.products[productID] = p
	return true, nil
}

func (f *fakeRepository) BeginPayout(ctx context.Context, productID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok || p.BidStatus != domain.BidAccepted || p.OrderStatus != domain.OrderPickedUp || p.PayoutInProgress {
		return false, nil
	}
	p.PayoutInProgress = true
	f.products[productID] = p
	return true, nil
}

func (f *fakeRepository) CompletePayout(ctx context.Context, payment domain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[payment.ProductID]
	if !ok || p.OrderStatus != domain.OrderPickedUp {
		return sql.ErrNoRows
	}
	payment.ID = uuid.New().String()
	payment.CreatedAt = time.Now()
	f.payments = append(f.payments, payment)
	p.OrderStatus = domain.OrderPaid
	p.PayoutInProgress = false
	f.products[payment.ProductID] = p
	return nil
}

func (f *fakeRepository) AbortPayout(ctx context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[productID]
	if !ok {
		return sql.ErrNoRows
	}
	p.PayoutInProgress = false
	f.products[productID] = p
	return nil
}

// Users

func (f *fakeRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeRepository) addUser(user domain.User) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.User{}, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, sql.ErrNoRows
}

func (f *fakeRepository) GetUserByMobile(ctx context.Context, mobile string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Mobile == mobile {
			return u, nil
		}
	}
	return domain.User{}, sql.ErrNoRows
}

func (f *fakeRepository) GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (domain.User, error) {
	if u, err := f.GetUserByEmail(ctx, email); err == nil && email != "" {
		return u, nil
	}
	if u, err := f.GetUserByMobile(ctx, mobile); err == nil && mobile != "" {
		return u, nil
	}
	return domain.User{}, sql.ErrNoRows
}

func (f *fakeRepository) ListUsers(ctx context.Context, filter UserFilter, page paginate.Params) (paginate.Page[domain.User], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0)
	for _, u := range f.users {
		if u.Role == domain.RoleAdmin {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, u)
	}
	return paginate.NewPage(out, page, int64(len(out))), nil
}

func (f *fakeRepository) GetAdminIDs(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0)
	for _, u := range f.users {
		if u.Role == domain.RoleAdmin {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (f *fakeRepository) UpdateUserProfile(ctx context.Context, userID, name, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.Name = name
	u.Email = strings.ToLower(email)
	f.users[userID] = u
	return nil
}

func (f *fakeRepository) SetUserPassword(ctx context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.Password = passwordHash
	f.users[userID] = u
	return nil
}

func (f *fakeRepository) SetUserOtp(ctx context.Context, userID, otp string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.Otp = &otp
	u.OtpExpiry = &expiry
	f.users[userID] = u
	return nil
}

func (f *fakeRepository) ResetUserPassword(ctx context.Context, userID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.Password = passwordHash
	u.Otp = nil
	u.OtpExpiry = nil
	f.users[userID] = u
	return nil
}

func (f *fakeRepository) SetMobileChangeOtp(ctx context.Context, userID, tempMobile, otp string, expiry time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.TempMobile = &tempMobile
	u.UpdateMobileOtp = &otp
	u.UpdateMobileOtpExpiry = &expiry
	f.users[userID] = u
	return nil
}

func (f *fakeRepository) CommitMobileChange(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok || u.TempMobile == nil {
		return sql.ErrNoRows
	}
	u.Mobile = *u.TempMobile
	u.TempMobile = nil
	u.UpdateMobileOtp = nil
	u.UpdateMobileOtpExpiry = nil
	f.users[userID] = u
	return nil
}

func (f *fakeRepository) UpdateUserFunds(ctx context.Context, userID string, bankAccountNumber, ifscCode, accountHolderName, upi, fundAccountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.BankAccountNumber = &bankAccountNumber
	u.IFSCCode = &ifscCode
	u.AccountHolderName = &accountHolderName
	u.UPI = &upi
	u.FundAccountID = &fundAccountID
	f.users[userID] = u
	return nil
}

func (f *fakeRepository) SetUserBlocked(ctx context.Context, userID string, reported bool, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return sql.ErrNoRows
	}
	u.IsReported = reported
	u.ReasonForReporting = &reason
	f.users[userID] = u
	return nil
}

// Payments

func (f *fakeRepository) TotalUserEarning(ctx context.Context, userID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := decimal.Zero
	for _, p := range f.payments {
		if p.PaidTo == userID {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

// Notifications

func (f *fakeRepository) CreateNotification(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	notification.ID = uuid.New().String()
	notification.CreatedAt = time.Now()
	f.notifications = append(f.notifications, notification)
	return notification, nil
}

func (f *fakeRepository) ListUserNotifications(ctx context.Context, userID string, page paginate.Params) (paginate.Page[domain.Notification], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Notification, 0)
	for _, n := range f.notifications {
		if contains(n.ReceiverIDs, userID) && !contains(n.DeletedBy, userID) {
			out = append(out, n)
		}
	}
	return paginate.NewPage(out, page, int64(len(out))), nil
}

func (f *fakeRepository) UnreadNotificationCount(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, n := range f.notifications {
		if contains(n.ReceiverIDs, userID) && !contains(n.ReadBy, userID) && !contains(n.DeletedBy, userID) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if contains(f.notifications[i].ReceiverIDs, userID) && !contains(f.notifications[i].ReadBy, userID) {
			f.notifications[i].ReadBy = append(f.notifications[i].ReadBy, userID)
		}
	}
	return nil
}

func (f *fakeRepository) DeleteNotification(ctx context.Context, userID, notificationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notifications {
		if notificationID != "" && f.notifications[i].ID != notificationID {
			continue
		}
		if contains(f.notifications[i].ReceiverIDs, userID) {
			f.notifications[i].DeletedBy = append(f.notifications[i].DeletedBy, userID)
		}
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Webhook logs

func (f *fakeRepository) CreateWebhookLog(ctx context.Context, logType string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.webhooks = append(f.webhooks, logType)
	return nil
}

// fakeGateway records calls and can be primed to fail.
type fakeGateway struct {
	mu          sync.Mutex
	payoutErr   error
	payouts     []razorpay.PayoutParams
	contacts    []razorpay.ContactParams
	fundAccs    []razorpay.FundAccountParams
	nextPayout  razorpay.Payout
	nextContact razorpay.Contact
	nextFund    razorpay.FundAccount
}

func (g *fakeGateway) CreateContact(ctx context.Context, params razorpay.ContactParams) (razorpay.Contact, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.contacts = append(g.contacts, params)
	if g.nextContact.ID == "" {
		g.nextContact = razorpay.Contact{ID: "cont_" + uuid.New().String()[:8]}
	}
	return g.nextContact, nil
}

func (g *fakeGateway) UpdateContact(ctx context.Context, contactID string, params razorpay.ContactParams) error {
	return nil
}

func (g *fakeGateway) CreateFundAccount(ctx context.Context, params razorpay.FundAccountParams) (razorpay.FundAccount, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fundAccs = append(g.fundAccs, params)
	if g.nextFund.ID == "" {
		g.nextFund = razorpay.FundAccount{ID: "fa_" + uuid.New().String()[:8]}
	}
	return g.nextFund, nil
}

func (g *fakeGateway) CreatePayout(ctx context.Context, params razorpay.PayoutParams) (razorpay.Payout, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.payoutErr != nil {
		return razorpay.Payout{}, g.payoutErr
	}
	g.payouts = append(g.payouts, params)
	if g.nextPayout.ID == "" {
		g.nextPayout = razorpay.Payout{ID: "pout_" + uuid.New().String()[:8], Status: "processed"}
	}
	return g.nextPayout, nil
}
