package app

import (
	"context"
	"testing"
	"time"

	"resale/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatePickupSchedulesAndReschedules(t *testing.T) {
	repo := newFakeRepository()
	seller := seedSeller(repo)
	admin := seedUser(repo, "admin", domain.RoleAdmin)
	buyer := seedUser(repo, "buyer", domain.RoleUser)

	product := seedProduct(repo, seller.ID, domain.BidCreated, domain.OrderPending)
	product = acceptProduct(repo, product, decimal.NewFromInt(4200), buyer.ID)

	handler := NewEstimatePickupHandler(repo, newTestNotifier(t, repo), nil)

	first := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	res, err := handler.Handle(adminCtx(admin.ID), &EstimatePickupRequest{
		ProductID:    product.ID,
		PickedUpDate: first,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPickupDateEstimated, res.Product.OrderStatus)
	require.NotNil(t, res.Product.PickedUpDate)
	assert.True(t, res.Product.PickedUpDate.Equal(first))

	// Rescheduling before pickup is allowed.
	second := first.AddDate(0, 0, 2)
	res, err = handler.Handle(adminCtx(admin.ID), &EstimatePickupRequest{
		ProductID:    product.ID,
		PickedUpDate: second,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPickupDateEstimated, res.Product.OrderStatus)
	assert.True(t, res.Product.PickedUpDate.Equal(second))
}

func TestEstimatePickupRequiresAcceptedBid(t *testing.T) {
	repo := newFakeRepository()
	seller := seedSeller(repo)
	admin := seedUser(repo, "admin", domain.RoleAdmin)
	product := seedProduct(repo, seller.ID, domain.BidCreated, domain.OrderPending)

	handler := NewEstimatePickupHandler(repo, newTestNotifier(t, repo), nil)

	_, err := handler.Handle(adminCtx(admin.ID), &EstimatePickupRequest{
		ProductID:    product.ID,
		PickedUpDate: time.Now().Add(24 * time.Hour),
	})
	requireHTTPError(t, err, fiber.StatusBadRequest,
		"You are not allowed to access this, Product bid is still in pending state")
}

func TestEstimatePickupAfterPickupConflicts(t *testing.T) {
	repo := newFakeRepository()
	admin, _, product := payoutFixture(t, repo, domain.OrderPickedUp)

	handler := NewEstimatePickupHandler(repo, newTestNotifier(t, repo), nil)

	_, err := handler.Handle(adminCtx(admin.ID), &EstimatePickupRequest{
		ProductID:    product.ID,
		PickedUpDate: time.Now().Add(24 * time.Hour),
	})
	requireHTTPError(t, err, fiber.StatusConflict, "Something Went wrong")

	updated, err := repo.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPickedUp, updated.OrderStatus)
}

func TestEstimatePickupAfterPaymentConflicts(t *testing.T) {
	repo := newFakeRepository()
	admin, _, product := payoutFixture(t, repo, domain.OrderPaid)

	handler := NewEstimatePickupHandler(repo, newTestNotifier(t, repo), nil)

	_, err := handler.Handle(adminCtx(admin.ID), &EstimatePickupRequest{
		ProductID:    product.ID,
		PickedUpDate: time.Now().Add(24 * time.Hour),
	})
	requireHTTPError(t, err, fiber.StatusConflict, "Product has already been paid out")
}

func TestMarkPickedUpMovesForward(t *testing.T) {
	repo := newFakeRepository()
	admin, _, product := payoutFixture(t, repo, domain.OrderPickupDateEstimated)

	handler := NewMarkPickedUpHandler(repo, newTestNotifier(t, repo), nil)

	res, err := handler.Handle(adminCtx(admin.ID), &MarkPickedUpRequest{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPickedUp, res.Product.OrderStatus)
}

func TestMarkPickedUpRequiresEstimate(t *testing.T) {
	repo := newFakeRepository()
	admin, _, product := payoutFixture(t, repo, domain.OrderPending)

	handler := NewMarkPickedUpHandler(repo, newTestNotifier(t, repo), nil)

	_, err := handler.Handle(adminCtx(admin.ID), &MarkPickedUpRequest{ProductID: product.ID})
	requireHTTPError(t, err, fiber.StatusBadRequest, "Pick-up date has not been estimated yet")
}

func TestMarkPickedUpAfterPaymentConflicts(t *testing.T) {
	repo := newFakeRepository()
	admin, _, product := payoutFixture(t, repo, domain.OrderPaid)

	handler := NewMarkPickedUpHandler(repo, newTestNotifier(t, repo), nil)

	_, err := handler.Handle(adminCtx(admin.ID), &MarkPickedUpRequest{ProductID: product.ID})
	requireHTTPError(t, err, fiber.StatusConflict, "Product has already been paid out")

	updated, err := repo.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, updated.OrderStatus)
}

// Full lifecycle: accept, estimate, pick up, pay out.
func TestOrderLifecycleEndToEnd(t *testing.T) {
	repo := newFakeRepository()
	gateway := &fakeGateway{}
	seller := seedSeller(repo)
	admin := seedUser(repo, "admin", domain.RoleAdmin)
	buyer := seedUser(repo, "buyer", domain.RoleUser)
	product := seedProduct(repo, seller.ID, domain.BidCreated, domain.OrderPending)

	dispatcher := newTestNotifier(t, repo)

	bidHandler := NewCreateBidHandler(repo, dispatcher, nil)
	respondHandler := NewRespondBidHandler(repo, dispatcher, nil)
	estimateHandler := NewEstimatePickupHandler(repo, dispatcher, nil)
	pickupHandler := NewMarkPickedUpHandler(repo, dispatcher, nil)
	payoutHandler := NewPayoutHandler(repo, gateway, dispatcher, nil)

	opened, err := bidHandler.Handle(userCtx(buyer.ID), &CreateBidRequest{
		ProductID: product.ID,
		NewValue:  decimal.NewFromInt(3900),
	})
	require.NoError(t, err)

	_, err = respondHandler.Handle(userCtx(seller.ID), &RespondBidRequest{
		BidID:     opened.Bid.ID,
		BidStatus: int(domain.BidAccepted),
	})
	require.NoError(t, err)

	_, err = estimateHandler.Handle(adminCtx(admin.ID), &EstimatePickupRequest{
		ProductID:    product.ID,
		PickedUpDate: time.Now().Add(48 * time.Hour),
	})
	require.NoError(t, err)

	_, err = pickupHandler.Handle(adminCtx(admin.ID), &MarkPickedUpRequest{ProductID: product.ID})
	require.NoError(t, err)

	res, err := payoutHandler.Handle(adminCtx(admin.ID), &PayoutRequest{ProductID: product.ID})
	require.NoError(t, err)
	assert.True(t, res.Payment.Amount.Equal(decimal.NewFromInt(3900)))
	assert.Equal(t, seller.ID, res.Payment.PaidTo)

	final, err := repo.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, final.OrderStatus)
	require.NotNil(t, final.AcceptedAmount)
	assert.True(t, final.AcceptedAmount.Equal(decimal.NewFromInt(3900)))
	require.NotNil(t, final.PriceAcceptedBy)
	assert.Equal(t, buyer.ID, *final.PriceAcceptedBy)
}
