package app

import (
	"context"
	"testing"

	"resale/domain"
	"resale/internal/notifier"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProductNotifiesAdmins(t *testing.T) {
	repo := newFakeRepository()
	seller := seedUser(repo, "seller", domain.RoleUser)
	admin := seedUser(repo, "admin", domain.RoleAdmin)
	category, err := repo.CreateCategory(context.Background(), domain.Category{Name: "Electronics", IsActive: true})
	require.NoError(t, err)

	dispatcher := notifier.New(repo, 16)
	handler := NewCreateProductHandler(repo, dispatcher, nil)

	res, err := handler.Handle(userCtx(seller.ID), &CreateProductRequest{
		CategoryID:    category.ID,
		Title:         "Washing machine",
		OfferedAmount: decimal.NewFromInt(5000),
		Images:        []ProductImageInput{{URI: "products/abc.jpg", IsDefault: true}},
	})
	require.NoError(t, err)

	assert.Equal(t, seller.ID, res.Product.CreatedBy)
	assert.Equal(t, domain.BidCreated, res.Product.BidStatus)
	assert.Equal(t, domain.OrderPending, res.Product.OrderStatus)
	require.Len(t, res.Product.Images, 1)

	dispatcher.Close()

	require.Len(t, repo.notifications, 1)
	assert.Equal(t, []string{admin.ID}, []string(repo.notifications[0].ReceiverIDs))
}

func TestCreateProductRejectsInactiveCategory(t *testing.T) {
	repo := newFakeRepository()
	seller := seedUser(repo, "seller", domain.RoleUser)
	category, err := repo.CreateCategory(context.Background(), domain.Category{Name: "Retired", IsActive: false})
	require.NoError(t, err)

	handler := NewCreateProductHandler(repo, newTestNotifier(t, repo), nil)

	_, err = handler.Handle(userCtx(seller.ID), &CreateProductRequest{
		CategoryID:    category.ID,
		Title:         "Washing machine",
		OfferedAmount: decimal.NewFromInt(5000),
		Images:        []ProductImageInput{{URI: "products/abc.jpg"}},
	})
	requireHTTPError(t, err, fiber.StatusBadRequest, "Please select a valid category")
}

func TestUpdateProductBlockedAfterBidding(t *testing.T) {
	repo := newFakeRepository()
	seller := seedUser(repo, "seller", domain.RoleUser)
	buyer := seedUser(repo, "buyer", domain.RoleUser)
	product := seedProduct(repo, seller.ID, domain.BidCreated, domain.OrderPending)

	_, err := repo.CreateBid(context.Background(), domain.Bid{
		ProductID:    product.ID,
		BidCreatedBy: buyer.ID,
		NewValue:     decimal.NewFromInt(4200),
		BidStatus:    domain.BidCreated,
	})
	require.NoError(t, err)

	handler := NewUpdateProductHandler(repo)

	_, err = handler.Handle(userCtx(seller.ID), &UpdateProductRequest{
		ProductID:     product.ID,
		CategoryID:    product.CategoryID,
		Title:         "Washing machine, barely used",
		OfferedAmount: decimal.NewFromInt(5500),
		Images:        []ProductImageInput{{URI: "products/abc.jpg"}},
	})
	requireHTTPError(t, err, fiber.StatusConflict, "Bidding has already started on this product")
}

func TestUpdateProductOwnerOnly(t *testing.T) {
	repo := newFakeRepository()
	seller := seedUser(repo, "seller", domain.RoleUser)
	other := seedUser(repo, "other", domain.RoleUser)
	product := seedProduct(repo, seller.ID, domain.BidCreated, domain.OrderPending)

	handler := NewUpdateProductHandler(repo)

	_, err := handler.Handle(userCtx(other.ID), &UpdateProductRequest{
		ProductID:     product.ID,
		CategoryID:    product.CategoryID,
		Title:         "Not mine",
		OfferedAmount: decimal.NewFromInt(5500),
		Images:        []ProductImageInput{{URI: "products/abc.jpg"}},
	})
	requireHTTPError(t, err, fiber.StatusForbidden, "Forbidden")
}

func TestListProductsScopedToCaller(t *testing.T) {
	repo := newFakeRepository()
	seller := seedUser(repo, "seller", domain.RoleUser)
	other := seedUser(repo, "other", domain.RoleUser)
	seedProduct(repo, seller.ID, domain.BidCreated, domain.OrderPending)
	seedProduct(repo, other.ID, domain.BidCreated, domain.OrderPending)

	handler := NewListProductsHandler(repo)

	res, err := handler.Handle(userCtx(seller.ID), &ListProductsRequest{})
	require.NoError(t, err)
	require.Len(t, res.Products.Results, 1)
	assert.Equal(t, seller.ID, res.Products.Results[0].CreatedBy)
}
