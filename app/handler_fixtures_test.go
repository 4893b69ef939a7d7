package app

import (
	"context"
	"testing"

	"resale/domain"
	"resale/internal/middleware"
	"resale/internal/notifier"
	"resale/pkg/httperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(repo *fakeRepository, name string, role domain.UserRole) domain.User {
	return repo.addUser(domain.User{
		Name:   name,
		Email:  name + "@example.com",
		Mobile: "+919000000000" + name,
		Role:   role,
	})
}

func seedSeller(repo *fakeRepository) domain.User {
	fundAccountID := "fa_seed"
	user := seedUser(repo, "seller", domain.RoleUser)
	user.FundAccountID = &fundAccountID
	repo.addUser(user)
	return user
}

func seedProduct(repo *fakeRepository, ownerID string, bidStatus domain.BidStatus, orderStatus domain.OrderStatus) domain.Product {
	product, _ := repo.CreateProduct(context.Background(), domain.Product{
		CategoryID:    "11111111-1111-4111-8111-111111111111",
		Title:         "Washing machine",
		OfferedAmount: decimal.NewFromInt(5000),
		BidStatus:     bidStatus,
		OrderStatus:   orderStatus,
		CreatedBy:     ownerID,
	}, nil)
	return product
}

func acceptProduct(repo *fakeRepository, product domain.Product, amount decimal.Decimal, acceptedBy string) domain.Product {
	product.BidStatus = domain.BidAccepted
	product.AcceptedAmount = &amount
	product.PriceAcceptedBy = &acceptedBy
	repo.mu.Lock()
	repo.products[product.ID] = product
	repo.mu.Unlock()
	return product
}

func userCtx(userID string) context.Context {
	return middleware.WithUser(context.Background(), userID, domain.RoleUser)
}

func adminCtx(userID string) context.Context {
	return middleware.WithUser(context.Background(), userID, domain.RoleAdmin)
}

func newTestNotifier(t *testing.T, repo *fakeRepository) *notifier.Notifier {
	t.Helper()
	n := notifier.New(repo, 16)
	t.Cleanup(n.Close)
	return n
}

func requireHTTPError(t *testing.T, err error, status int, message string) *httperror.Error {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*httperror.Error)
	require.True(t, ok, "expected *httperror.Error, got %T", err)
	require.Equal(t, status, httpErr.Status)
	require.Equal(t, message, httpErr.Message)
	return httpErr
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}
