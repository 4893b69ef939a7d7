package app

import (
	"context"

	"resale/pkg/razorpay"
)

// PaymentGateway is the payout provider surface used by the handlers.
// Implemented by pkg/razorpay; faked in tests.
type PaymentGateway interface {
	CreateContact(ctx context.Context, params razorpay.ContactParams) (razorpay.Contact, error)
	UpdateContact(ctx context.Context, contactID string, params razorpay.ContactParams) error
	CreateFundAccount(ctx context.Context, params razorpay.FundAccountParams) (razorpay.FundAccount, error)
	CreatePayout(ctx context.Context, params razorpay.PayoutParams) (razorpay.Payout, error)
}
