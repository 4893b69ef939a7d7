package app

import (
	"context"

	"resale/pkg/events"
)

// ResendOtpHandler reissues a password-reset code. The flow is identical to
// forgot-password; only the route differs for client convenience.
type ResendOtpHandler struct {
	forgot *ForgotPasswordHandler
}

func NewResendOtpHandler(repository Repository, eventPublisher events.Publisher) *ResendOtpHandler {
	return &ResendOtpHandler{
		forgot: NewForgotPasswordHandler(repository, eventPublisher),
	}
}

type ResendOtpRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

func (h ResendOtpHandler) Handle(ctx context.Context, req *ResendOtpRequest) (*ForgotPasswordResponse, error) {
	return h.forgot.Handle(ctx, &ForgotPasswordRequest{Mobile: req.Mobile})
}
