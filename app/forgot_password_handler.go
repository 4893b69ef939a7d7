package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resale/pkg/config"
	"resale/pkg/events"
	"resale/pkg/httperror"
)

type ForgotPasswordHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewForgotPasswordHandler(repository Repository, eventPublisher events.Publisher) *ForgotPasswordHandler {
	return &ForgotPasswordHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type ForgotPasswordRequest struct {
	Mobile string `json:"mobile" validate:"required"`
}

type ForgotPasswordResponse struct {
	Message string `json:"message"`
}

func (h ForgotPasswordHandler) Handle(ctx context.Context, req *ForgotPasswordRequest) (*ForgotPasswordResponse, error) {
	if err := validateRequest(req, "auth.forgot_password.validation_failed"); err != nil {
		return nil, err
	}

	user, err := h.repository.GetUserByMobile(ctx, req.Mobile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("auth.forgot_password.no_user", httperror.MsgNoUserFound, nil)
		}
		return nil, httperror.InternalServerError("auth.forgot_password.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	otp := generateOtp()
	expiry := time.Now().Add(time.Duration(config.Read().OtpExpiryMinutes) * time.Minute)

	if err := h.repository.SetUserOtp(ctx, user.ID, otp, expiry); err != nil {
		return nil, httperror.InternalServerError("auth.forgot_password.otp_failed", httperror.MsgSomethingWentWrong, nil)
	}

	publishEvent(ctx, h.eventPublisher, events.AuthExchange, events.OtpRequestedEvent, events.OtpRequestedPayload{
		UserID:      user.ID,
		Mobile:      user.Mobile,
		Otp:         otp,
		Purpose:     "reset-password",
		RequestedAt: time.Now().UTC(),
	})

	return &ForgotPasswordResponse{Message: httperror.MsgOtpSent}, nil
}
