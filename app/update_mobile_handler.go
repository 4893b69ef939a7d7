package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resale/internal/middleware"
	"resale/pkg/config"
	"resale/pkg/events"
	"resale/pkg/httperror"
)

type UpdateMobileHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewUpdateMobileHandler(repository Repository, eventPublisher events.Publisher) *UpdateMobileHandler {
	return &UpdateMobileHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type UpdateMobileRequest struct {
	Mobile string `json:"mobile" validate:"required,e164"`
}

type UpdateMobileResponse struct {
	Message string `json:"message"`
}

// Handle stages a mobile change. The new number only becomes active after the
// OTP sent to it is verified.
func (h UpdateMobileHandler) Handle(ctx context.Context, req *UpdateMobileRequest) (*UpdateMobileResponse, error) {
	if err := validateRequest(req, "user.update_mobile.validation_failed"); err != nil {
		return nil, err
	}

	userID := middleware.UserID(ctx)

	if _, err := h.repository.GetUserByMobile(ctx, req.Mobile); err == nil {
		return nil, httperror.Conflict("user.update_mobile.mobile_exists", httperror.MsgMobileExist, nil)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, httperror.InternalServerError("user.update_mobile.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	otp := generateOtp()
	expiry := time.Now().Add(time.Duration(config.Read().OtpExpiryMinutes) * time.Minute)

	if err := h.repository.SetMobileChangeOtp(ctx, userID, req.Mobile, otp, expiry); err != nil {
		return nil, httperror.InternalServerError("user.update_mobile.otp_failed", httperror.MsgSomethingWentWrong, nil)
	}

	publishEvent(ctx, h.eventPublisher, events.AuthExchange, events.OtpRequestedEvent, events.OtpRequestedPayload{
		UserID:      userID,
		Mobile:      req.Mobile,
		Otp:         otp,
		Purpose:     "update-mobile",
		RequestedAt: time.Now().UTC(),
	})

	return &UpdateMobileResponse{Message: httperror.MsgOtpSent}, nil
}
