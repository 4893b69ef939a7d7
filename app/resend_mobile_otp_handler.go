package app

import (
	"context"
	"time"

	"resale/internal/middleware"
	"resale/pkg/config"
	"resale/pkg/events"
	"resale/pkg/httperror"
)

type ResendMobileOtpHandler struct {
	repository     Repository
	eventPublisher events.Publisher
}

func NewResendMobileOtpHandler(repository Repository, eventPublisher events.Publisher) *ResendMobileOtpHandler {
	return &ResendMobileOtpHandler{
		repository:     repository,
		eventPublisher: eventPublisher,
	}
}

type ResendMobileOtpRequest struct{}

type ResendMobileOtpResponse struct {
	Message string `json:"message"`
}

func (h ResendMobileOtpHandler) Handle(ctx context.Context, req *ResendMobileOtpRequest) (*ResendMobileOtpResponse, error) {
	userID := middleware.UserID(ctx)

	user, err := h.repository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, httperror.NotFound("user.resend_mobile_otp.no_user", httperror.MsgNoUserFound, nil)
	}

	if user.TempMobile == nil || *user.TempMobile == "" {
		return nil, httperror.BadRequest("user.resend_mobile_otp.no_pending_change", httperror.MsgInvalidRequest, nil)
	}

	otp := generateOtp()
	expiry := time.Now().Add(time.Duration(config.Read().OtpExpiryMinutes) * time.Minute)

	if err := h.repository.SetMobileChangeOtp(ctx, userID, *user.TempMobile, otp, expiry); err != nil {
		return nil, httperror.InternalServerError("user.resend_mobile_otp.otp_failed", httperror.MsgSomethingWentWrong, nil)
	}

	publishEvent(ctx, h.eventPublisher, events.AuthExchange, events.OtpRequestedEvent, events.OtpRequestedPayload{
		UserID:      userID,
		Mobile:      *user.TempMobile,
		Otp:         otp,
		Purpose:     "update-mobile",
		RequestedAt: time.Now().UTC(),
	})

	return &ResendMobileOtpResponse{Message: httperror.MsgOtpSent}, nil
}
