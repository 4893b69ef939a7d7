package app

import (
	"context"
	"time"

	"resale/internal/middleware"
	"resale/pkg/httperror"
)

type VerifyMobileHandler struct {
	repository Repository
}

func NewVerifyMobileHandler(repository Repository) *VerifyMobileHandler {
	return &VerifyMobileHandler{
		repository: repository,
	}
}

type VerifyMobileRequest struct {
	Otp string `json:"otp" validate:"required,len=4"`
}

type VerifyMobileResponse struct {
	Message string `json:"message"`
}

func (h VerifyMobileHandler) Handle(ctx context.Context, req *VerifyMobileRequest) (*VerifyMobileResponse, error) {
	if err := validateRequest(req, "user.verify_mobile.validation_failed"); err != nil {
		return nil, err
	}

	userID := middleware.UserID(ctx)

	user, err := h.repository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, httperror.NotFound("user.verify_mobile.no_user", httperror.MsgNoUserFound, nil)
	}

	if user.UpdateMobileOtp == nil || *user.UpdateMobileOtp != req.Otp {
		return nil, httperror.BadRequest("user.verify_mobile.incorrect_otp", httperror.MsgIncorrectOtp, nil)
	}
	if user.UpdateMobileOtpExpiry == nil || time.Now().After(*user.UpdateMobileOtpExpiry) {
		return nil, httperror.BadRequest("user.verify_mobile.otp_expired", httperror.MsgOtpExpired, nil)
	}

	if err := h.repository.CommitMobileChange(ctx, userID); err != nil {
		return nil, httperror.InternalServerError("user.verify_mobile.commit_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &VerifyMobileResponse{Message: "Mobile number updated"}, nil
}
