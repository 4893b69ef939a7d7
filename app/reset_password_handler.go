package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resale/pkg/httperror"

	"golang.org/x/crypto/bcrypt"
)

type ResetPasswordHandler struct {
	repository Repository
}

func NewResetPasswordHandler(repository Repository) *ResetPasswordHandler {
	return &ResetPasswordHandler{
		repository: repository,
	}
}

type ResetPasswordRequest struct {
	Mobile   string `json:"mobile" validate:"required"`
	Otp      string `json:"otp" validate:"required,len=4"`
	Password string `json:"password" validate:"required,min=8"`
}

type ResetPasswordResponse struct {
	Message string `json:"message"`
}

func (h ResetPasswordHandler) Handle(ctx context.Context, req *ResetPasswordRequest) (*ResetPasswordResponse, error) {
	if err := validateRequest(req, "auth.reset_password.validation_failed"); err != nil {
		return nil, err
	}

	user, err := h.repository.GetUserByMobile(ctx, req.Mobile)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("auth.reset_password.no_user", httperror.MsgNoUserFound, nil)
		}
		return nil, httperror.InternalServerError("auth.reset_password.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	if user.Otp == nil || *user.Otp != req.Otp {
		return nil, httperror.BadRequest("auth.reset_password.incorrect_otp", httperror.MsgIncorrectOtp, nil)
	}
	if user.OtpExpiry == nil || time.Now().After(*user.OtpExpiry) {
		return nil, httperror.BadRequest("auth.reset_password.otp_expired", httperror.MsgOtpExpired, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperror.InternalServerError("auth.reset_password.hash_failed", httperror.MsgSomethingWentWrong, nil)
	}

	if err := h.repository.ResetUserPassword(ctx, user.ID, string(hash)); err != nil {
		return nil, httperror.InternalServerError("auth.reset_password.update_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &ResetPasswordResponse{Message: "Password has been reset"}, nil
}
