package app

import (
	"context"

	"resale/internal/middleware"
	"resale/pkg/httperror"

	"golang.org/x/crypto/bcrypt"
)

type UpdatePasswordHandler struct {
	repository Repository
}

func NewUpdatePasswordHandler(repository Repository) *UpdatePasswordHandler {
	return &UpdatePasswordHandler{
		repository: repository,
	}
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type UpdatePasswordResponse struct {
	Message string `json:"message"`
}

func (h UpdatePasswordHandler) Handle(ctx context.Context, req *UpdatePasswordRequest) (*UpdatePasswordResponse, error) {
	if err := validateRequest(req, "user.update_password.validation_failed"); err != nil {
		return nil, err
	}

	userID := middleware.UserID(ctx)

	user, err := h.repository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, httperror.NotFound("user.update_password.no_user", httperror.MsgNoUserFound, nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return nil, httperror.BadRequest("user.update_password.incorrect_password", httperror.MsgIncorrectPassword, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperror.InternalServerError("user.update_password.hash_failed", httperror.MsgSomethingWentWrong, nil)
	}

	if err := h.repository.SetUserPassword(ctx, userID, string(hash)); err != nil {
		return nil, httperror.InternalServerError("user.update_password.update_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &UpdatePasswordResponse{Message: "Password updated"}, nil
}
