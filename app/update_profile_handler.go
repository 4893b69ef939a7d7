package app

import (
	"context"

	"resale/domain"
	"resale/internal/middleware"
	"resale/pkg/httperror"
	"resale/pkg/razorpay"

	"go.uber.org/zap"
)

type UpdateProfileHandler struct {
	repository Repository
	gateway    PaymentGateway
}

func NewUpdateProfileHandler(repository Repository, gateway PaymentGateway) *UpdateProfileHandler {
	return &UpdateProfileHandler{
		repository: repository,
		gateway:    gateway,
	}
}

type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UpdateProfileResponse struct {
	User domain.User `json:"user"`
}

func (h UpdateProfileHandler) Handle(ctx context.Context, req *UpdateProfileRequest) (*UpdateProfileResponse, error) {
	if err := validateRequest(req, "user.update_profile.validation_failed"); err != nil {
		return nil, err
	}

	userID := middleware.UserID(ctx)

	if err := h.repository.UpdateUserProfile(ctx, userID, req.Name, req.Email); err != nil {
		return nil, httperror.InternalServerError("user.update_profile.failed", httperror.MsgSomethingWentWrong, nil)
	}

	user, err := h.repository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, httperror.InternalServerError("user.update_profile.reload_failed", httperror.MsgSomethingWentWrong, nil)
	}

	// Contact sync is best effort; the local profile is authoritative.
	if user.CustomerID != nil {
		err := h.gateway.UpdateContact(ctx, *user.CustomerID, razorpay.ContactParams{
			Name:   user.Name,
			Email:  user.Email,
			Mobile: user.Mobile,
		})
		if err != nil {
			zap.L().Warn("Failed to sync profile to payment gateway",
				zap.String("userId", userID),
				zap.Error(err),
			)
		}
	}

	return &UpdateProfileResponse{User: user}, nil
}
