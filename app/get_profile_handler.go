package app

import (
	"context"

	"resale/domain"
	"resale/internal/middleware"
	"resale/pkg/httperror"

	"github.com/shopspring/decimal"
)

type GetProfileHandler struct {
	repository Repository
}

func NewGetProfileHandler(repository Repository) *GetProfileHandler {
	return &GetProfileHandler{
		repository: repository,
	}
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	User         domain.User     `json:"user"`
	TotalEarning decimal.Decimal `json:"totalEarning"`
}

func (h GetProfileHandler) Handle(ctx context.Context, req *GetProfileRequest) (*GetProfileResponse, error) {
	userID := middleware.UserID(ctx)

	user, err := h.repository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, httperror.NotFound("user.profile.no_user", httperror.MsgNoUserFound, nil)
	}

	earning, err := h.repository.TotalUserEarning(ctx, userID)
	if err != nil {
		return nil, httperror.InternalServerError("user.profile.earning_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &GetProfileResponse{User: user, TotalEarning: earning}, nil
}
