package app

import (
	"context"

	"resale/pkg/httperror"
	"resale/pkg/token"
)

type RefreshTokenHandler struct {
	repository Repository
}

func NewRefreshTokenHandler(repository Repository) *RefreshTokenHandler {
	return &RefreshTokenHandler{
		repository: repository,
	}
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type RefreshTokenResponse struct {
	Tokens token.Pair `json:"tokens"`
}

func (h RefreshTokenHandler) Handle(ctx context.Context, req *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	if err := validateRequest(req, "auth.refresh.validation_failed"); err != nil {
		return nil, err
	}

	claims, err := token.ParseRefresh(req.RefreshToken)
	if err != nil {
		return nil, httperror.Unauthorized("auth.refresh.invalid_token", httperror.MsgUnauthorized, nil)
	}

	user, err := h.repository.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, httperror.Unauthorized("auth.refresh.no_user", httperror.MsgUnauthorized, nil)
	}
	if user.IsReported {
		return nil, httperror.Forbidden("auth.refresh.blocked", httperror.MsgBlocked, nil)
	}

	tokens, err := token.IssuePair(user.ID, user.Role)
	if err != nil {
		return nil, httperror.InternalServerError("auth.refresh.token_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &RefreshTokenResponse{Tokens: tokens}, nil
}
