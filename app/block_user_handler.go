package app

import (
	"context"
	"database/sql"
	"errors"

	"resale/pkg/httperror"
)

type BlockUserHandler struct {
	repository Repository
}

func NewBlockUserHandler(repository Repository) *BlockUserHandler {
	return &BlockUserHandler{
		repository: repository,
	}
}

type BlockUserRequest struct {
	UserID  string `json:"userId" validate:"required,uuid4"`
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason"`
}

type BlockUserResponse struct {
	Message string `json:"message"`
}

func (h BlockUserHandler) Handle(ctx context.Context, req *BlockUserRequest) (*BlockUserResponse, error) {
	if err := validateRequest(req, "user.block.validation_failed"); err != nil {
		return nil, err
	}

	if err := h.repository.SetUserBlocked(ctx, req.UserID, req.Blocked, req.Reason); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("user.block.no_user", httperror.MsgNoUserFound, nil)
		}
		return nil, httperror.InternalServerError("user.block.failed", httperror.MsgSomethingWentWrong, nil)
	}

	message := "User has been unblocked"
	if req.Blocked {
		message = "User has been blocked"
	}
	return &BlockUserResponse{Message: message}, nil
}
