package app

import (
	"context"

	"resale/domain"
	"resale/pkg/httperror"
	"resale/pkg/paginate"
)

type ListUsersHandler struct {
	repository Repository
}

func NewListUsersHandler(repository Repository) *ListUsersHandler {
	return &ListUsersHandler{
		repository: repository,
	}
}

type ListUsersRequest struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type ListUsersResponse struct {
	Users paginate.Page[domain.User] `json:"users"`
}

func (h ListUsersHandler) Handle(ctx context.Context, req *ListUsersRequest) (*ListUsersResponse, error) {
	page := paginate.Normalize(req.Page, req.Limit)

	users, err := h.repository.ListUsers(ctx, UserFilter{Search: req.Search}, page)
	if err != nil {
		return nil, httperror.InternalServerError("user.list.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &ListUsersResponse{Users: users}, nil
}
