package app

import (
	"context"

	"resale/internal/middleware"
	"resale/pkg/httperror"
)

type UnreadNotificationsHandler struct {
	repository Repository
}

func NewUnreadNotificationsHandler(repository Repository) *UnreadNotificationsHandler {
	return &UnreadNotificationsHandler{
		repository: repository,
	}
}

type UnreadNotificationsRequest struct{}

type UnreadNotificationsResponse struct {
	Count int64 `json:"count"`
}

func (h UnreadNotificationsHandler) Handle(ctx context.Context, req *UnreadNotificationsRequest) (*UnreadNotificationsResponse, error) {
	count, err := h.repository.UnreadNotificationCount(ctx, middleware.UserID(ctx))
	if err != nil {
		return nil, httperror.InternalServerError("notification.unread_count.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &UnreadNotificationsResponse{Count: count}, nil
}
