package app

import (
	"context"

	"resale/internal/middleware"
	"resale/pkg/httperror"
)

type ReadNotificationsHandler struct {
	repository Repository
}

func NewReadNotificationsHandler(repository Repository) *ReadNotificationsHandler {
	return &ReadNotificationsHandler{
		repository: repository,
	}
}

type ReadNotificationsRequest struct{}

type ReadNotificationsResponse struct {
	Message string `json:"message"`
}

func (h ReadNotificationsHandler) Handle(ctx context.Context, req *ReadNotificationsRequest) (*ReadNotificationsResponse, error) {
	if err := h.repository.MarkAllNotificationsRead(ctx, middleware.UserID(ctx)); err != nil {
		return nil, httperror.InternalServerError("notification.read_all.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &ReadNotificationsResponse{Message: "Notifications marked as read"}, nil
}
