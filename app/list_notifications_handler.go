package app

import (
	"context"

	"resale/domain"
	"resale/internal/middleware"
	"resale/pkg/httperror"
	"resale/pkg/paginate"
)

type ListNotificationsHandler struct {
	repository Repository
}

func NewListNotificationsHandler(repository Repository) *ListNotificationsHandler {
	return &ListNotificationsHandler{
		repository: repository,
	}
}

type ListNotificationsRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

type ListNotificationsResponse struct {
	Notifications paginate.Page[domain.Notification] `json:"notifications"`
}

func (h ListNotificationsHandler) Handle(ctx context.Context, req *ListNotificationsRequest) (*ListNotificationsResponse, error) {
	userID := middleware.UserID(ctx)

	notifications, err := h.repository.ListUserNotifications(ctx, userID, paginate.Normalize(req.Page, req.Limit))
	if err != nil {
		return nil, httperror.InternalServerError("notification.list.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &ListNotificationsResponse{Notifications: notifications}, nil
}
