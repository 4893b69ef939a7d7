package app

import (
	"context"

	"resale/internal/middleware"
	"resale/pkg/httperror"
)

type DeleteNotificationHandler struct {
	repository Repository
}

func NewDeleteNotificationHandler(repository Repository) *DeleteNotificationHandler {
	return &DeleteNotificationHandler{
		repository: repository,
	}
}

type DeleteNotificationRequest struct {
	NotificationID string `query:"notificationId" validate:"omitempty,uuid4"`
}

type DeleteNotificationResponse struct {
	Message string `json:"message"`
}

// Handle removes one notification for the caller, or every notification when
// no id is given. Other receivers keep their copies.
func (h DeleteNotificationHandler) Handle(ctx context.Context, req *DeleteNotificationRequest) (*DeleteNotificationResponse, error) {
	if err := validateRequest(req, "notification.delete.validation_failed"); err != nil {
		return nil, err
	}

	if err := h.repository.DeleteNotification(ctx, middleware.UserID(ctx), req.NotificationID); err != nil {
		return nil, httperror.InternalServerError("notification.delete.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &DeleteNotificationResponse{Message: "Notifications deleted"}, nil
}
