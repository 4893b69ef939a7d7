package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"resale/domain"
	"resale/internal/middleware"
	"resale/internal/notifier"
	"resale/pkg/events"
	"resale/pkg/httperror"
)

type MarkPickedUpHandler struct {
	repository     Repository
	notifier       *notifier.Notifier
	eventPublisher events.Publisher
}

func NewMarkPickedUpHandler(repository Repository, n *notifier.Notifier, eventPublisher events.Publisher) *MarkPickedUpHandler {
	return &MarkPickedUpHandler{
		repository:     repository,
		notifier:       n,
		eventPublisher: eventPublisher,
	}
}

type MarkPickedUpRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
}

type MarkPickedUpResponse struct {
	Product domain.Product `json:"product"`
}

func (h MarkPickedUpHandler) Handle(ctx context.Context, req *MarkPickedUpRequest) (*MarkPickedUpResponse, error) {
	if err := validateRequest(req, "order.picked_up.validation_failed"); err != nil {
		return nil, err
	}

	product, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("order.picked_up.not_found", httperror.MsgProductNotFound, nil)
		}
		return nil, httperror.InternalServerError("order.picked_up.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	if product.BidStatus != domain.BidAccepted {
		return nil, httperror.BadRequest("order.picked_up.not_accepted", httperror.MsgProductNotAccepted, nil)
	}
	if product.OrderStatus == domain.OrderPaid {
		return nil, httperror.Conflict("order.picked_up.paid", httperror.MsgProductPaid, nil)
	}
	if product.OrderStatus == domain.OrderPending {
		return nil, httperror.BadRequest("order.picked_up.not_estimated", httperror.MsgPickupNotEstimated, nil)
	}

	moved, err := h.repository.SetOrderPickedUp(ctx, req.ProductID)
	if err != nil {
		return nil, httperror.InternalServerError("order.picked_up.failed", httperror.MsgSomethingWentWrong, nil)
	}
	if !moved {
		return nil, httperror.Conflict("order.picked_up.conflict", httperror.MsgSomethingWentWrong, nil)
	}

	updated, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, httperror.InternalServerError("order.picked_up.reload_failed", httperror.MsgSomethingWentWrong, nil)
	}

	userID := middleware.UserID(ctx)

	h.notifier.Notify(notifier.Event{
		Kind:        notifier.OrderUpdated,
		SenderID:    userID,
		ReceiverIDs: []string{updated.CreatedBy},
		ProductID:   updated.ID,
		Product:     updated.Title,
		OrderStatus: updated.OrderStatus,
	})

	publishEvent(ctx, h.eventPublisher, events.OrderExchange, events.OrderUpdatedEvent, events.OrderUpdatedPayload{
		ProductID:   updated.ID,
		SellerID:    updated.CreatedBy,
		UpdatedBy:   userID,
		OrderStatus: int(updated.OrderStatus),
		PickedUpAt:  updated.PickedUpDate,
		UpdatedAt:   time.Now().UTC(),
	})

	return &MarkPickedUpResponse{Product: updated}, nil
}
