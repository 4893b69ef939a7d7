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

type EstimatePickupHandler struct {
	repository     Repository
	notifier       *notifier.Notifier
	eventPublisher events.Publisher
}

func NewEstimatePickupHandler(repository Repository, n *notifier.Notifier, eventPublisher events.Publisher) *EstimatePickupHandler {
	return &EstimatePickupHandler{
		repository:     repository,
		notifier:       n,
		eventPublisher: eventPublisher,
	}
}

type EstimatePickupRequest struct {
	ProductID    string    `json:"productId" validate:"required,uuid4"`
	PickedUpDate time.Time `json:"pickedUpDate" validate:"required"`
}

type EstimatePickupResponse struct {
	Product domain.Product `json:"product"`
}

// Handle schedules (or reschedules) the pickup. Allowed only while the order
// has not moved past the estimation stage.
func (h EstimatePickupHandler) Handle(ctx context.Context, req *EstimatePickupRequest) (*EstimatePickupResponse, error) {
	if err := validateRequest(req, "order.estimate_pickup.validation_failed"); err != nil {
		return nil, err
	}

	product, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("order.estimate_pickup.not_found", httperror.MsgProductNotFound, nil)
		}
		return nil, httperror.InternalServerError("order.estimate_pickup.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	if product.BidStatus != domain.BidAccepted {
		return nil, httperror.BadRequest("order.estimate_pickup.not_accepted", httperror.MsgProductNotAccepted, nil)
	}

	moved, err := h.repository.EstimatePickupDate(ctx, req.ProductID, req.PickedUpDate)
	if err != nil {
		return nil, httperror.InternalServerError("order.estimate_pickup.failed", httperror.MsgSomethingWentWrong, nil)
	}
	if !moved {
		if product.OrderStatus == domain.OrderPaid {
			return nil, httperror.Conflict("order.estimate_pickup.paid", httperror.MsgProductPaid, nil)
		}
		return nil, httperror.Conflict("order.estimate_pickup.conflict", httperror.MsgSomethingWentWrong, nil)
	}

	return h.respond(ctx, req.ProductID, product)
}

func (h EstimatePickupHandler) respond(ctx context.Context, productID string, previous domain.Product) (*EstimatePickupResponse, error) {
	product, err := h.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, httperror.InternalServerError("order.estimate_pickup.reload_failed", httperror.MsgSomethingWentWrong, nil)
	}

	userID := middleware.UserID(ctx)

	h.notifier.Notify(notifier.Event{
		Kind:        notifier.OrderUpdated,
		SenderID:    userID,
		ReceiverIDs: []string{product.CreatedBy},
		ProductID:   product.ID,
		Product:     product.Title,
		OrderStatus: product.OrderStatus,
	})

	publishEvent(ctx, h.eventPublisher, events.OrderExchange, events.OrderUpdatedEvent, events.OrderUpdatedPayload{
		ProductID:   product.ID,
		SellerID:    product.CreatedBy,
		UpdatedBy:   userID,
		OrderStatus: int(product.OrderStatus),
		PickedUpAt:  product.PickedUpDate,
		UpdatedAt:   time.Now().UTC(),
	})

	return &EstimatePickupResponse{Product: product}, nil
}
