package app

import (
	"context"
	"database/sql"
	"errors"

	"resale/domain"
	"resale/internal/middleware"
	"resale/internal/notifier"
	"resale/pkg/events"
	"resale/pkg/httperror"

	"github.com/shopspring/decimal"
)

type CreateBidHandler struct {
	repository     Repository
	notifier       *notifier.Notifier
	eventPublisher events.Publisher
}

func NewCreateBidHandler(repository Repository, n *notifier.Notifier, eventPublisher events.Publisher) *CreateBidHandler {
	return &CreateBidHandler{
		repository:     repository,
		notifier:       n,
		eventPublisher: eventPublisher,
	}
}

type CreateBidRequest struct {
	ProductID string          `json:"productId" validate:"required,uuid4"`
	NewValue  decimal.Decimal `json:"newValue" validate:"required"`
	Notes     string          `json:"notes"`
}

type CreateBidResponse struct {
	Bid domain.Bid `json:"bid"`
}

// Handle opens the negotiation on a listing. Each product carries a single
// negotiation thread, so a second opening bid is refused.
func (h CreateBidHandler) Handle(ctx context.Context, req *CreateBidRequest) (*CreateBidResponse, error) {
	if err := validateRequest(req, "bid.create.validation_failed"); err != nil {
		return nil, err
	}

	product, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("bid.create.product_not_found", httperror.MsgProductNotFound, nil)
		}
		return nil, httperror.InternalServerError("bid.create.product_lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	existing, err := h.repository.CountProductBids(ctx, req.ProductID)
	if err != nil {
		return nil, httperror.InternalServerError("bid.create.bid_count_failed", httperror.MsgSomethingWentWrong, nil)
	}
	if existing > 0 {
		return nil, httperror.BadRequest("bid.create.bidding_started", httperror.MsgInvalidProduct, nil)
	}

	userID := middleware.UserID(ctx)

	bid, err := h.repository.CreateBid(ctx, domain.Bid{
		ProductID:    req.ProductID,
		BidCreatedBy: userID,
		NewValue:     req.NewValue,
		Notes:        req.Notes,
		BidStatus:    domain.BidCreated,
	})
	if err != nil {
		return nil, httperror.InternalServerError("bid.create.failed", httperror.MsgSomethingWentWrong, nil)
	}

	h.notifier.Notify(notifier.Event{
		Kind:        notifier.BidCreated,
		SenderID:    userID,
		ReceiverIDs: []string{product.CreatedBy},
		ProductID:   product.ID,
		Product:     product.Title,
		Amount:      bid.NewValue.String(),
	})

	publishEvent(ctx, h.eventPublisher, events.ProductExchange, events.BidCreatedEvent, events.BidCreatedPayload{
		BidID:        bid.ID,
		ProductID:    bid.ProductID,
		BidCreatedBy: bid.BidCreatedBy,
		NewValue:     bid.NewValue,
		CreatedAt:    bid.CreatedAt,
	})

	return &CreateBidResponse{Bid: bid}, nil
}
