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

	"github.com/shopspring/decimal"
)

type RespondBidHandler struct {
	repository     Repository
	notifier       *notifier.Notifier
	eventPublisher events.Publisher
}

func NewRespondBidHandler(repository Repository, n *notifier.Notifier, eventPublisher events.Publisher) *RespondBidHandler {
	return &RespondBidHandler{
		repository:     repository,
		notifier:       n,
		eventPublisher: eventPublisher,
	}
}

type RespondBidRequest struct {
	BidID     string           `json:"bidId" validate:"required,uuid4"`
	BidStatus int              `json:"bidStatus" validate:"required,oneof=2 3 4"`
	NewValue  *decimal.Decimal `json:"newValue"`
	Notes     string           `json:"notes"`
}

type RespondBidResponse struct {
	Bid domain.Bid `json:"bid"`
}

// Handle closes the open negotiation round. Accepting locks the agreed amount
// onto the product, rejecting ends the round, countering appends a fresh open
// round with the new amount. The round's own author may not respond to it.
func (h RespondBidHandler) Handle(ctx context.Context, req *RespondBidRequest) (*RespondBidResponse, error) {
	if err := validateRequest(req, "bid.respond.validation_failed"); err != nil {
		return nil, err
	}

	bid, err := h.repository.GetBid(ctx, req.BidID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("bid.respond.not_found", httperror.MsgBidNotFound, nil)
		}
		return nil, httperror.InternalServerError("bid.respond.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	userID := middleware.UserID(ctx)
	status := domain.BidStatus(req.BidStatus)

	if userID == bid.BidCreatedBy || bid.BidStatus != domain.BidCreated {
		return nil, httperror.Forbidden("bid.respond.not_allowed", httperror.MsgBidNotAllowed, nil)
	}

	product, err := h.repository.GetProduct(ctx, bid.ProductID)
	if err != nil {
		return nil, httperror.InternalServerError("bid.respond.product_lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	result := bid

	switch status {
	case domain.BidModified:
		if req.NewValue == nil {
			return nil, httperror.BadRequest("bid.respond.missing_value", httperror.MsgInvalidRequest, nil)
		}
		next := domain.Bid{
			ProductID:    bid.ProductID,
			BidCreatedBy: userID,
			NewValue:     *req.NewValue,
			Notes:        req.Notes,
			BidStatus:    domain.BidCreated,
		}
		result, err = h.repository.CounterBid(ctx, bid.ID, userID, req.Notes, next)

	case domain.BidAccepted:
		// The acceptor on record is whoever negotiated against the seller.
		priceAcceptedBy := bid.BidCreatedBy
		if bid.BidCreatedBy == product.CreatedBy {
			priceAcceptedBy = userID
		}
		err = h.repository.ResolveBid(ctx, bid, userID, req.Notes, status, priceAcceptedBy)

	case domain.BidRejected:
		err = h.repository.ResolveBid(ctx, bid, userID, req.Notes, status, "")
	}

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.Forbidden("bid.respond.not_allowed", httperror.MsgBidNotAllowed, nil)
		}
		return nil, httperror.InternalServerError("bid.respond.failed", httperror.MsgSomethingWentWrong, nil)
	}

	amount := bid.NewValue
	if status == domain.BidModified && req.NewValue != nil {
		amount = *req.NewValue
	}

	h.notifier.Notify(notifier.Event{
		Kind:        notifier.BidResponded,
		SenderID:    userID,
		ReceiverIDs: []string{bid.BidCreatedBy},
		ProductID:   product.ID,
		Product:     product.Title,
		Amount:      amount.String(),
		BidStatus:   status,
	})

	publishEvent(ctx, h.eventPublisher, events.ProductExchange, events.BidRespondedEvent, events.BidRespondedPayload{
		BidID:       bid.ID,
		ProductID:   bid.ProductID,
		RespondedBy: userID,
		BidStatus:   int(status),
		NewValue:    amount,
		RespondedAt: time.Now().UTC(),
	})

	if status != domain.BidModified {
		result, err = h.repository.GetBid(ctx, bid.ID)
		if err != nil {
			return nil, httperror.InternalServerError("bid.respond.reload_failed", httperror.MsgSomethingWentWrong, nil)
		}
	}

	return &RespondBidResponse{Bid: result}, nil
}
