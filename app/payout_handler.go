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
	"resale/pkg/razorpay"

	"go.uber.org/zap"
)

type PayoutHandler struct {
	repository     Repository
	gateway        PaymentGateway
	notifier       *notifier.Notifier
	eventPublisher events.Publisher
}

func NewPayoutHandler(repository Repository, gateway PaymentGateway, n *notifier.Notifier, eventPublisher events.Publisher) *PayoutHandler {
	return &PayoutHandler{
		repository:     repository,
		gateway:        gateway,
		notifier:       n,
		eventPublisher: eventPublisher,
	}
}

type PayoutRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
}

type PayoutResponse struct {
	Payment domain.Payment `json:"payment"`
}

// Handle pays the seller for a picked-up order. The payout is claimed with a
// conditional flag before any money moves: a second request while one is in
// flight, or after the order is paid, never reaches the gateway. The gateway
// call itself carries an idempotency key derived from the product, so a retry
// after a crash between claim and completion cannot double-pay either.
func (h PayoutHandler) Handle(ctx context.Context, req *PayoutRequest) (*PayoutResponse, error) {
	if err := validateRequest(req, "order.payout.validation_failed"); err != nil {
		return nil, err
	}

	product, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("order.payout.not_found", httperror.MsgProductNotFound, nil)
		}
		return nil, httperror.InternalServerError("order.payout.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	if product.BidStatus != domain.BidAccepted {
		return nil, httperror.BadRequest("order.payout.not_accepted", httperror.MsgProductNotAccepted, nil)
	}
	if product.OrderStatus == domain.OrderPaid {
		return nil, httperror.Conflict("order.payout.paid", httperror.MsgProductPaid, nil)
	}
	if product.OrderStatus != domain.OrderPickedUp {
		return nil, httperror.BadRequest("order.payout.not_picked", httperror.MsgProductNotPicked, nil)
	}
	if product.AcceptedAmount == nil {
		return nil, httperror.InternalServerError("order.payout.no_amount", httperror.MsgSomethingWentWrong, nil)
	}

	seller, err := h.repository.GetUserByID(ctx, product.CreatedBy)
	if err != nil {
		return nil, httperror.InternalServerError("order.payout.seller_lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}
	if !seller.HasFundAccount() {
		return nil, httperror.BadRequest("order.payout.bank_detail_missing", httperror.MsgBankDetailMissing, nil)
	}

	claimed, err := h.repository.BeginPayout(ctx, req.ProductID)
	if err != nil {
		return nil, httperror.InternalServerError("order.payout.claim_failed", httperror.MsgSomethingWentWrong, nil)
	}
	if !claimed {
		return nil, httperror.Conflict("order.payout.in_progress", httperror.MsgPayoutInProgress, nil)
	}

	payout, err := h.gateway.CreatePayout(ctx, razorpay.PayoutParams{
		FundAccountID:  *seller.FundAccountID,
		Amount:         *product.AcceptedAmount,
		IdempotencyKey: "payout-" + product.ID,
		ReferenceID:    product.ID,
	})
	if err != nil {
		if abortErr := h.repository.AbortPayout(ctx, req.ProductID); abortErr != nil {
			zap.L().Error("Failed to release payout claim after gateway error",
				zap.String("productId", req.ProductID),
				zap.Error(abortErr),
			)
		}
		return nil, httperror.InternalServerError("order.payout.gateway_failed", httperror.MsgSomethingWentWrong, nil)
	}

	adminID := middleware.UserID(ctx)

	payment := domain.Payment{
		PaidBy:    adminID,
		PaidTo:    seller.ID,
		ProductID: product.ID,
		PayoutID:  payout.ID,
		Amount:    *product.AcceptedAmount,
		Status:    payout.Status,
	}

	if err := h.repository.CompletePayout(ctx, payment); err != nil {
		// Money has left; local state must catch up on the next retry. The
		// claim stays held so no second payout can be issued meanwhile.
		zap.L().Error("Payout issued but completion failed",
			zap.String("productId", product.ID),
			zap.String("payoutId", payout.ID),
			zap.Error(err),
		)
		return nil, httperror.InternalServerError("order.payout.complete_failed", httperror.MsgSomethingWentWrong, nil)
	}

	h.notifier.Notify(notifier.Event{
		Kind:        notifier.OrderUpdated,
		SenderID:    adminID,
		ReceiverIDs: []string{seller.ID},
		ProductID:   product.ID,
		Product:     product.Title,
		Amount:      product.AcceptedAmount.String(),
		OrderStatus: domain.OrderPaid,
	})

	publishEvent(ctx, h.eventPublisher, events.OrderExchange, events.OrderUpdatedEvent, events.OrderUpdatedPayload{
		ProductID:   product.ID,
		SellerID:    seller.ID,
		SellerEmail: seller.Email,
		UpdatedBy:   adminID,
		OrderStatus: int(domain.OrderPaid),
		Amount:      product.AcceptedAmount.String(),
		PayoutID:    payout.ID,
		UpdatedAt:   time.Now().UTC(),
	})

	return &PayoutResponse{Payment: payment}, nil
}
