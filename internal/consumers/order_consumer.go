package consumers

import (
	"context"
	"encoding/json"
	"fmt"

	"resale/domain"
	"resale/pkg/events"

	"go.uber.org/zap"
)

// Mailer sends the payout receipt. Satisfied by pkg/mail.Sender.
type Mailer interface {
	SendPaymentReceipt(to, payoutID, amount string) error
}

// OrderEventHandler turns order lifecycle events into seller emails. It runs
// in the worker, off the request path.
type OrderEventHandler struct {
	mailer Mailer
	logger *zap.Logger
}

func NewOrderEventHandler(mailer Mailer, logger *zap.Logger) *OrderEventHandler {
	return &OrderEventHandler{
		mailer: mailer,
		logger: logger,
	}
}

func (h *OrderEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	h.logger.Info("Order event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.OrderUpdatedEvent:
		return h.handleOrderUpdated(ctx, event)
	default:
		h.logger.Warn("Unknown order event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *OrderEventHandler) handleOrderUpdated(ctx context.Context, event *events.Event) error {
	var payload events.OrderUpdatedPayload
	if err := decodePayload(event.Payload, &payload); err != nil {
		return err
	}

	// Only the terminal transition warrants a receipt.
	if payload.OrderStatus != int(domain.OrderPaid) {
		return nil
	}

	if payload.SellerEmail == "" {
		return fmt.Errorf("malformed payload - sellerEmail missing for paid order %s", payload.ProductID)
	}

	if err := h.mailer.SendPaymentReceipt(payload.SellerEmail, payload.PayoutID, payload.Amount); err != nil {
		return fmt.Errorf("send payment receipt: %w", err)
	}

	h.logger.Info("Payment receipt sent",
		zap.String("productId", payload.ProductID),
		zap.String("sellerId", payload.SellerID),
		zap.String("payoutId", payload.PayoutID),
		zap.String("traceId", event.TraceID),
	)

	return nil
}

// decodePayload round-trips the generic payload into its typed form.
func decodePayload(payload interface{}, out interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("malformed payload - marshal failed: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("malformed payload - unmarshal failed: %w", err)
	}
	return nil
}
