package consumers

import (
	"context"
	"fmt"

	"resale/pkg/events"

	"go.uber.org/zap"
)

// Texter delivers one-time passwords. Satisfied by pkg/sms.Sender.
type Texter interface {
	SendOtp(to, otp string) error
}

type AuthEventHandler struct {
	texter Texter
	logger *zap.Logger
}

func NewAuthEventHandler(texter Texter, logger *zap.Logger) *AuthEventHandler {
	return &AuthEventHandler{
		texter: texter,
		logger: logger,
	}
}

func (h *AuthEventHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	switch event.Event {
	case events.OtpRequestedEvent:
		return h.handleOtpRequested(ctx, event)
	default:
		h.logger.Warn("Unknown auth event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *AuthEventHandler) handleOtpRequested(ctx context.Context, event *events.Event) error {
	var payload events.OtpRequestedPayload
	if err := decodePayload(event.Payload, &payload); err != nil {
		return err
	}

	if payload.Mobile == "" || payload.Otp == "" {
		return fmt.Errorf("malformed payload - mobile or otp missing")
	}

	if err := h.texter.SendOtp(payload.Mobile, payload.Otp); err != nil {
		return fmt.Errorf("send otp sms: %w", err)
	}

	h.logger.Info("OTP sent",
		zap.String("userId", payload.UserID),
		zap.String("purpose", payload.Purpose),
		zap.String("traceId", event.TraceID),
	)

	return nil
}
