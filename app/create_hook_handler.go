package app

import (
	"context"
	"encoding/json"

	"resale/pkg/httperror"

	"go.uber.org/zap"
)

type CreateHookHandler struct {
	repository Repository
}

func NewCreateHookHandler(repository Repository) *CreateHookHandler {
	return &CreateHookHandler{
		repository: repository,
	}
}

type CreateHookRequest struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type CreateHookResponse struct {
	Message string `json:"message"`
}

// Handle records a gateway callback verbatim. The log is an audit trail only;
// order state is driven exclusively by the payout flow, never by callbacks.
func (h CreateHookHandler) Handle(ctx context.Context, req *CreateHookRequest) (*CreateHookResponse, error) {
	data := req.Payload
	if len(data) == 0 {
		data = json.RawMessage("{}")
	}

	if err := h.repository.CreateWebhookLog(ctx, req.Event, data); err != nil {
		zap.L().Error("Failed to persist webhook log",
			zap.String("event", req.Event),
			zap.Error(err),
		)
		return nil, httperror.InternalServerError("hook.create.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &CreateHookResponse{Message: "ok"}, nil
}
