package app

import (
	"context"

	"resale/pkg/aws"
	"resale/pkg/httperror"
)

type DeleteFileHandler struct{}

func NewDeleteFileHandler() *DeleteFileHandler {
	return &DeleteFileHandler{}
}

type DeleteFileRequest struct {
	Key string `params:"*" validate:"required"`
}

type DeleteFileResponse struct {
	Message string `json:"message"`
}

func (h *DeleteFileHandler) Handle(ctx context.Context, req *DeleteFileRequest) (*DeleteFileResponse, error) {
	if err := validateRequest(req, "file.delete.validation_failed"); err != nil {
		return nil, err
	}

	bucket := aws.NewBucket()
	if err := bucket.Delete(req.Key); err != nil {
		return nil, httperror.InternalServerError("file.delete.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &DeleteFileResponse{Message: "File deleted"}, nil
}
