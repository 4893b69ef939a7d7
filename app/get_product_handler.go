package app

import (
	"context"
	"database/sql"
	"errors"

	"resale/domain"
	"resale/internal/middleware"
	"resale/pkg/httperror"
)

type GetProductHandler struct {
	repository Repository
}

func NewGetProductHandler(repository Repository) *GetProductHandler {
	return &GetProductHandler{
		repository: repository,
	}
}

type GetProductRequest struct {
	ProductID string `params:"productId" validate:"required,uuid4"`
}

type GetProductResponse struct {
	Product domain.Product `json:"product"`
}

func (h GetProductHandler) Handle(ctx context.Context, req *GetProductRequest) (*GetProductResponse, error) {
	if err := validateRequest(req, "product.get.validation_failed"); err != nil {
		return nil, err
	}

	product, err := h.repository.GetProductDetails(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("product.get.not_found", httperror.MsgProductNotFound, nil)
		}
		return nil, httperror.InternalServerError("product.get.failed", httperror.MsgSomethingWentWrong, nil)
	}

	if middleware.UserRole(ctx) != domain.RoleAdmin && product.CreatedBy != middleware.UserID(ctx) {
		return nil, httperror.Forbidden("product.get.forbidden", httperror.MsgForbidden, nil)
	}

	return &GetProductResponse{Product: product}, nil
}
