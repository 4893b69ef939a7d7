package app

import (
	"context"
	"database/sql"
	"errors"

	"resale/domain"
	"resale/internal/middleware"
	"resale/pkg/httperror"

	"github.com/shopspring/decimal"
)

type UpdateProductHandler struct {
	repository Repository
}

func NewUpdateProductHandler(repository Repository) *UpdateProductHandler {
	return &UpdateProductHandler{
		repository: repository,
	}
}

type UpdateProductRequest struct {
	ProductID      string              `json:"productId" validate:"required,uuid4"`
	CategoryID     string              `json:"categoryId" validate:"required,uuid4"`
	Type           *string             `json:"type"`
	Title          string              `json:"title" validate:"required"`
	Description    *string             `json:"description"`
	Brand          *string             `json:"brand"`
	PurchasedYear  *string             `json:"purchasedYear"`
	DistanceDriven *string             `json:"distanceDriven"`
	OfferedAmount  decimal.Decimal     `json:"offeredAmount" validate:"required"`
	PickupAddress  *string             `json:"pickupAddress"`
	Images         []ProductImageInput `json:"images" validate:"min=1,dive"`
}

type UpdateProductResponse struct {
	Product domain.Product `json:"product"`
}

// Handle lets the owner revise a listing, but only before the first bid:
// negotiated terms always refer to the listing as bid on.
func (h UpdateProductHandler) Handle(ctx context.Context, req *UpdateProductRequest) (*UpdateProductResponse, error) {
	if err := validateRequest(req, "product.update.validation_failed"); err != nil {
		return nil, err
	}

	product, err := h.repository.GetProduct(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("product.update.not_found", httperror.MsgProductNotFound, nil)
		}
		return nil, httperror.InternalServerError("product.update.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	if product.CreatedBy != middleware.UserID(ctx) {
		return nil, httperror.Forbidden("product.update.forbidden", httperror.MsgForbidden, nil)
	}

	bids, err := h.repository.CountProductBids(ctx, req.ProductID)
	if err != nil {
		return nil, httperror.InternalServerError("product.update.bid_count_failed", httperror.MsgSomethingWentWrong, nil)
	}
	if bids > 0 {
		return nil, httperror.Conflict("product.update.bidding_started", httperror.MsgBiddingStarted, nil)
	}

	product.CategoryID = req.CategoryID
	product.Type = req.Type
	product.Title = req.Title
	product.Description = req.Description
	product.Brand = req.Brand
	product.PurchasedYear = req.PurchasedYear
	product.DistanceDriven = req.DistanceDriven
	product.OfferedAmount = req.OfferedAmount
	product.PickupAddress = req.PickupAddress

	images := make([]domain.ProductImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, domain.ProductImage{URI: img.URI, IsDefault: img.IsDefault})
	}

	if err := h.repository.UpdateProduct(ctx, product, images); err != nil {
		return nil, httperror.InternalServerError("product.update.failed", httperror.MsgSomethingWentWrong, nil)
	}

	updated, err := h.repository.GetProductDetails(ctx, req.ProductID)
	if err != nil {
		return nil, httperror.InternalServerError("product.update.reload_failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &UpdateProductResponse{Product: updated}, nil
}
