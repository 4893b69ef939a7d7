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
	"go.uber.org/zap"
)

type CreateProductHandler struct {
	repository     Repository
	notifier       *notifier.Notifier
	eventPublisher events.Publisher
}

func NewCreateProductHandler(repository Repository, n *notifier.Notifier, eventPublisher events.Publisher) *CreateProductHandler {
	return &CreateProductHandler{
		repository:     repository,
		notifier:       n,
		eventPublisher: eventPublisher,
	}
}

type ProductImageInput struct {
	URI       string `json:"uri" validate:"required"`
	IsDefault bool   `json:"isDefault"`
}

type CreateProductRequest struct {
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

type CreateProductResponse struct {
	Product domain.Product `json:"product"`
}

func (h CreateProductHandler) Handle(ctx context.Context, req *CreateProductRequest) (*CreateProductResponse, error) {
	if err := validateRequest(req, "product.create.validation_failed"); err != nil {
		return nil, err
	}

	category, err := h.repository.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.BadRequest("product.create.invalid_category", httperror.MsgInvalidCategory, nil)
		}
		return nil, httperror.InternalServerError("product.create.category_lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}
	if !category.IsActive {
		return nil, httperror.BadRequest("product.create.invalid_category", httperror.MsgInvalidCategory, nil)
	}

	userID := middleware.UserID(ctx)

	product := domain.Product{
		CategoryID:     req.CategoryID,
		Type:           req.Type,
		Title:          req.Title,
		Description:    req.Description,
		Brand:          req.Brand,
		PurchasedYear:  req.PurchasedYear,
		DistanceDriven: req.DistanceDriven,
		OfferedAmount:  req.OfferedAmount,
		BidStatus:      domain.BidCreated,
		OrderStatus:    domain.OrderPending,
		CreatedBy:      userID,
		PickupAddress:  req.PickupAddress,
	}

	images := make([]domain.ProductImage, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, domain.ProductImage{URI: img.URI, IsDefault: img.IsDefault})
	}

	created, err := h.repository.CreateProduct(ctx, product, images)
	if err != nil {
		return nil, httperror.InternalServerError("product.create.failed", httperror.MsgSomethingWentWrong, nil)
	}

	h.notifyAdmins(ctx, created)

	publishEvent(ctx, h.eventPublisher, events.ProductExchange, events.ProductCreatedEvent, events.ProductCreatedPayload{
		ID:            created.ID,
		CategoryID:    created.CategoryID,
		Title:         created.Title,
		OfferedAmount: created.OfferedAmount,
		CreatedBy:     created.CreatedBy,
		CreatedAt:     created.CreatedAt,
	})

	return &CreateProductResponse{Product: created}, nil
}

func (h CreateProductHandler) notifyAdmins(ctx context.Context, product domain.Product) {
	admins, err := h.repository.GetAdminIDs(ctx)
	if err != nil {
		zap.L().Error("Failed to load admin ids for notification",
			zap.String("productId", product.ID),
			zap.Error(err),
		)
		return
	}

	h.notifier.Notify(notifier.Event{
		Kind:        notifier.ProductAdded,
		SenderID:    product.CreatedBy,
		ReceiverIDs: admins,
		ProductID:   product.ID,
		Product:     product.Title,
		Amount:      product.OfferedAmount.String(),
	})
}
