package app

import (
	"context"

	"resale/domain"
	"resale/internal/middleware"
	"resale/pkg/httperror"
	"resale/pkg/paginate"

	"github.com/shopspring/decimal"
)

type ListProductsHandler struct {
	repository Repository
}

func NewListProductsHandler(repository Repository) *ListProductsHandler {
	return &ListProductsHandler{
		repository: repository,
	}
}

type ListProductsRequest struct {
	CategoryID  string `query:"categoryId"`
	BidStatus   int    `query:"bidStatus"`
	OrderStatus int    `query:"orderStatus"`
	MinPrice    string `query:"minPrice"`
	MaxPrice    string `query:"maxPrice"`
	Page        int    `query:"page"`
	Limit       int    `query:"limit"`
}

type ListProductsResponse struct {
	Products paginate.Page[domain.Product] `json:"products"`
}

// Handle lists products. Regular users only ever see their own listings;
// admins see everything and can filter freely.
func (h ListProductsHandler) Handle(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	filter := ProductFilter{
		CategoryID:  req.CategoryID,
		BidStatus:   domain.BidStatus(req.BidStatus),
		OrderStatus: domain.OrderStatus(req.OrderStatus),
	}

	if middleware.UserRole(ctx) != domain.RoleAdmin {
		filter.CreatedBy = middleware.UserID(ctx)
	}

	if req.MinPrice != "" {
		min, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			return nil, httperror.BadRequest("product.list.invalid_min_price", httperror.MsgInvalidRequest, nil)
		}
		filter.MinPrice = &min
	}
	if req.MaxPrice != "" {
		max, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			return nil, httperror.BadRequest("product.list.invalid_max_price", httperror.MsgInvalidRequest, nil)
		}
		filter.MaxPrice = &max
	}

	products, err := h.repository.ListProducts(ctx, filter, paginate.Normalize(req.Page, req.Limit))
	if err != nil {
		return nil, httperror.InternalServerError("product.list.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &ListProductsResponse{Products: products}, nil
}
