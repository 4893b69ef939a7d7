package app

import (
	"context"

	"resale/domain"
	"resale/pkg/httperror"
)

type GetCategoriesHandler struct {
	repository Repository
}

func NewGetCategoriesHandler(repository Repository) *GetCategoriesHandler {
	return &GetCategoriesHandler{
		repository: repository,
	}
}

type GetCategoriesRequest struct{}

type GetCategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// Handle returns the active category tree, root categories with their
// subcategories attached.
func (h GetCategoriesHandler) Handle(ctx context.Context, req *GetCategoriesRequest) (*GetCategoriesResponse, error) {
	categories, err := h.repository.GetCategories(ctx)
	if err != nil {
		return nil, httperror.InternalServerError("category.index.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &GetCategoriesResponse{Categories: categories}, nil
}
