package app

import (
	"context"
	"database/sql"
	"errors"

	"resale/pkg/httperror"
)

type DeleteCategoryHandler struct {
	repository Repository
}

func NewDeleteCategoryHandler(repository Repository) *DeleteCategoryHandler {
	return &DeleteCategoryHandler{
		repository: repository,
	}
}

type DeleteCategoryRequest struct {
	CategoryID string `params:"categoryId" validate:"required,uuid4"`
}

type DeleteCategoryResponse struct {
	Message string `json:"message"`
}

// Handle deletes a leaf category. Categories with subcategories are refused so
// the tree never loses a branch silently.
func (h DeleteCategoryHandler) Handle(ctx context.Context, req *DeleteCategoryRequest) (*DeleteCategoryResponse, error) {
	if err := validateRequest(req, "category.delete.validation_failed"); err != nil {
		return nil, err
	}

	if _, err := h.repository.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, httperror.NotFound("category.delete.not_found", httperror.MsgInvalidCategory, nil)
		}
		return nil, httperror.InternalServerError("category.delete.lookup_failed", httperror.MsgSomethingWentWrong, nil)
	}

	count, err := h.repository.CountSubcategories(ctx, req.CategoryID)
	if err != nil {
		return nil, httperror.InternalServerError("category.delete.count_failed", httperror.MsgSomethingWentWrong, nil)
	}
	if count > 0 {
		return nil, httperror.Conflict("category.delete.has_subcategories", httperror.MsgCannotDeleteCategory, nil)
	}

	if err := h.repository.DeleteCategory(ctx, req.CategoryID); err != nil {
		return nil, httperror.InternalServerError("category.delete.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &DeleteCategoryResponse{Message: "Category deleted"}, nil
}
