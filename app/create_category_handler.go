package app

import (
	"context"
	"database/sql"
	"errors"

	"resale/domain"
	"resale/pkg/httperror"
)

type CreateCategoryHandler struct {
	repository Repository
}

func NewCreateCategoryHandler(repository Repository) *CreateCategoryHandler {
	return &CreateCategoryHandler{
		repository: repository,
	}
}

type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required"`
	ParentID *string `json:"parentId" validate:"omitempty,uuid4"`
	Logo     *string `json:"logo"`
}

type CreateCategoryResponse struct {
	Category domain.Category `json:"category"`
}

func (h CreateCategoryHandler) Handle(ctx context.Context, req *CreateCategoryRequest) (*CreateCategoryResponse, error) {
	if err := validateRequest(req, "category.create.validation_failed"); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if _, err := h.repository.GetCategoryByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, httperror.BadRequest("category.create.invalid_parent", httperror.MsgInvalidCategory, nil)
			}
			return nil, httperror.InternalServerError("category.create.lookup_failed", httperror.MsgSomethingWentWrong, nil)
		}
	}

	category, err := h.repository.CreateCategory(ctx, domain.Category{
		Name:     req.Name,
		ParentID: req.ParentID,
		Logo:     req.Logo,
		IsActive: true,
	})
	if err != nil {
		return nil, httperror.InternalServerError("category.create.failed", httperror.MsgSomethingWentWrong, nil)
	}

	return &CreateCategoryResponse{Category: category}, nil
}
