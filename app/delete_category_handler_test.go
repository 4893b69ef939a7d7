package app

import (
	"context"
	"testing"

	"resale/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestDeleteCategoryLeaf(t *testing.T) {
	repo := newFakeRepository()
	category, err := repo.CreateCategory(context.Background(), domain.Category{Name: "Electronics"})
	require.NoError(t, err)

	handler := NewDeleteCategoryHandler(repo)

	_, err = handler.Handle(context.Background(), &DeleteCategoryRequest{CategoryID: category.ID})
	require.NoError(t, err)

	_, err = repo.GetCategoryByID(context.Background(), category.ID)
	require.Error(t, err)
}

func TestDeleteCategoryWithSubcategoriesRefused(t *testing.T) {
	repo := newFakeRepository()
	parent, err := repo.CreateCategory(context.Background(), domain.Category{Name: "Electronics"})
	require.NoError(t, err)
	_, err = repo.CreateCategory(context.Background(), domain.Category{Name: "Phones", ParentID: &parent.ID})
	require.NoError(t, err)

	handler := NewDeleteCategoryHandler(repo)

	_, err = handler.Handle(context.Background(), &DeleteCategoryRequest{CategoryID: parent.ID})
	requireHTTPError(t, err, fiber.StatusConflict, "Category with subcategories can not be deleted")

	_, err = repo.GetCategoryByID(context.Background(), parent.ID)
	require.NoError(t, err)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	repo := newFakeRepository()

	handler := NewDeleteCategoryHandler(repo)

	_, err := handler.Handle(context.Background(), &DeleteCategoryRequest{
		CategoryID: "55555555-5555-4555-8555-555555555555",
	})
	requireHTTPError(t, err, fiber.StatusNotFound, "Please select a valid category")
}
