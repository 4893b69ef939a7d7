package postgres

import (
	"context"

	"resale/domain"
)

func (r *PgRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	roots := make([]domain.Category, 0)
	query := `SELECT * FROM categories WHERE parent_id IS NULL ORDER BY name ASC`

	if err := r.db.SelectContext(ctx, &roots, query); err != nil {
		return nil, err
	}

	for i := range roots {
		subs, err := r.getSubcategories(ctx, roots[i].ID)
		if err != nil {
			return nil, err
		}
		roots[i].SubCategories = subs
	}

	return roots, nil
}

func (r *PgRepository) getSubcategories(ctx context.Context, parentID string) ([]domain.Category, error) {
	subs := make([]domain.Category, 0)
	query := `SELECT * FROM categories WHERE parent_id = $1 ORDER BY name ASC`

	err := r.db.SelectContext(ctx, &subs, query, parentID)
	return subs, err
}

func (r *PgRepository) GetCategoryByID(ctx context.Context, id string) (domain.Category, error) {
	var c domain.Category
	query := `SELECT * FROM categories WHERE id = $1`

	if err := r.db.GetContext(ctx, &c, query, id); err != nil {
		return c, err
	}

	subs, err := r.getSubcategories(ctx, c.ID)
	if err != nil {
		return c, err
	}
	c.SubCategories = subs

	return c, nil
}

func (r *PgRepository) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	var c domain.Category
	query := `
		INSERT INTO categories (name, parent_id, logo, is_active)
		VALUES (:name, :parent_id, :logo, :is_active)
		RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, category)
	if err != nil {
		return c, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&c)
	}
	return c, err
}

func (r *PgRepository) CountSubcategories(ctx context.Context, id string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM categories WHERE parent_id = $1`

	err := r.db.GetContext(ctx, &count, query, id)
	return count, err
}

func (r *PgRepository) DeleteCategory(ctx context.Context, id string) error {
	query := `DELETE FROM categories WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
