package postgres

import (
	"context"
	"database/sql"

	"resale/app"
	"resale/domain"
	"resale/pkg/paginate"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func (r *PgRepository) CreateProduct(ctx context.Context, product domain.Product, images []domain.ProductImage) (domain.Product, error) {
	var created domain.Product

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO products (
				category_id, type, title, description, brand,
				purchased_year, distance_driven, offered_amount,
				created_by, pickup_address
			) VALUES (
				:category_id, :type, :title, :description, :brand,
				:purchased_year, :distance_driven, :offered_amount,
				:created_by, :pickup_address
			) RETURNING *`

		rows, err := tx.NamedQuery(query, product)
		if err != nil {
			return err
		}
		defer rows.Close()

		if rows.Next() {
			if err := rows.StructScan(&created); err != nil {
				return err
			}
		}
		rows.Close()

		return insertProductImages(tx, created.ID, images)
	})
	if err != nil {
		return created, err
	}

	created.Images, err = r.getProductImages(ctx, created.ID)
	return created, err
}

func insertProductImages(tx *sqlx.Tx, productID string, images []domain.ProductImage) error {
	query := `INSERT INTO product_images (product_id, uri, is_default) VALUES ($1, $2, $3)`

	for _, img := range images {
		if _, err := tx.Exec(query, productID, img.URI, img.IsDefault); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	query := `SELECT * FROM products WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	return p, err
}

func (r *PgRepository) getProductImages(ctx context.Context, productID string) ([]domain.ProductImage, error) {
	images := make([]domain.ProductImage, 0)
	query := `SELECT * FROM product_images WHERE product_id = $1 ORDER BY is_default DESC, created_at ASC`

	err := r.db.SelectContext(ctx, &images, query, productID)
	return images, err
}

// GetProductDetails loads a product with its category, creator summary,
// images and full bid history (newest round first).
func (r *PgRepository) GetProductDetails(ctx context.Context, id string) (domain.Product, error) {
	p, err := r.GetProduct(ctx, id)
	if err != nil {
		return p, err
	}

	products := []domain.Product{p}
	if err := r.attachProductRelations(ctx, products); err != nil {
		return p, err
	}
	p = products[0]

	history := make([]domain.Bid, 0)
	query := `SELECT * FROM product_bid_history WHERE product_id = $1 ORDER BY updated_at DESC`
	if err := r.db.SelectContext(ctx, &history, query, id); err != nil {
		return p, err
	}
	if err := r.attachBidUsers(ctx, history); err != nil {
		return p, err
	}
	p.BidHistory = history

	return p, nil
}

func (r *PgRepository) UpdateProduct(ctx context.Context, product domain.Product, images []domain.ProductImage) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE products SET
				category_id = :category_id,
				type = :type,
				title = :title,
				description = :description,
				brand = :brand,
				purchased_year = :purchased_year,
				distance_driven = :distance_driven,
				offered_amount = :offered_amount,
				pickup_address = :pickup_address,
				updated_at = now()
			WHERE id = :id`

		res, err := tx.NamedExec(query, product)
		if err != nil {
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return sql.ErrNoRows
		}

		if images == nil {
			return nil
		}
		if _, err := tx.Exec(`DELETE FROM product_images WHERE product_id = $1`, product.ID); err != nil {
			return err
		}
		return insertProductImages(tx, product.ID, images)
	})
}

func (r *PgRepository) ListProducts(ctx context.Context, filter app.ProductFilter, page paginate.Params) (paginate.Page[domain.Product], error) {
	where := `WHERE 1=1`
	args := map[string]interface{}{
		"limit":  page.Limit,
		"offset": page.Offset(),
	}

	if filter.CategoryID != "" {
		where += ` AND category_id = :category_id`
		args["category_id"] = filter.CategoryID
	}
	if filter.BidStatus != 0 {
		where += ` AND bid_status = :bid_status`
		args["bid_status"] = filter.BidStatus
	}
	if filter.OrderStatus != 0 {
		where += ` AND order_status = :order_status`
		args["order_status"] = filter.OrderStatus
	}
	if filter.MinPrice != nil {
		where += ` AND accepted_amount >= :min_price`
		args["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		where += ` AND accepted_amount <= :max_price`
		args["max_price"] = *filter.MaxPrice
	}
	if filter.CreatedBy != "" {
		where += ` AND created_by = :created_by`
		args["created_by"] = filter.CreatedBy
	}

	var total int64
	countQuery, countArgs, err := sqlx.Named(`SELECT COUNT(*) FROM products `+where, args)
	if err != nil {
		return paginate.Page[domain.Product]{}, err
	}
	countQuery = r.db.Rebind(countQuery)
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return paginate.Page[domain.Product]{}, err
	}

	products := make([]domain.Product, 0)
	listQuery, listArgs, err := sqlx.Named(
		`SELECT * FROM products `+where+` ORDER BY updated_at DESC LIMIT :limit OFFSET :offset`, args)
	if err != nil {
		return paginate.Page[domain.Product]{}, err
	}
	listQuery = r.db.Rebind(listQuery)
	if err := r.db.SelectContext(ctx, &products, listQuery, listArgs...); err != nil {
		return paginate.Page[domain.Product]{}, err
	}

	if err := r.attachProductRelations(ctx, products); err != nil {
		return paginate.Page[domain.Product]{}, err
	}

	return paginate.NewPage(products, page, total), nil
}

// attachProductRelations batch-loads category, creator summary and images for
// a page of products.
func (r *PgRepository) attachProductRelations(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	productIDs := make([]string, 0, len(products))
	categoryIDs := make([]string, 0, len(products))
	creatorIDs := make([]string, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
		categoryIDs = append(categoryIDs, p.CategoryID)
		creatorIDs = append(creatorIDs, p.CreatedBy)
	}

	categories := make([]domain.Category, 0)
	if err := r.db.SelectContext(ctx, &categories,
		`SELECT * FROM categories WHERE id = ANY($1)`, pq.Array(categoryIDs)); err != nil {
		return err
	}
	categoryByID := make(map[string]domain.Category, len(categories))
	for _, c := range categories {
		categoryByID[c.ID] = c
	}

	creators, err := r.getUserSummaries(ctx, creatorIDs)
	if err != nil {
		return err
	}

	images := make([]domain.ProductImage, 0)
	if err := r.db.SelectContext(ctx, &images,
		`SELECT * FROM product_images WHERE product_id = ANY($1) ORDER BY is_default DESC, created_at ASC`,
		pq.Array(productIDs)); err != nil {
		return err
	}
	imagesByProduct := make(map[string][]domain.ProductImage)
	for _, img := range images {
		imagesByProduct[img.ProductID] = append(imagesByProduct[img.ProductID], img)
	}

	for i := range products {
		if c, ok := categoryByID[products[i].CategoryID]; ok {
			category := c
			products[i].Category = &category
		}
		if u, ok := creators[products[i].CreatedBy]; ok {
			creator := u
			products[i].Creator = &creator
		}
		products[i].Images = imagesByProduct[products[i].ID]
	}

	return nil
}

func (r *PgRepository) getUserSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error) {
	summaries := make([]domain.UserSummary, 0)
	query := `SELECT id, name, email, mobile, role, profile_uri FROM users WHERE id = ANY($1)`

	if err := r.db.SelectContext(ctx, &summaries, query, pq.Array(ids)); err != nil {
		return nil, err
	}

	byID := make(map[string]domain.UserSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	return byID, nil
}
