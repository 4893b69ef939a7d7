package postgres

import (
	"context"
	"database/sql"

	"resale/domain"

	"github.com/jmoiron/sqlx"
)

func (r *PgRepository) CountProductBids(ctx context.Context, productID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM product_bid_history WHERE product_id = $1`

	err := r.db.GetContext(ctx, &count, query, productID)
	return count, err
}

func (r *PgRepository) CreateBid(ctx context.Context, bid domain.Bid) (domain.Bid, error) {
	var created domain.Bid
	query := `
		INSERT INTO product_bid_history (product_id, bid_created_by, new_value, notes, bid_status)
		VALUES (:product_id, :bid_created_by, :new_value, :notes, :bid_status)
		RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, bid)
	if err != nil {
		return created, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&created)
	}
	return created, err
}

func (r *PgRepository) GetBid(ctx context.Context, id string) (domain.Bid, error) {
	var bid domain.Bid
	query := `SELECT * FROM product_bid_history WHERE id = $1`

	if err := r.db.GetContext(ctx, &bid, query, id); err != nil {
		return bid, err
	}

	bids := []domain.Bid{bid}
	if err := r.attachBidUsers(ctx, bids); err != nil {
		return bid, err
	}
	return bids[0], nil
}

// respondToBid records the response on a bid row, guarded on the row still
// being open. A miss means the round was already closed by a concurrent
// responder and surfaces as sql.ErrNoRows.
func respondToBid(tx *sqlx.Tx, bidID, responderID, notes string, status domain.BidStatus) error {
	query := `
		UPDATE product_bid_history
		SET responded_by = $2, notes = $3, bid_status = $4, updated_at = now()
		WHERE id = $1 AND bid_status = $5`

	res, err := tx.Exec(query, bidID, responderID, notes, status, domain.BidCreated)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PgRepository) CounterBid(ctx context.Context, bidID, responderID, notes string, next domain.Bid) (domain.Bid, error) {
	var created domain.Bid

	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := respondToBid(tx, bidID, responderID, notes, domain.BidModified); err != nil {
			return err
		}

		query := `
			INSERT INTO product_bid_history (product_id, bid_created_by, new_value, notes, bid_status)
			VALUES (:product_id, :bid_created_by, :new_value, :notes, :bid_status)
			RETURNING *`

		rows, err := tx.NamedQuery(query, next)
		if err != nil {
			return err
		}
		defer rows.Close()

		if rows.Next() {
			return rows.StructScan(&created)
		}
		return sql.ErrNoRows
	})

	return created, err
}

func (r *PgRepository) ResolveBid(ctx context.Context, bid domain.Bid, responderID, notes string, status domain.BidStatus, priceAcceptedBy string) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := respondToBid(tx, bid.ID, responderID, notes, status); err != nil {
			return err
		}

		if status != domain.BidAccepted {
			return nil
		}

		query := `
			UPDATE products
			SET accepted_amount = $2, bid_status = $3, price_accepted_by = $4, updated_at = now()
			WHERE id = $1`

		res, err := tx.Exec(query, bid.ProductID, bid.NewValue, status, priceAcceptedBy)
		if err != nil {
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

func (r *PgRepository) attachBidUsers(ctx context.Context, bids []domain.Bid) error {
	if len(bids) == 0 {
		return nil
	}

	ids := make([]string, 0, len(bids)*2)
	for _, b := range bids {
		ids = append(ids, b.BidCreatedBy)
		if b.RespondedBy != nil {
			ids = append(ids, *b.RespondedBy)
		}
	}

	users, err := r.getUserSummaries(ctx, ids)
	if err != nil {
		return err
	}

	for i := range bids {
		if u, ok := users[bids[i].BidCreatedBy]; ok {
			creator := u
			bids[i].BidCreator = &creator
		}
		if bids[i].RespondedBy != nil {
			if u, ok := users[*bids[i].RespondedBy]; ok {
				responder := u
				bids[i].Responder = &responder
			}
		}
	}
	return nil
}
