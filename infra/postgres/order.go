package postgres

import (
	"context"
	"database/sql"
	"time"

	"resale/domain"

	"github.com/jmoiron/sqlx"
)

// The order-status transitions below carry the expected current state in the
// WHERE clause. Two concurrent requests cannot both match, so transitions are
// never replayed or reversed even without cross-request locking.

func (r *PgRepository) EstimatePickupDate(ctx context.Context, productID string, date time.Time) (bool, error) {
	query := `
		UPDATE products
		SET order_status = $2, picked_up_date = $3, updated_at = now()
		WHERE id = $1 AND bid_status = $4 AND order_status IN ($5, $2)`

	res, err := r.db.ExecContext(ctx, query, productID,
		domain.OrderPickupDateEstimated, date, domain.BidAccepted, domain.OrderPending)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *PgRepository) SetOrderPickedUp(ctx context.Context, productID string) (bool, error) {
	query := `
		UPDATE products
		SET order_status = $2, updated_at = now()
		WHERE id = $1 AND bid_status = $3 AND order_status = $4`

	res, err := r.db.ExecContext(ctx, query, productID,
		domain.OrderPickedUp, domain.BidAccepted, domain.OrderPickupDateEstimated)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

// BeginPayout claims the payout for this request. The flag doubles as an
// idempotency guard: a retried request cannot issue a second external payout
// while one is in flight or after the order is paid.
func (r *PgRepository) BeginPayout(ctx context.Context, productID string) (bool, error) {
	query := `
		UPDATE products
		SET payout_in_progress = TRUE, updated_at = now()
		WHERE id = $1 AND bid_status = $2 AND order_status = $3 AND NOT payout_in_progress`

	res, err := r.db.ExecContext(ctx, query, productID, domain.BidAccepted, domain.OrderPickedUp)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *PgRepository) CompletePayout(ctx context.Context, payment domain.Payment) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		insert := `
			INSERT INTO payments (paid_by, paid_to, product_id, payout_id, amount, status)
			VALUES (:paid_by, :paid_to, :product_id, :payout_id, :amount, :status)`

		if _, err := tx.NamedExec(insert, payment); err != nil {
			return err
		}

		update := `
			UPDATE products
			SET order_status = $2, payout_in_progress = FALSE, updated_at = now()
			WHERE id = $1 AND order_status = $3`

		res, err := tx.Exec(update, payment.ProductID, domain.OrderPaid, domain.OrderPickedUp)
		if err != nil {
			return err
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

func (r *PgRepository) AbortPayout(ctx context.Context, productID string) error {
	query := `UPDATE products SET payout_in_progress = FALSE, updated_at = now() WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, productID)
	return err
}
