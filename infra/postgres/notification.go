package postgres

import (
	"context"

	"resale/domain"
	"resale/pkg/paginate"

	"github.com/shopspring/decimal"
)

func (r *PgRepository) CreateNotification(ctx context.Context, notification domain.Notification) (domain.Notification, error) {
	var created domain.Notification
	query := `
		INSERT INTO notifications (sender_id, receiver_ids, type, title, description, product_id)
		VALUES (:sender_id, :receiver_ids, :type, :title, :description, :product_id)
		RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, notification)
	if err != nil {
		return created, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&created)
	}
	return created, err
}

func (r *PgRepository) ListUserNotifications(ctx context.Context, userID string, page paginate.Params) (paginate.Page[domain.Notification], error) {
	where := `WHERE $1 = ANY(receiver_ids) AND NOT ($1 = ANY(deleted_by))`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications `+where, userID); err != nil {
		return paginate.Page[domain.Notification]{}, err
	}

	notifications := make([]domain.Notification, 0)
	query := `SELECT * FROM notifications ` + where + ` ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &notifications, query, userID, page.Limit, page.Offset()); err != nil {
		return paginate.Page[domain.Notification]{}, err
	}

	if err := r.attachNotificationRelations(ctx, notifications); err != nil {
		return paginate.Page[domain.Notification]{}, err
	}

	return paginate.NewPage(notifications, page, total), nil
}

func (r *PgRepository) attachNotificationRelations(ctx context.Context, notifications []domain.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	senderIDs := make([]string, 0, len(notifications))
	for _, n := range notifications {
		senderIDs = append(senderIDs, n.SenderID)
	}
	senders, err := r.getUserSummaries(ctx, senderIDs)
	if err != nil {
		return err
	}

	for i := range notifications {
		if s, ok := senders[notifications[i].SenderID]; ok {
			sender := s
			notifications[i].Sender = &sender
		}
		if notifications[i].ProductID != nil {
			product, err := r.GetProduct(ctx, *notifications[i].ProductID)
			if err == nil {
				notifications[i].Product = &product
			}
		}
	}
	return nil
}

func (r *PgRepository) UnreadNotificationCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*) FROM notifications
		WHERE $1 = ANY(receiver_ids) AND NOT ($1 = ANY(read_by)) AND NOT ($1 = ANY(deleted_by))`

	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *PgRepository) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	query := `
		UPDATE notifications
		SET read_by = array_append(read_by, $1), updated_at = now()
		WHERE $1 = ANY(receiver_ids) AND NOT ($1 = ANY(read_by))`

	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

// DeleteNotification removes the user from the receiver set of one
// notification, or of all of them when notificationID is empty. Rows with no
// receivers left are purged.
func (r *PgRepository) DeleteNotification(ctx context.Context, userID, notificationID string) error {
	var err error
	if notificationID == "" {
		query := `
			UPDATE notifications
			SET receiver_ids = array_remove(receiver_ids, $1),
				deleted_by = array_append(deleted_by, $1), updated_at = now()
			WHERE $1 = ANY(receiver_ids)`
		_, err = r.db.ExecContext(ctx, query, userID)
	} else {
		query := `
			UPDATE notifications
			SET receiver_ids = array_remove(receiver_ids, $1),
				deleted_by = array_append(deleted_by, $1), updated_at = now()
			WHERE id = $2 AND $1 = ANY(receiver_ids)`
		_, err = r.db.ExecContext(ctx, query, userID, notificationID)
	}
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `DELETE FROM notifications WHERE receiver_ids = '{}'`)
	return err
}

func (r *PgRepository) TotalUserEarning(ctx context.Context, userID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE paid_to = $1`

	err := r.db.GetContext(ctx, &total, query, userID)
	return total, err
}

func (r *PgRepository) CreateWebhookLog(ctx context.Context, logType string, data []byte) error {
	query := `INSERT INTO webhook_logs (type, data) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, logType, data)
	return err
}
