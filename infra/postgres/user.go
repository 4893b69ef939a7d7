package postgres

import (
	"context"
	"database/sql"
	"time"

	"resale/app"
	"resale/domain"
	"resale/pkg/paginate"
)

func (r *PgRepository) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	var created domain.User
	query := `
		INSERT INTO users (
			name, email, mobile, role, password,
			profile_uri, identity_proof_type, identity_proof_number, identity_proof_image_uri,
			address_line1, landmark, city, state, zip_code, country,
			bank_account_number, ifsc_code, account_holder_name, upi,
			customer_id, fund_account_id, otp, otp_expiry
		) VALUES (
			:name, :email, :mobile, :role, :password,
			:profile_uri, :identity_proof_type, :identity_proof_number, :identity_proof_image_uri,
			:address_line1, :landmark, :city, :state, :zip_code, :country,
			:bank_account_number, :ifsc_code, :account_holder_name, :upi,
			:customer_id, :fund_account_id, :otp, :otp_expiry
		) RETURNING *`

	rows, err := r.db.NamedQueryContext(ctx, query, user)
	if err != nil {
		return created, err
	}
	defer rows.Close()

	if rows.Next() {
		err = rows.StructScan(&created)
	}
	return created, err
}

func (r *PgRepository) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	return u, err
}

func (r *PgRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE email = lower($1)`, email)
	return u, err
}

func (r *PgRepository) GetUserByMobile(ctx context.Context, mobile string) (domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE mobile = $1`, mobile)
	return u, err
}

func (r *PgRepository) GetUserByEmailOrMobile(ctx context.Context, email, mobile string) (domain.User, error) {
	var u domain.User
	query := `SELECT * FROM users WHERE (email = lower($1) AND $1 <> '') OR (mobile = $2 AND $2 <> '') LIMIT 1`

	err := r.db.GetContext(ctx, &u, query, email, mobile)
	return u, err
}

func (r *PgRepository) ListUsers(ctx context.Context, filter app.UserFilter, page paginate.Params) (paginate.Page[domain.User], error) {
	where := `WHERE role <> $1`
	args := []interface{}{domain.RoleAdmin}

	if filter.Search != "" {
		where += ` AND (name ILIKE $2 OR email ILIKE $2)`
		args = append(args, "%"+filter.Search+"%")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users `+where, args...); err != nil {
		return paginate.Page[domain.User]{}, err
	}

	users := make([]domain.User, 0)
	query := `SELECT * FROM users ` + where + ` ORDER BY updated_at DESC`
	if filter.Search != "" {
		query += ` LIMIT $3 OFFSET $4`
	} else {
		query += ` LIMIT $2 OFFSET $3`
	}
	args = append(args, page.Limit, page.Offset())

	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return paginate.Page[domain.User]{}, err
	}

	return paginate.NewPage(users, page, total), nil
}

func (r *PgRepository) GetAdminIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0)
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM users WHERE role = $1`, domain.RoleAdmin)
	return ids, err
}

func (r *PgRepository) UpdateUserProfile(ctx context.Context, userID, name, email string) error {
	query := `UPDATE users SET name = $2, email = lower($3), updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, userID, name, email)
}

func (r *PgRepository) SetUserPassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password = $2, updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, userID, passwordHash)
}

func (r *PgRepository) SetUserOtp(ctx context.Context, userID, otp string, expiry time.Time) error {
	query := `UPDATE users SET otp = $2, otp_expiry = $3, updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, userID, otp, expiry)
}

func (r *PgRepository) ResetUserPassword(ctx context.Context, userID, passwordHash string) error {
	query := `
		UPDATE users
		SET password = $2, otp = NULL, otp_expiry = NULL, updated_at = now()
		WHERE id = $1`
	return r.execExpectingRow(ctx, query, userID, passwordHash)
}

func (r *PgRepository) SetMobileChangeOtp(ctx context.Context, userID, tempMobile, otp string, expiry time.Time) error {
	query := `
		UPDATE users
		SET temp_mobile = $2, update_mobile_otp = $3, update_mobile_otp_expiry = $4, updated_at = now()
		WHERE id = $1`
	return r.execExpectingRow(ctx, query, userID, tempMobile, otp, expiry)
}

func (r *PgRepository) CommitMobileChange(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET mobile = temp_mobile, temp_mobile = NULL,
			update_mobile_otp = NULL, update_mobile_otp_expiry = NULL, updated_at = now()
		WHERE id = $1 AND temp_mobile IS NOT NULL`
	return r.execExpectingRow(ctx, query, userID)
}

func (r *PgRepository) UpdateUserFunds(ctx context.Context, userID string, bankAccountNumber, ifscCode, accountHolderName, upi, fundAccountID string) error {
	query := `
		UPDATE users
		SET bank_account_number = $2, ifsc_code = $3, account_holder_name = $4,
			upi = $5, fund_account_id = $6, updated_at = now()
		WHERE id = $1`
	return r.execExpectingRow(ctx, query, userID, bankAccountNumber, ifscCode, accountHolderName, upi, fundAccountID)
}

func (r *PgRepository) SetUserBlocked(ctx context.Context, userID string, reported bool, reason string) error {
	query := `UPDATE users SET is_reported = $2, reason_for_reporting = $3, updated_at = now() WHERE id = $1`
	return r.execExpectingRow(ctx, query, userID, reported, reason)
}

func (r *PgRepository) execExpectingRow(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
