package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
)

type userRepository struct {
	storage *Storage
}

const userColumns = `id, name, email, password_hash, phone, address, role, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Address, &u.Role, &u.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user model.User) (*model.User, error) {
	const query = `INSERT INTO users (name, email, password_hash, phone, role)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query, user.Name, user.Email, user.PasswordHash, user.Phone, user.Role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.storage.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

// UpdateProfile maps a taken email onto ErrAlreadyExists and a missing user onto ErrNotFound.
func (r *userRepository) UpdateProfile(ctx context.Context, user model.User) (*model.User, error) {
	const query = `UPDATE users SET name=$1, email=$2, phone=$3, address=$4 WHERE id=$5 RETURNING ` + userColumns
	updated, err := scanUser(r.storage.pool.QueryRow(ctx, query, user.Name, user.Email, user.Phone, user.Address, user.ID))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return updated, nil
}

type sessionRepository struct {
	storage *Storage
}

// Revoke records tokenID until expiresAt and drops entries that already expired.
func (r *sessionRepository) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < NOW()`); err != nil {
			return err
		}
		const insert = `INSERT INTO revoked_tokens (token_id, expires_at) VALUES ($1, $2)
                        ON CONFLICT (token_id) DO NOTHING`
		_, err := tx.Exec(ctx, insert, tokenID, expiresAt)
		return err
	})
}

func (r *sessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id=$1)`
	var revoked bool
	if err := r.storage.pool.QueryRow(ctx, query, tokenID).Scan(&revoked); err != nil {
		return false, err
	}
	return revoked, nil
}
