package repository

import (
	"context"
	"time"

	"github.com/polkiloo/stockease/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// UpdateProfile overwrites name, email, phone and address of the stored user.
	UpdateProfile(ctx context.Context, user model.User) (*model.User, error)
}

// SessionRepository keeps revoked token identifiers until they expire.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
