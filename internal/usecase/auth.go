package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/stockease/internal/domain/errors"
	"github.com/polkiloo/stockease/internal/domain/model"
	"github.com/polkiloo/stockease/internal/domain/repository"
	pkgAuth "github.com/polkiloo/stockease/internal/pkg/auth"
)

// SessionProvider owns the signed-in state of a client.
type SessionProvider interface {
	Login(ctx context.Context, email, password string) (*model.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*model.User, error)
}

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
}

var _ SessionProvider = (*AuthUseCase)(nil)

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	hasher pkgAuth.PasswordHasher,
	strategy pkgAuth.Strategy,
) *AuthUseCase {
	return &AuthUseCase{users: users, sessions: sessions, hasher: hasher, tokens: strategy}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and signs it in.
func (u *AuthUseCase) Register(ctx context.Context, reg model.Registration) (*model.Session, error) {
	name := strings.TrimSpace(reg.Name)
	email := normalizeEmail(reg.Email)
	if name == "" || email == "" || reg.Password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	role := reg.Role
	switch role {
	case "":
		role = model.RoleCustomer
	case model.RoleCustomer, model.RoleSeller, model.RoleAdmin:
	default:
		return nil, domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(reg.Phone),
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	return u.issue(usr.ID)
}

// Login validates credentials and returns a new session.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}

	return u.issue(usr.ID)
}

func (u *AuthUseCase) issue(userID int64) (*model.Session, error) {
	token, err := u.tokens.IssueToken(userID)
	if err != nil {
		return nil, err
	}
	return &model.Session{
		Token:     token.Value,
		TokenID:   token.ID,
		UserID:    userID,
		ExpiresAt: token.ExpiresAt,
	}, nil
}

// Authorize verifies the token signature, expiry and revocation.
func (u *AuthUseCase) Authorize(ctx context.Context, token string) (model.Claims, error) {
	if token == "" {
		return model.Claims{}, pkgAuth.ErrInvalidToken
	}
	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return model.Claims{}, err
	}
	revoked, err := u.sessions.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return model.Claims{}, err
	}
	if revoked {
		return model.Claims{}, pkgAuth.ErrInvalidToken
	}
	return model.Claims{UserID: claims.UserID, TokenID: claims.TokenID, ExpiresAt: claims.ExpiresAt}, nil
}

// Logout revokes the token until it would have expired anyway.
func (u *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := u.Authorize(ctx, token)
	if err != nil {
		return err
	}
	return u.sessions.Revoke(ctx, claims.TokenID, claims.ExpiresAt)
}

// CurrentUser resolves the account behind a valid token.
func (u *AuthUseCase) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	claims, err := u.Authorize(ctx, token)
	if err != nil {
		return nil, err
	}
	return u.users.GetByID(ctx, claims.UserID)
}

// UpdateProfile applies the given fields to the user's own account.
func (u *AuthUseCase) UpdateProfile(ctx context.Context, userID int64, upd model.ProfileUpdate) (*model.User, error) {
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	changed := *usr
	if upd.Name != nil {
		changed.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Email != nil {
		changed.Email = normalizeEmail(*upd.Email)
	}
	if upd.Phone != nil {
		changed.Phone = strings.TrimSpace(*upd.Phone)
	}
	if upd.Address != nil {
		changed.Address = strings.TrimSpace(*upd.Address)
	}
	if changed.Name == "" || changed.Email == "" {
		return nil, domainErrors.ErrInvalidProfile
	}

	return u.users.UpdateProfile(ctx, changed)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}
