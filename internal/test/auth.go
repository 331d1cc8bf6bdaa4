package test

import (
	"errors"
	"fmt"
	"time"

	pkgAuth "github.com/polkiloo/stockease/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues "token-<id>" tokens whose id is "tid-<id>" unless overridden.
type StrategyStub struct {
	IssueFn func(int64) (pkgAuth.Token, error)
	ParseFn func(string) (pkgAuth.Claims, error)
	NameVal string
	Expiry  time.Time
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64) (pkgAuth.Token, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID)
	}
	return pkgAuth.Token{
		Value:     fmt.Sprintf("token-%d", userID),
		ID:        fmt.Sprintf("tid-%d", userID),
		ExpiresAt: s.expiry(),
	}, nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	var id int64
	if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return pkgAuth.Claims{UserID: id, TokenID: fmt.Sprintf("tid-%d", id), ExpiresAt: s.expiry()}, nil
}

func (s StrategyStub) expiry() time.Time {
	if s.Expiry.IsZero() {
		return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return s.Expiry
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
