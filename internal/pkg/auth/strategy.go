package auth

import "time"

// Strategy issues and verifies session tokens.
type Strategy interface {
	IssueToken(userID int64) (Token, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

// Token is a freshly issued session token.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Claims are the verified contents of a token.
type Claims struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
