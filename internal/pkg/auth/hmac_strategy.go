package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid auth token")

// HMACStrategy signs "userID:expires:tokenID" payloads with HMAC-SHA256.
type HMACStrategy struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewHMACStrategy builds HMACStrategy with provided secret and options.
func NewHMACStrategy(secret string, opts Options) *HMACStrategy {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &HMACStrategy{secret: []byte(secret), ttl: ttl, now: now}
}

// IssueToken generates a signed token with a fresh identifier.
func (s *HMACStrategy) IssueToken(userID int64) (Token, error) {
	expires := s.now().Add(s.ttl).Truncate(time.Second)
	id := uuid.NewString()
	payload := fmt.Sprintf("%d:%d:%s", userID, expires.Unix(), id)
	raw := payload + ":" + s.sign(payload)
	return Token{
		Value:     base64.StdEncoding.EncodeToString([]byte(raw)),
		ID:        id,
		ExpiresAt: expires,
	}, nil
}

// ParseToken validates the signature and expiry of token.
func (s *HMACStrategy) ParseToken(token string) (Claims, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return Claims{}, ErrInvalidToken
	}

	payload := strings.Join(parts[:3], ":")
	if !hmac.Equal([]byte(s.sign(payload)), []byte(parts[3])) {
		return Claims{}, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	expires, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	expiresAt := time.Unix(expires, 0)
	if expiresAt.Before(s.now()) {
		return Claims{}, ErrInvalidToken
	}

	if _, err := uuid.Parse(parts[2]); err != nil {
		return Claims{}, ErrInvalidToken
	}

	return Claims{UserID: userID, TokenID: parts[2], ExpiresAt: expiresAt}, nil
}

func (s *HMACStrategy) Name() string {
	return "hmac"
}

func (s *HMACStrategy) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
