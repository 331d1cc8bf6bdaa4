package model

import "time"

// Role grants access to storefront capabilities.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleAdmin    Role = "ADMIN"
)

// CanSell reports whether the role may publish products.
func (r Role) CanSell() bool {
	return r == RoleSeller || r == RoleAdmin
}

// User represents a registered storefront account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	Role         Role
	CreatedAt    time.Time
}

// ProfileUpdate lists the account fields a user may change. Nil fields are kept.
type ProfileUpdate struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
}

// Registration carries sign-up input.
type Registration struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     Role
}

// Session is an issued auth token bound to a user.
type Session struct {
	Token     string
	TokenID   string
	UserID    int64
	ExpiresAt time.Time
}

// Claims are the verified contents of a session token.
type Claims struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}
