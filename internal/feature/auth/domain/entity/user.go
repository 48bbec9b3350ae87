// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Roles a user account can carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered customer or administrator.
// It contains authentication credentials and metadata for account management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It is stored lowercased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// It is empty for placeholder accounts that have never set one;
	// such accounts can never be issued a session token.
	Password string `gorm:"size:255"`

	// Name is the display name shown on the storefront.
	Name string `gorm:"size:255"`

	// Role is either RoleUser or RoleAdmin.
	Role string `gorm:"size:32;not null;default:user"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// HasPassword reports whether the account carries a usable password hash.
func (u *User) HasPassword() bool {
	return u.Password != ""
}
