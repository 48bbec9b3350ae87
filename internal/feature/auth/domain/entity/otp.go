package entity

import "time"

// OTPEntry is a pending one-time password for a password change.
// Exactly one live entry exists per user at a time; a new request
// overwrites the previous one.
type OTPEntry struct {
	UserID    uint      `json:"user_id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsExpired returns true if the entry has passed its expiry timestamp.
func (e *OTPEntry) IsExpired() bool {
	return time.Now().After(e.ExpiresAt)
}
