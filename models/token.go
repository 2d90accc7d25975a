package models

import (
	"time"
)

// RevokedToken blacklists a refresh token by its jti claim. Rows older
// than their expiry are safe to purge since the token would no longer
// verify anyway.
type RevokedToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JTI       string    `json:"jti" gorm:"uniqueIndex;not null;size:191"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
