package models

import (
	"time"
)

// RefreshToken stores issued refresh tokens so they can be rotated and revoked.
type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"size:36;index" json:"userId"`
	Token     string    `gorm:"size:512;uniqueIndex:idx_refresh_token,length:255" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsRevoked bool      `gorm:"default:false" json:"isRevoked"`
}
