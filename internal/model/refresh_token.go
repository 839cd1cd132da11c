package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshToken is a persisted session. A user may hold several, one per device.
type RefreshToken struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	RefreshToken string    `json:"refreshToken" gorm:"type:varchar(512);uniqueIndex;not null"`
	UserID       uuid.UUID `json:"user_id" gorm:"column:user_id;type:char(36);not null;index"`
	ExpiresAt    time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the session is past its expiry at the given time.
func (t *RefreshToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
