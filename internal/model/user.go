package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the privilege level carried by a user and its access tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Address is the optional postal address of a user, stored as a JSON column.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	Number  string `json:"number,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// User represents a registered shop user.
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName string    `json:"firstName" gorm:"size:255;not null"`
	LastName  string    `json:"lastName" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed
	Address   *Address  `json:"address,omitempty" gorm:"serializer:json;type:json"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	RefreshTokens []RefreshToken `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
