package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents an item sold in the shop.
type Product struct {
	ID          uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string           `json:"name" gorm:"size:255;not null;index"`
	Description string           `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal  `json:"price" gorm:"type:decimal(20,2);not null"`
	Discount    *decimal.Decimal `json:"discount,omitempty" gorm:"type:decimal(20,2)"`
	Category    string           `json:"category" gorm:"size:100;not null;index"`
	Stock       int              `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time        `json:"-"`
	UpdatedAt   time.Time        `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
