package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BasketItem is a product line inside a basket.
type BasketItem struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
	Quantity int             `json:"quantity"`
}

// Basket represents a shopping basket. Items are stored as a JSON column.
type Basket struct {
	ID           uuid.UUID    `json:"id" gorm:"type:char(36);primaryKey"`
	Items        []BasketItem `json:"items" gorm:"serializer:json;type:json"`
	DiscountCode string       `json:"discountCode,omitempty" gorm:"size:64"`
	ExpireTime   *time.Time   `json:"expireTime,omitempty"`
	CreatedAt    time.Time    `json:"-"`
	UpdatedAt    time.Time    `json:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Basket) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
