package repository

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	apperrors "webshop/internal/errors"
	"webshop/internal/model"
)

// BasketRepository defines basket persistence operations.
type BasketRepository interface {
	Create(ctx context.Context, basket *model.Basket) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Basket, error)
	List(ctx context.Context) ([]model.Basket, error)
	Update(ctx context.Context, basket *model.Basket) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type basketRepository struct {
	db *gorm.DB
}

// NewBasketRepository creates a new basket repository.
func NewBasketRepository(db *gorm.DB) BasketRepository {
	return &basketRepository{db: db}
}

// Create creates a new basket.
func (r *basketRepository) Create(ctx context.Context, basket *model.Basket) error {
	return pkgerrors.WithStack(r.db.WithContext(ctx).Create(basket).Error)
}

// FindByID finds a basket by ID.
func (r *basketRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Basket, error) {
	var basket model.Basket
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&basket).Error; err != nil {
		return nil, notFound(err, apperrors.ErrBasketNotFound)
	}
	return &basket, nil
}

// List lists all baskets.
func (r *basketRepository) List(ctx context.Context) ([]model.Basket, error) {
	var baskets []model.Basket
	if err := r.db.WithContext(ctx).Order("created_at").Find(&baskets).Error; err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	return baskets, nil
}

// Update replaces an existing basket.
func (r *basketRepository) Update(ctx context.Context, basket *model.Basket) error {
	existing, err := r.FindByID(ctx, basket.ID)
	if err != nil {
		return err
	}
	basket.CreatedAt = existing.CreatedAt
	return pkgerrors.WithStack(r.db.WithContext(ctx).Save(basket).Error)
}

// Delete removes a basket by ID.
func (r *basketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.Basket{}, id, apperrors.ErrBasketNotFound)
}
