package repository

import (
	"context"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	apperrors "webshop/internal/errors"
	"webshop/internal/model"
)

// ProductRepository defines product persistence operations.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create creates a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	return pkgerrors.WithStack(r.db.WithContext(ctx).Create(product).Error)
}

// FindByID finds a product by ID.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, notFound(err, apperrors.ErrProductNotFound)
	}
	return &product, nil
}

// List lists all products.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.WithContext(ctx).Order("created_at").Find(&products).Error; err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	return products, nil
}

// Update replaces an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	existing, err := r.FindByID(ctx, product.ID)
	if err != nil {
		return err
	}
	product.CreatedAt = existing.CreatedAt
	return pkgerrors.WithStack(r.db.WithContext(ctx).Save(product).Error)
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &model.Product{}, id, apperrors.ErrProductNotFound)
}
