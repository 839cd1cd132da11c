package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"webshop/internal/cache"
	apperrors "webshop/internal/errors"
	"webshop/internal/model"
	"webshop/internal/repository"
)

const productCacheTTL = 5 * time.Minute

// ProductService handles product operations.
type ProductService interface {
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo  repository.ProductRepository
	cache *cache.Client
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, cache *cache.Client) ProductService {
	return &productService{repo: repo, cache: cache}
}

func (s *productService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("product:%s", id.String())
}

// CreateProduct stores a new product.
func (s *productService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validatePrices(product); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// GetProduct retrieves a product by ID with caching.
func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Product
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, productCacheTTL)
	}
	return product, nil
}

// ListProducts lists all products.
func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.List(ctx)
}

// UpdateProduct replaces an existing product.
func (s *productService) UpdateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := validatePrices(product); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(product.ID))
	return product, nil
}

// DeleteProduct removes a product.
func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

func validatePrices(product *model.Product) error {
	if product.Price.IsNegative() {
		return apperrors.ErrInvalidPrice
	}
	if product.Discount != nil && product.Discount.IsNegative() {
		return apperrors.ErrInvalidPrice
	}
	return nil
}
