package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	apperrors "webshop/internal/errors"
	"webshop/internal/model"
	"webshop/internal/repository"
)

// BasketService handles basket operations.
type BasketService interface {
	CreateBasket(ctx context.Context, basket *model.Basket) (*model.Basket, error)
	GetBasket(ctx context.Context, id uuid.UUID) (*model.Basket, error)
	ListBaskets(ctx context.Context) ([]model.Basket, error)
	UpdateBasket(ctx context.Context, basket *model.Basket) (*model.Basket, error)
	DeleteBasket(ctx context.Context, id uuid.UUID) error
}

type basketService struct {
	repo repository.BasketRepository
}

// NewBasketService creates a new basket service.
func NewBasketService(repo repository.BasketRepository) BasketService {
	return &basketService{repo: repo}
}

func (s *basketService) CreateBasket(ctx context.Context, basket *model.Basket) (*model.Basket, error) {
	if err := validateItems(basket.Items); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, basket); err != nil {
		return nil, fmt.Errorf("create basket: %w", err)
	}
	return basket, nil
}

func (s *basketService) GetBasket(ctx context.Context, id uuid.UUID) (*model.Basket, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *basketService) ListBaskets(ctx context.Context) ([]model.Basket, error) {
	return s.repo.List(ctx)
}

func (s *basketService) UpdateBasket(ctx context.Context, basket *model.Basket) (*model.Basket, error) {
	if err := validateItems(basket.Items); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, basket); err != nil {
		return nil, err
	}
	return basket, nil
}

func (s *basketService) DeleteBasket(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func validateItems(items []model.BasketItem) error {
	for _, item := range items {
		if item.Price.IsNegative() || item.Discount.IsNegative() {
			return apperrors.ErrInvalidPrice
		}
	}
	return nil
}
