package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "webshop/internal/errors"
	"webshop/internal/model"
)

func TestBasketService_CreateBasket(t *testing.T) {
	tests := []struct {
		name          string
		items         []model.BasketItem
		expectedError error
	}{
		{
			name: "valid items",
			items: []model.BasketItem{
				{Name: "Apple", Price: decimal.RequireFromString("0.99"), Discount: decimal.Zero, Quantity: 3},
			},
		},
		{
			name:  "empty basket",
			items: nil,
		},
		{
			name: "negative item price",
			items: []model.BasketItem{
				{Name: "Apple", Price: decimal.NewFromInt(-2), Quantity: 1},
			},
			expectedError: apperrors.ErrInvalidPrice,
		},
		{
			name: "negative item discount",
			items: []model.BasketItem{
				{Name: "Apple", Price: decimal.NewFromInt(2), Discount: decimal.NewFromInt(-1), Quantity: 1},
			},
			expectedError: apperrors.ErrInvalidPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockBasketRepository)
			if tt.expectedError == nil {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Basket")).Return(nil)
			}

			service := NewBasketService(mockRepo)
			basket, err := service.CreateBasket(context.Background(), &model.Basket{Items: tt.items})

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, basket)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Len(t, basket.Items, len(tt.items))
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestBasketService_GetBasket(t *testing.T) {
	id := uuid.New()
	mockRepo := new(MockBasketRepository)
	mockRepo.On("FindByID", mock.Anything, id).Return(nil, apperrors.ErrBasketNotFound)

	_, err := NewBasketService(mockRepo).GetBasket(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrBasketNotFound)
	assert.Equal(t, 404, apperrors.MapErrorToHTTP(err).StatusCode)
}

func TestBasketService_UpdateAndDelete(t *testing.T) {
	basket := &model.Basket{
		ID:           uuid.New(),
		DiscountCode: "SPRING10",
		Items:        []model.BasketItem{{Name: "Pear", Price: decimal.NewFromInt(1), Quantity: 2}},
	}

	mockRepo := new(MockBasketRepository)
	mockRepo.On("Update", mock.Anything, basket).Return(nil)
	mockRepo.On("Delete", mock.Anything, basket.ID).Return(nil)
	mockRepo.On("List", mock.Anything).Return([]model.Basket{*basket}, nil)

	service := NewBasketService(mockRepo)

	updated, err := service.UpdateBasket(context.Background(), basket)
	require.NoError(t, err)
	assert.Equal(t, "SPRING10", updated.DiscountCode)

	baskets, err := service.ListBaskets(context.Background())
	require.NoError(t, err)
	assert.Len(t, baskets, 1)

	require.NoError(t, service.DeleteBasket(context.Background(), basket.ID))
	mockRepo.AssertExpectations(t)
}
