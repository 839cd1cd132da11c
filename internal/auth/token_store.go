package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"webshop/internal/model"
)

// ErrRefreshTokenNotFound is returned when no stored session matches a token.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// TokenStoreInterface defines the interface for refresh token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, token *model.RefreshToken) error
	FindRefreshToken(ctx context.Context, refreshToken string) (*model.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, refreshToken string) error
	DeleteUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

// TokenStore keeps refresh tokens in the refresh_tokens table so sessions
// survive restarts and are shared by every instance.
type TokenStore struct {
	db *gorm.DB
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(db *gorm.DB) *TokenStore {
	return &TokenStore{db: db}
}

// StoreRefreshToken persists a refresh token record.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, token *model.RefreshToken) error {
	return pkgerrors.Wrap(s.db.WithContext(ctx).Create(token).Error, "store refresh token")
}

// FindRefreshToken looks up a record by exact token value.
func (s *TokenStore) FindRefreshToken(ctx context.Context, refreshToken string) (*model.RefreshToken, error) {
	var token model.RefreshToken
	err := s.db.WithContext(ctx).Where("refresh_token = ?", refreshToken).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRefreshTokenNotFound
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find refresh token")
	}
	return &token, nil
}

// DeleteRefreshToken removes exactly the record holding the token value.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, refreshToken string) error {
	res := s.db.WithContext(ctx).Where("refresh_token = ?", refreshToken).Delete(&model.RefreshToken{})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "delete refresh token")
	}
	if res.RowsAffected == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteUserRefreshTokens revokes every session of a user.
func (s *TokenStore) DeleteUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RefreshToken{}).Error
	return pkgerrors.Wrap(err, "delete user refresh tokens")
}
