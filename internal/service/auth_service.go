package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"webshop/internal/auth"
	apperrors "webshop/internal/errors"
	"webshop/internal/model"
	"webshop/internal/repository"
)

// TokenPair is returned by a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles the login / refresh / logout session cycle.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     auth.PasswordHasher
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	logger     *slog.Logger
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	logger *slog.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		tokenStore: tokenStore,
		logger:     logger,
		now:        time.Now,
	}
}

// Login verifies the credentials, issues an access/refresh token pair and
// records the refresh token. Tokens are only returned once the session record
// is stored.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "password verification failed", slog.String("user_id", user.ID.String()), slog.Any("error", err))
		return nil, apperrors.ErrHashing
	}
	if !ok {
		s.logger.WarnContext(ctx, "login rejected", slog.String("user_id", user.ID.String()))
		return nil, apperrors.ErrInvalidCredentials
	}

	identity := auth.IdentityOf(user)
	accessToken, err := s.jwtService.GenerateAccessToken(identity)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, expiresAt, err := s.jwtService.GenerateRefreshToken(identity)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, &model.RefreshToken{
		RefreshToken: refreshToken,
		UserID:       user.ID,
		ExpiresAt:    expiresAt,
	}); err != nil {
		s.logger.ErrorContext(ctx, "store refresh token", slog.String("user_id", user.ID.String()), slog.Any("error", err))
		return nil, apperrors.ErrTokenPersist
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID.String()))
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshToken exchanges a stored, validly signed refresh token for a new
// access token. The refresh token itself stays valid until logout or expiry.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", apperrors.ErrRefreshTokenMissing
	}

	stored, err := s.tokenStore.FindRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			return "", apperrors.ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("find refresh token: %w", err)
	}
	if stored.Expired(s.now()) {
		return "", apperrors.ErrInvalidRefreshToken
	}

	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", apperrors.ErrInvalidRefreshToken
	}

	identity := claims.Identity()
	if identity.UserID != stored.UserID {
		return "", apperrors.ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(identity)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout deletes the session identified by the refresh token value. An
// unknown token is rejected rather than treated as already logged out.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return apperrors.ErrRefreshTokenMissing
	}

	if err := s.tokenStore.DeleteRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, auth.ErrRefreshTokenNotFound) {
			return apperrors.ErrInvalidRefreshToken
		}
		return fmt.Errorf("delete refresh token: %w", err)
	}

	return nil
}
