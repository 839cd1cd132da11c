package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"webshop/internal/auth"
	"webshop/internal/cache"
	apperrors "webshop/internal/errors"
	"webshop/internal/model"
	"webshop/internal/repository"
)

const (
	userCacheTTL = 5 * time.Minute
	// DefaultResetPassword is the password a user gets after a reset.
	DefaultResetPassword = "Default"
)

// UserInput carries the writable fields of a user, password in plaintext.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Role      model.Role
	Password  string
	Address   *model.Address
}

// UserService exposes domain operations.
type UserService interface {
	CreateUser(ctx context.Context, input UserInput) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ResetPassword(ctx context.Context, email string) error
}

type userService struct {
	repo       repository.UserRepository
	hasher     auth.PasswordHasher
	tokenStore auth.TokenStoreInterface
	cache      *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, hasher auth.PasswordHasher, tokenStore auth.TokenStoreInterface, cache *cache.Client) UserService {
	return &userService{repo: repo, hasher: hasher, tokenStore: tokenStore, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id.String())
}

// CreateUser registers a user. The plaintext password is hashed before storage.
func (s *userService) CreateUser(ctx context.Context, input UserInput) (*model.User, error) {
	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := newUser(input, hashed)
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// UpdateUser replaces a user's fields. An empty role keeps the stored one.
// A changed password is re-hashed and revokes the user's sessions.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, input UserInput) (*model.User, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Role == "" {
		input.Role = existing.Role
	}

	unchanged, err := s.hasher.Verify(input.Password, existing.Password)
	if err != nil {
		return nil, err
	}
	hashed := existing.Password
	if !unchanged {
		if hashed, err = s.hasher.Hash(input.Password); err != nil {
			return nil, err
		}
	}

	user := newUser(input, hashed)
	user.ID = id
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if !unchanged {
		if err := s.tokenStore.DeleteUserRefreshTokens(ctx, id); err != nil {
			return nil, err
		}
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// DeleteUser removes a user together with all of its sessions.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.tokenStore.DeleteUserRefreshTokens(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// ResetPassword sets the user's password to DefaultResetPassword and revokes
// the user's sessions.
func (s *userService) ResetPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("email is required: %w", apperrors.ErrBadRequest)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(DefaultResetPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePasswordByEmail(ctx, email, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.tokenStore.DeleteUserRefreshTokens(ctx, user.ID); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return nil
}

func newUser(input UserInput, passwordHash string) *model.User {
	role := input.Role
	if role == "" {
		role = model.RoleUser
	}
	return &model.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      role,
		Password:  passwordHash,
		Address:   input.Address,
	}
}
