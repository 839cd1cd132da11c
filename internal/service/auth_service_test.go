package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"webshop/internal/auth"
	apperrors "webshop/internal/errors"
	"webshop/internal/model"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func newTestAuthService(repo *MockUserRepository, store *MockTokenStore) (*authService, *auth.JWTService) {
	jwtService := auth.NewJWTService(testAccessSecret, testRefreshSecret, time.Hour)
	svc := NewAuthService(repo, auth.NewBcryptHasher(bcrypt.MinCost), jwtService, store, discardLogger()).(*authService)
	return svc, jwtService
}

func barack(t *testing.T) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Kcarab"), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.User{
		ID:        uuid.New(),
		FirstName: "Barack",
		LastName:  "Obama",
		Email:     "barack.obama@euri.com",
		Role:      model.RoleUser,
		Password:  string(hash),
	}
}

func TestAuthService_Login(t *testing.T) {
	user := barack(t)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    user.Email,
			password: "Kcarab",
			setupMock: func(mRepo *MockUserRepository, mStore *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
				mStore.On("StoreRefreshToken", mock.Anything, mock.MatchedBy(func(token *model.RefreshToken) bool {
					return token.UserID == user.ID && token.RefreshToken != "" && !token.ExpiresAt.IsZero()
				})).Return(nil)
			},
		},
		{
			name:          "missing email",
			email:         "",
			password:      "Kcarab",
			setupMock:     func(*MockUserRepository, *MockTokenStore) {},
			expectedError: apperrors.ErrMissingCredentials,
		},
		{
			name:          "missing password",
			email:         user.Email,
			password:      "",
			setupMock:     func(*MockUserRepository, *MockTokenStore) {},
			expectedError: apperrors.ErrMissingCredentials,
		},
		{
			name:     "user not found",
			email:    "nobody@euri.com",
			password: "Kcarab",
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "nobody@euri.com").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:     "password mismatch",
			email:    user.Email,
			password: "abc",
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "malformed stored hash",
			email:    user.Email,
			password: "Kcarab",
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore) {
				broken := *user
				broken.Password = "plaintext"
				mRepo.On("FindByEmail", mock.Anything, user.Email).Return(&broken, nil)
			},
			expectedError: apperrors.ErrHashing,
		},
		{
			name:     "refresh token not persisted",
			email:    user.Email,
			password: "Kcarab",
			setupMock: func(mRepo *MockUserRepository, mStore *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
				mStore.On("StoreRefreshToken", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
			},
			expectedError: apperrors.ErrTokenPersist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockStore)

			service, jwtService := newTestAuthService(mockRepo, mockStore)
			pair, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, pair)

				claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
				require.NoError(t, err)
				assert.Equal(t, user.Email, claims.Email)
				assert.Equal(t, model.RoleUser, claims.Role)

				stored := mockStore.Calls[0].Arguments.Get(1).(*model.RefreshToken)
				assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
			}

			if tt.email == "" || tt.password == "" {
				mockRepo.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
			}
			if tt.expectedError != nil && tt.expectedError != apperrors.ErrTokenPersist {
				mockStore.AssertNotCalled(t, "StoreRefreshToken", mock.Anything, mock.Anything)
			}
			mockRepo.AssertExpectations(t)
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	user := barack(t)
	jwtService := auth.NewJWTService(testAccessSecret, testRefreshSecret, time.Hour)
	validToken, expiresAt, err := jwtService.GenerateRefreshToken(auth.IdentityOf(user))
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockTokenStore)
		expectedError error
	}{
		{
			name:  "stored and valid",
			token: validToken,
			setupMock: func(m *MockTokenStore) {
				m.On("FindRefreshToken", mock.Anything, validToken).
					Return(&model.RefreshToken{RefreshToken: validToken, UserID: user.ID, ExpiresAt: expiresAt}, nil)
			},
		},
		{
			name:          "missing token",
			token:         "",
			setupMock:     func(*MockTokenStore) {},
			expectedError: apperrors.ErrRefreshTokenMissing,
		},
		{
			name:  "validly signed but not stored",
			token: validToken,
			setupMock: func(m *MockTokenStore) {
				m.On("FindRefreshToken", mock.Anything, validToken).Return(nil, auth.ErrRefreshTokenNotFound)
			},
			expectedError: apperrors.ErrInvalidRefreshToken,
		},
		{
			name:  "stored but not a valid signature",
			token: "avbsou47nbcijs35cnao",
			setupMock: func(m *MockTokenStore) {
				m.On("FindRefreshToken", mock.Anything, "avbsou47nbcijs35cnao").
					Return(&model.RefreshToken{RefreshToken: "avbsou47nbcijs35cnao", UserID: user.ID}, nil)
			},
			expectedError: apperrors.ErrInvalidRefreshToken,
		},
		{
			name:  "stored record expired",
			token: validToken,
			setupMock: func(m *MockTokenStore) {
				m.On("FindRefreshToken", mock.Anything, validToken).
					Return(&model.RefreshToken{RefreshToken: validToken, UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)}, nil)
			},
			expectedError: apperrors.ErrInvalidRefreshToken,
		},
		{
			name:  "record belongs to another user",
			token: validToken,
			setupMock: func(m *MockTokenStore) {
				m.On("FindRefreshToken", mock.Anything, validToken).
					Return(&model.RefreshToken{RefreshToken: validToken, UserID: uuid.New(), ExpiresAt: expiresAt}, nil)
			},
			expectedError: apperrors.ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockTokenStore)
			tt.setupMock(mockStore)

			service, _ := newTestAuthService(new(MockUserRepository), mockStore)
			accessToken, err := service.RefreshToken(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, accessToken)
			} else {
				require.NoError(t, err)
				claims, err := jwtService.ValidateAccessToken(accessToken)
				require.NoError(t, err)
				assert.Equal(t, auth.IdentityOf(user), claims.Identity())
			}
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshTokenIsReusable(t *testing.T) {
	user := barack(t)
	mockRepo := new(MockUserRepository)
	mockStore := new(MockTokenStore)
	service, _ := newTestAuthService(mockRepo, mockStore)

	var stored *model.RefreshToken
	mockRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	mockStore.On("StoreRefreshToken", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*model.RefreshToken)
	}).Return(nil)

	pair, err := service.Login(context.Background(), user.Email, "Kcarab")
	require.NoError(t, err)

	mockStore.On("FindRefreshToken", mock.Anything, pair.RefreshToken).Return(stored, nil)

	for i := 0; i < 2; i++ {
		accessToken, err := service.RefreshToken(context.Background(), pair.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, accessToken)
	}
	mockStore.AssertNumberOfCalls(t, "FindRefreshToken", 2)
	mockStore.AssertNotCalled(t, "DeleteRefreshToken", mock.Anything, mock.Anything)
}

func TestAuthService_Logout(t *testing.T) {
	tests := []struct {
		name          string
		token         string
		setupMock     func(*MockTokenStore)
		expectedError error
	}{
		{
			name:  "known token",
			token: "stored-token",
			setupMock: func(m *MockTokenStore) {
				m.On("DeleteRefreshToken", mock.Anything, "stored-token").Return(nil).Once()
			},
		},
		{
			name:          "missing token",
			token:         "",
			setupMock:     func(*MockTokenStore) {},
			expectedError: apperrors.ErrRefreshTokenMissing,
		},
		{
			name:  "unknown token",
			token: "unknown-token",
			setupMock: func(m *MockTokenStore) {
				m.On("DeleteRefreshToken", mock.Anything, "unknown-token").Return(auth.ErrRefreshTokenNotFound)
			},
			expectedError: apperrors.ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockStore := new(MockTokenStore)
			tt.setupMock(mockStore)

			service, _ := newTestAuthService(new(MockUserRepository), mockStore)
			err := service.Logout(context.Background(), tt.token)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			mockStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_LogoutStorageFailure(t *testing.T) {
	mockStore := new(MockTokenStore)
	mockStore.On("DeleteRefreshToken", mock.Anything, "stored-token").Return(errors.New("connection reset"))

	service, _ := newTestAuthService(new(MockUserRepository), mockStore)
	err := service.Logout(context.Background(), "stored-token")

	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)
	assert.Equal(t, 500, apperrors.MapErrorToHTTP(err).StatusCode)
}
