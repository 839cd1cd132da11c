package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "webshop/internal/errors"
	"webshop/internal/model"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// DefaultRefreshTokenExpiry is used when no refresh token lifetime is configured.
	DefaultRefreshTokenExpiry = 7 * 24 * time.Hour
)

// ErrInvalidToken is returned when a token has a bad signature, is malformed or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is what a token proves about its bearer.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   model.Role
}

// IdentityOf returns the token identity of a stored user.
func IdentityOf(user *model.User) Identity {
	return Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
}

// Claims represents JWT claims. The subject holds the user ID.
type Claims struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
	jwt.RegisteredClaims
}

// Identity extracts the bearer identity from the claims.
func (c *Claims) Identity() Identity {
	id, _ := uuid.Parse(c.Subject)
	return Identity{UserID: id, Email: c.Email, Role: c.Role}
}

// JWTService handles JWT token generation and validation. Access and refresh
// tokens are signed with distinct secrets so one can never stand in for the other.
type JWTService struct {
	accessSecret  []byte
	refreshSecret []byte
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewJWTService creates a new JWT service. Empty secrets are accepted here and
// reported as ErrSigning when a token is issued.
func NewJWTService(accessSecret, refreshSecret string, refreshTTL time.Duration) *JWTService {
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenExpiry
	}
	return &JWTService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// RefreshTokenExpiry returns the configured refresh token lifetime.
func (s *JWTService) RefreshTokenExpiry() time.Duration {
	return s.refreshTTL
}

// GenerateAccessToken generates a new access token for the identity.
func (s *JWTService) GenerateAccessToken(identity Identity) (string, error) {
	now := s.now()
	token, _, err := s.sign(identity, s.accessSecret, now.Add(AccessTokenExpiry), "")
	return token, err
}

// GenerateRefreshToken generates a new refresh token for the identity and
// returns its expiry for storage. Every refresh token carries a unique ID.
func (s *JWTService) GenerateRefreshToken(identity Identity) (string, time.Time, error) {
	now := s.now()
	return s.sign(identity, s.refreshSecret, now.Add(s.refreshTTL), uuid.NewString())
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.accessSecret)
}

// ValidateRefreshToken validates a refresh token and returns its claims.
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.refreshSecret)
}

func (s *JWTService) sign(identity Identity, secret []byte, expiresAt time.Time, tokenID string) (string, time.Time, error) {
	if len(secret) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: secret not configured", apperrors.ErrSigning)
	}

	now := s.now()
	claims := &Claims{
		Email: identity.Email,
		Role:  identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   identity.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", apperrors.ErrSigning, err)
	}
	return signed, expiresAt, nil
}

func (s *JWTService) validate(tokenString string, secret []byte) (*Claims, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
