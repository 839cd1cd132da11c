package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"webshop/internal/service"
)

// AuthHandler handles authentication endpoints. Failures are answered with a
// status code only.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginResponse carries the token pair issued at login.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse carries a freshly issued access token.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login godoc
// @Summary Login user
// @Description Verifies email and password and returns an access and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 "email or password missing, or session could not be stored"
// @Failure 403 "wrong password"
// @Failure 404 "unknown email"
// @Failure 500
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest}
	}

	pair, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return statusOnly(err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Exchanges a stored refresh token for a new access token. The refresh token stays valid.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} RefreshResponse
// @Failure 400 "refresh token missing"
// @Failure 403 "refresh token unknown, revoked or expired"
// @Router /token [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest}
	}

	accessToken, err := h.authService.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return statusOnly(err)
	}

	return c.JSON(http.StatusOK, RefreshResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary Logout user
// @Description Revokes the session identified by the refresh token.
// @Tags auth
// @Accept json
// @Param request body LogoutRequest true "Refresh token"
// @Success 204
// @Failure 400 "refresh token missing"
// @Failure 403 "refresh token unknown"
// @Router /logout [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return &echo.HTTPError{Code: http.StatusBadRequest}
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return statusOnly(err)
	}

	return c.NoContent(http.StatusNoContent)
}
