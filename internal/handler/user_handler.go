package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "webshop/internal/middleware"
	"webshop/internal/model"
	"webshop/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UserRequest is the body of user create and update requests. Role is
// ignored on registration and honoured on update only for admins.
type UserRequest struct {
	FirstName string         `json:"firstName" validate:"required"`
	LastName  string         `json:"lastName" validate:"required"`
	Email     string         `json:"email" validate:"required,email"`
	Password  string         `json:"password" validate:"required,max=72"`
	Role      model.Role     `json:"role" validate:"omitempty,oneof=user admin"`
	Address   *model.Address `json:"address,omitempty"`
}

// ResetPasswordRequest is the body of a password reset request.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

func (r UserRequest) input() service.UserInput {
	return service.UserInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Role:      r.Role,
		Password:  r.Password,
		Address:   r.Address,
	}
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param user body UserRequest true "User payload"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := req.input()
	input.Role = model.RoleUser

	created, err := h.svc.CreateUser(c.Request().Context(), input)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update user
// @Description Users may update only themselves and cannot change their role. Admins may update anyone.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param user body UserRequest true "User payload"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401
// @Failure 403
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	claims, ok := authmw.IdentityFrom(c)
	if !ok {
		return &echo.HTTPError{Code: http.StatusUnauthorized}
	}
	admin := claims.Role == model.RoleAdmin
	if !admin && claims.Subject != id.String() {
		return &echo.HTTPError{Code: http.StatusUnauthorized}
	}

	var req UserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := req.input()
	if !admin {
		input.Role = ""
	}

	updated, err := h.svc.UpdateUser(c.Request().Context(), id, input)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteUser godoc
// @Summary Delete user
// @Description Admin only. Revokes every session of the user.
// @Tags users
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401
// @Failure 403
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(err)
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword godoc
// @Summary Reset password
// @Description Sets the user's password to "Default" and revokes the user's sessions.
// @Tags users
// @Accept json
// @Param request body ResetPasswordRequest true "Account email"
// @Success 204
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/resetPassword [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req.Email); err != nil {
		return errorResponse(err)
	}
	return c.NoContent(http.StatusNoContent)
}
