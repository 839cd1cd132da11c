package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "webshop/internal/errors"
)

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// errorResponse maps a domain error to an echo error carrying an ErrorResponse body.
func errorResponse(err error) error {
	mapped := apperrors.MapErrorToHTTP(err)
	return &echo.HTTPError{
		Code:     mapped.StatusCode,
		Message:  mapped.ToErrorResponse(),
		Internal: err,
	}
}

// statusOnly maps a domain error to an echo error without a body.
func statusOnly(err error) error {
	return &echo.HTTPError{
		Code:     apperrors.MapErrorToHTTP(err).StatusCode,
		Internal: err,
	}
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	return nil
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.ErrInvalidID
	}
	return id, nil
}
