package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "webshop/internal/errors"
)

// NewErrorHandler returns the echo HTTPErrorHandler for the API. Echo errors
// without a message are written as a bare status, domain errors are mapped
// with MapErrorToHTTP and anything that ends up as a 5xx is logged.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			mapped := apperrors.MapErrorToHTTP(err)
			he = &echo.HTTPError{Code: mapped.StatusCode, Message: mapped.ToErrorResponse(), Internal: err}
		}

		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Internal != nil {
				cause = he.Internal
			}
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Path()),
				slog.Int("status", he.Code),
				slog.Any("error", cause),
			)
		}

		var writeErr error
		switch msg := he.Message.(type) {
		case nil:
			writeErr = c.NoContent(he.Code)
		case apperrors.ErrorResponse:
			writeErr = writeJSON(c, he.Code, msg)
		case string:
			writeErr = writeJSON(c, he.Code, apperrors.ErrorResponse{Error: msg, Code: statusCode(he.Code)})
		case error:
			writeErr = writeJSON(c, he.Code, apperrors.ErrorResponse{Error: msg.Error(), Code: statusCode(he.Code)})
		default:
			writeErr = writeJSON(c, he.Code, msg)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", slog.Any("error", writeErr))
		}
	}
}

func writeJSON(c echo.Context, code int, body interface{}) error {
	if c.Request().Method == http.MethodHead {
		return c.NoContent(code)
	}
	return c.JSON(code, body)
}

// statusCode turns an HTTP status into an upper snake case error code, e.g. 404 -> NOT_FOUND.
func statusCode(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "ERROR"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
