package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrBadRequest is returned when caller input is missing or malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthenticated is returned when no credential was presented.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when a credential is invalid or expired.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized is returned when the caller's role does not allow the operation.
	ErrUnauthorized = errors.New("insufficient role")
	// ErrNotFound is returned when a resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique resource already exists.
	ErrConflict = errors.New("already exists")
	// ErrInternal is returned for failures the caller cannot fix.
	ErrInternal = errors.New("internal error")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	// ErrProductNotFound is returned when no product matches the lookup.
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	// ErrBasketNotFound is returned when no basket matches the lookup.
	ErrBasketNotFound = fmt.Errorf("basket %w", ErrNotFound)
	// ErrUserAlreadyExists is returned when registering an email twice.
	ErrUserAlreadyExists = fmt.Errorf("user %w", ErrConflict)

	// ErrMissingCredentials is returned when email or password is empty.
	ErrMissingCredentials = fmt.Errorf("email and password are required: %w", ErrBadRequest)
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrForbidden)
	// ErrRefreshTokenMissing is returned when a refresh/logout request carries no token.
	ErrRefreshTokenMissing = fmt.Errorf("refresh token is required: %w", ErrBadRequest)
	// ErrInvalidRefreshToken is returned when a refresh token is unknown, revoked or expired.
	ErrInvalidRefreshToken = fmt.Errorf("invalid or expired refresh token: %w", ErrForbidden)
	// ErrTokenPersist is returned when a freshly issued session cannot be stored.
	ErrTokenPersist = fmt.Errorf("session could not be stored: %w", ErrBadRequest)
	// ErrHashing is returned when the password hasher fails or a stored hash is malformed.
	ErrHashing = fmt.Errorf("password hashing failed: %w", ErrInternal)
	// ErrSigning is returned when a token cannot be signed, e.g. the secret is absent.
	ErrSigning = fmt.Errorf("token signing failed: %w", ErrInternal)
	// ErrInvalidID is returned when a path id is not a valid UUID.
	ErrInvalidID = fmt.Errorf("invalid id: %w", ErrBadRequest)
	// ErrInvalidPrice is returned when a price or discount is negative.
	ErrInvalidPrice = fmt.Errorf("price must not be negative: %w", ErrBadRequest)
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so internal detail never reaches the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, ErrProductNotFound.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrBasketNotFound):
		return NewHTTPError(http.StatusNotFound, ErrBasketNotFound.Error(), "BASKET_NOT_FOUND")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, ErrUserAlreadyExists.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	case errors.Is(err, ErrInvalidID):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidID.Error(), "INVALID_UUID")
	case errors.Is(err, ErrInvalidPrice):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPrice.Error(), "INVALID_PRICE")
	case errors.Is(err, ErrBadRequest):
		return NewHTTPError(http.StatusBadRequest, ErrBadRequest.Error(), "BAD_REQUEST")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthenticated.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrUnauthorized):
		return NewHTTPError(http.StatusUnauthorized, ErrUnauthorized.Error(), "UNAUTHORIZED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, ErrForbidden.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
