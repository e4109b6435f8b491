package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateCategory is returned when a category name collides
	// with an existing one, ignoring case.
	ErrDuplicateCategory = errors.New("a category with this name already exists")
	// ErrCategoryInUse is returned when deleting a category that
	// products still reference.
	ErrCategoryInUse = errors.New("category is still referenced by products")
	// ErrNotAuthenticated is returned when no valid session accompanies
	// a request that requires one.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrSessionExpired is returned when a session token is past its
	// expiry. Reads treat this the same as anonymous.
	ErrSessionExpired = errors.New("session expired")
	// ErrForbidden is returned when the caller's role does not permit
	// the operation. Deliberately flat: it carries no resource detail.
	ErrForbidden = errors.New("forbidden")
	// ErrCannotModifyOwner is returned when a role update targets the owner.
	ErrCannotModifyOwner = errors.New("cannot modify the owner's role")
	// ErrInvalidRole is returned when a role update names an unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidStockStatus is returned for an unknown stock_status filter.
	ErrInvalidStockStatus = errors.New("invalid stock status")
	// ErrInvalidSortBy is returned for an unknown sort_by value.
	ErrInvalidSortBy = errors.New("invalid sort order")
	// ErrInvalidPriceBound is returned when a price bound is not a number.
	ErrInvalidPriceBound = errors.New("invalid price bound")
	// ErrEmptyUpdate is returned when a partial update carries no fields.
	ErrEmptyUpdate = errors.New("no fields to update")
	// ErrAuthProvider is returned when the external auth provider
	// rejects or fails the session handshake.
	ErrAuthProvider = errors.New("failed to validate session with auth provider")
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

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrProductNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "PRODUCT_NOT_FOUND")
	case errors.Is(err, ErrCategoryNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrDuplicateCategory):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_CATEGORY")
	case errors.Is(err, ErrCategoryInUse):
		return NewHTTPError(http.StatusConflict, err.Error(), "CATEGORY_IN_USE")
	case errors.Is(err, ErrNotAuthenticated), errors.Is(err, ErrSessionExpired):
		return NewHTTPError(http.StatusUnauthorized, ErrNotAuthenticated.Error(), "NOT_AUTHENTICATED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrCannotModifyOwner):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CANNOT_MODIFY_OWNER")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidStockStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STOCK_STATUS")
	case errors.Is(err, ErrInvalidSortBy):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SORT_BY")
	case errors.Is(err, ErrInvalidPriceBound):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE_BOUND")
	case errors.Is(err, ErrEmptyUpdate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "EMPTY_UPDATE")
	case errors.Is(err, ErrAuthProvider):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "AUTH_PROVIDER_FAILED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
