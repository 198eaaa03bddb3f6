package models

// APIError represents a standardized error response for the API
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error code constants
const (
	// General errors
	ErrBadRequest       = "BAD_REQUEST"
	ErrUnauthorized     = "UNAUTHORIZED"
	ErrForbidden        = "FORBIDDEN"
	ErrNotFound         = "NOT_FOUND"
	ErrConflict         = "CONFLICT"
	ErrInternalServer   = "INTERNAL_SERVER_ERROR"
	ErrValidationFailed = "VALIDATION_FAILED"
	ErrCSRFInvalid      = "CSRF_TOKEN_INVALID"

	// User-specific errors
	ErrEmailNotAvailable = "EMAIL_NOT_AVAILABLE"
	ErrWeakPassword      = "PASSWORD_POLICY_VIOLATED"
	ErrPasswordMismatch  = "PASSWORD_MISMATCH"

	// Pizza-specific errors
	ErrPizzaNotFound    = "PIZZA_NOT_FOUND"
	ErrPizzaInvalidData = "PIZZA_INVALID_DATA"

	// Ingredient-specific errors
	ErrIngredientNotFound = "INGREDIENT_NOT_FOUND"

	// Purchase/cart-specific errors
	ErrPurchaseNotFound   = "PURCHASE_NOT_FOUND"
	ErrCardNotFound       = "CARD_NOT_FOUND"
	ErrInvalidTransition  = "INVALID_STATUS_TRANSITION"
	ErrPurchaseNotPending = "PURCHASE_NOT_PENDING"
)

// NewAPIError creates a new API error with the given code and message
func NewAPIError(code, message string, details ...map[string]interface{}) APIError {
	err := APIError{
		Code:    code,
		Message: message,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}
