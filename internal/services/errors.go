package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP status codes; anything else is treated as a database failure.
var (
	ErrEmailTaken         = errors.New("email_not_available")
	ErrWeakPassword       = errors.New("password_policy_violated")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrNotPending         = errors.New("purchase_not_pending")
	ErrInvalidTransition  = errors.New("invalid_status_transition")
	ErrInvalidQuantity    = errors.New("invalid_quantity")
	ErrInvalidRole        = errors.New("invalid_role")
)
