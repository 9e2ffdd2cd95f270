package services

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. Service functions
// wrap these with context via fmt.Errorf and %w.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRuleExpired         = errors.New("recurring rule is past its end date")
)
