package services

import "errors"

// Common service errors
var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicate           = errors.New("already exists")
	ErrInvalidAmount       = errors.New("payment amount must be positive")
	ErrInsufficientBalance = errors.New("allocation exceeds available balance")
	ErrCompanyRequired     = errors.New("transport company name is required")
	ErrInvalidState        = errors.New("invalid settlement state transition")
	ErrInvalidOption       = errors.New("option value must not be empty")
)
