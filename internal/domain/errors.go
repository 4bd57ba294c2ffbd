package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid account number or PIN")

	// Ledger errors
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrSameAccount       = errors.New("cannot transfer to same account")

	// ErrConstraintViolation indicates the database rejected a write that the
	// locked-region checks should have made impossible. It is a bug, not a
	// caller error, and must never be retried.
	ErrConstraintViolation = errors.New("ledger constraint violation")

	// ErrInfrastructure wraps storage failures. It is the only error class a
	// caller may retry.
	ErrInfrastructure = errors.New("storage unavailable")
)
