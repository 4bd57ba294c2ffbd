package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidHolderName    = errors.New("invalid holder name")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrInvalidPIN           = errors.New("PIN must be 4 to 6 digits")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrAmountTooLarge       = errors.New("amount exceeds maximum allowed")
	ErrRemarksTooLong       = errors.New("remarks exceed maximum length")
)

// Validation constants
const (
	MaxHolderNameLength = 255
	MaxRemarksLength    = 500
	MaxOperationAmount  = "1000000000" // single-operation cap
)

var (
	emailRegex         = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	pinRegex           = regexp.MustCompile(`^[0-9]{4,6}$`)
	accountNumberRegex = regexp.MustCompile(`^[A-Z0-9]{4,32}$`)
)

// ValidateHolderName validates an account holder name.
func ValidateHolderName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidHolderName)
	}

	if len(name) > MaxHolderNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidHolderName, MaxHolderNameLength)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePIN validates the shape of a plaintext PIN before hashing.
func ValidatePIN(pin string) error {
	if !pinRegex.MatchString(pin) {
		return ErrInvalidPIN
	}

	return nil
}

// ValidateAccountNumber validates account number format.
func ValidateAccountNumber(number string) error {
	if !accountNumberRegex.MatchString(number) {
		return ErrInvalidAccountNumber
	}

	return nil
}

// ValidateAmount validates a deposit/withdrawal/transfer amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxOperationAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxOperationAmount)
	}

	return nil
}

// ValidateRemarks validates free-text remarks length.
func ValidateRemarks(remarks string) error {
	if len(remarks) > MaxRemarksLength {
		return fmt.Errorf("%w: limit is %d characters", ErrRemarksTooLong, MaxRemarksLength)
	}

	return nil
}
