package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType enumerates the supported account products.
type AccountType string

const (
	AccountTypeSavings AccountType = "SAVINGS"
	AccountTypeCurrent AccountType = "CURRENT"
)

// IsValid reports whether the account type is one of the known products.
func (t AccountType) IsValid() bool {
	return t == AccountTypeSavings || t == AccountTypeCurrent
}

// AccountStatus enumerates account lifecycle states.
type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

// Account represents a bank account holding a single balance.
// PINHash is a bcrypt hash; the plaintext PIN is never stored.
type Account struct {
	AccountNumber string
	HolderName    string
	Email         string
	Phone         string
	Type          AccountType
	PINHash       string
	Balance       decimal.Decimal
	Status        AccountStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive reports whether the account may authenticate and transact.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// ValidateWithdrawal checks that the balance covers amount. Callers must hold
// the row lock on the account; checking earlier reintroduces the
// check-then-act race.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after debiting amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after crediting amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// PublicView is the account as exposed to callers: everything except the
// PIN hash.
type PublicView struct {
	AccountNumber string
	HolderName    string
	Email         string
	Phone         string
	Type          AccountType
	Balance       decimal.Decimal
	Status        AccountStatus
	CreatedAt     time.Time
}

// Public strips the credential from an account.
func (a *Account) Public() *PublicView {
	return &PublicView{
		AccountNumber: a.AccountNumber,
		HolderName:    a.HolderName,
		Email:         a.Email,
		Phone:         a.Phone,
		Type:          a.Type,
		Balance:       a.Balance,
		Status:        a.Status,
		CreatedAt:     a.CreatedAt,
	}
}
