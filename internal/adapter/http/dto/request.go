package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// LoginRequest represents a login request.
type LoginRequest struct {
	AccountNumber string `json:"account_number"`
	PIN           string `json:"pin"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		AccountNumber: r.AccountNumber,
		PIN:           r.PIN,
	}
}

// OpenAccountRequest represents an account opening request.
type OpenAccountRequest struct {
	HolderName     string          `json:"holder_name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	AccountType    string          `json:"account_type"`
	PIN            string          `json:"pin"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		HolderName:     r.HolderName,
		Email:          r.Email,
		Phone:          r.Phone,
		Type:           domain.AccountType(r.AccountType),
		PIN:            r.PIN,
		OpeningBalance: r.OpeningBalance,
	}
}

// DepositRequest represents a deposit request.
type DepositRequest struct {
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	Remarks       string          `json:"remarks"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *DepositRequest) ToUseCaseInput() usecase.DepositInput {
	return usecase.DepositInput{
		AccountNumber: r.AccountNumber,
		Amount:        r.Amount,
		Remarks:       r.Remarks,
	}
}

// WithdrawRequest represents a withdrawal request.
type WithdrawRequest struct {
	AccountNumber string          `json:"account_number"`
	Amount        decimal.Decimal `json:"amount"`
	Remarks       string          `json:"remarks"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *WithdrawRequest) ToUseCaseInput() usecase.WithdrawInput {
	return usecase.WithdrawInput{
		AccountNumber: r.AccountNumber,
		Amount:        r.Amount,
		Remarks:       r.Remarks,
	}
}

// TransferRequest represents a transfer request.
type TransferRequest struct {
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	Remarks     string          `json:"remarks"`
}

// ToUseCaseInput converts the request to usecase input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccount: r.FromAccount,
		ToAccount:   r.ToAccount,
		Amount:      r.Amount,
		Remarks:     r.Remarks,
	}
}
