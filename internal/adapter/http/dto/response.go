package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses. The PIN hash is
// never part of any response shape.
type AccountResponse struct {
	AccountNumber string          `json:"account_number"`
	HolderName    string          `json:"holder_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	AccountType   string          `json:"account_type"`
	Balance       decimal.Decimal `json:"balance"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AccountFromDomain converts a public account view to a response.
func AccountFromDomain(a *domain.PublicView) *AccountResponse {
	return &AccountResponse{
		AccountNumber: a.AccountNumber,
		HolderName:    a.HolderName,
		Email:         a.Email,
		Phone:         a.Phone,
		AccountType:   string(a.Type),
		Balance:       a.Balance,
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
	}
}

// LoginResponse represents a successful login.
type LoginResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account"`
}

// BalanceResponse represents a balance read.
type BalanceResponse struct {
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}

// OperationResponse represents the outcome of a deposit or withdrawal.
type OperationResponse struct {
	TransactionNumber string          `json:"transaction_number"`
	NewBalance        decimal.Decimal `json:"new_balance"`
}

// OperationFromResult converts a usecase result to a response.
func OperationFromResult(r *usecase.OperationResult) *OperationResponse {
	return &OperationResponse{
		TransactionNumber: r.TransactionNumber,
		NewBalance:        r.NewBalance,
	}
}

// TransferResponse represents the outcome of a transfer, from the sender's
// perspective.
type TransferResponse struct {
	TransactionNumber string          `json:"transaction_number"`
	TransferGroupID   string          `json:"transfer_group_id"`
	NewBalance        decimal.Decimal `json:"new_balance"`
	RecipientName     string          `json:"recipient_name"`
}

// TransferFromResult converts a usecase result to a response.
func TransferFromResult(r *usecase.TransferResult) *TransferResponse {
	return &TransferResponse{
		TransactionNumber: r.TransactionNumber,
		TransferGroupID:   r.TransferGroupID,
		NewBalance:        r.NewBalance,
		RecipientName:     r.RecipientName,
	}
}

// TransactionResponse represents one ledger record.
type TransactionResponse struct {
	TransactionNumber string          `json:"transaction_number"`
	AccountNumber     string          `json:"account_number"`
	Type              string          `json:"transaction_type"`
	Amount            decimal.Decimal `json:"amount"`
	BalanceAfter      decimal.Decimal `json:"balance_after"`
	TransferGroupID   string          `json:"transfer_group_id,omitempty"`
	Remarks           string          `json:"remarks"`
	CreatedAt         time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a record to a response.
func TransactionFromDomain(r *domain.TransactionRecord) *TransactionResponse {
	return &TransactionResponse{
		TransactionNumber: r.TransactionNumber,
		AccountNumber:     r.AccountNumber,
		Type:              string(r.Type),
		Amount:            r.Amount,
		BalanceAfter:      r.BalanceAfter,
		TransferGroupID:   r.TransferGroupID,
		Remarks:           r.Remarks,
		CreatedAt:         r.CreatedAt,
	}
}

// TransactionsFromDomain converts records to responses.
func TransactionsFromDomain(records []*domain.TransactionRecord) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i, r := range records {
		result[i] = TransactionFromDomain(r)
	}
	return result
}

// ConsistencyResponse represents a log replay check.
type ConsistencyResponse struct {
	AccountNumber  string          `json:"account_number"`
	StoredBalance  decimal.Decimal `json:"stored_balance"`
	ReplayedAmount decimal.Decimal `json:"replayed_amount"`
	Consistent     bool            `json:"consistent"`
}

// ConsistencyFromReport converts a usecase report to a response.
func ConsistencyFromReport(r *usecase.ConsistencyReport) *ConsistencyResponse {
	return &ConsistencyResponse{
		AccountNumber:  r.AccountNumber,
		StoredBalance:  r.StoredBalance,
		ReplayedAmount: r.ReplayedAmount,
		Consistent:     r.Consistent,
	}
}
