package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType marks the direction of a balance change.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "CREDIT"
	TransactionTypeDebit  TransactionType = "DEBIT"
)

// TransactionRecord is one immutable entry in an account's ledger. Records
// are append-only; nothing in the system updates or deletes them.
//
// TransferGroupID is set on both legs of a transfer and empty otherwise, so
// the two legs can be reconciled without parsing remarks.
type TransactionRecord struct {
	TransactionNumber string
	AccountNumber     string
	Type              TransactionType
	Amount            decimal.Decimal
	BalanceAfter      decimal.Decimal
	TransferGroupID   string
	Remarks           string
	CreatedAt         time.Time
}

// Signed returns the amount with DEBIT negated, for replaying a log against
// an opening balance.
func (r *TransactionRecord) Signed() decimal.Decimal {
	if r.Type == TransactionTypeDebit {
		return r.Amount.Neg()
	}
	return r.Amount
}
