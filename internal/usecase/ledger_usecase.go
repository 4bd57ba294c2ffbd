package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// LedgerUseCase owns every balance mutation: deposit, withdraw, transfer.
// Each operation is exactly one atomic unit of work against the store.
type LedgerUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	cache       Cache
}

// NewLedgerUseCase creates a new LedgerUseCase. cache may be nil.
func NewLedgerUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	cache Cache,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		cache:       cache,
	}
}

// ledgerWrite is one account's outcome of a unit of work: the balance to
// persist and the record to append alongside it.
type ledgerWrite struct {
	accountNumber string
	newBalance    decimal.Decimal
	record        *domain.TransactionRecord
}

// apply runs fn as one atomic, isolated unit over the touched accounts.
//
// Accounts are locked with FOR UPDATE in ascending account-number order so
// that two units touching overlapping sets can never deadlock. fn sees the
// current balances under lock and returns the writes to commit, or a domain
// failure, in which case nothing is written. Transient storage failures
// (deadlock, serialization) rerun the whole unit, including fn.
func (uc *LedgerUseCase) apply(
	ctx context.Context,
	touched []string,
	fn func(accounts map[string]*domain.Account, now time.Time) ([]ledgerWrite, error),
) error {
	sort.Strings(touched)

	unit := func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return infraErr(err)
		}
		defer tx.Rollback(ctx)

		accounts, err := uc.accountRepo.GetByNumbersForUpdate(ctx, tx, touched)
		if err != nil {
			return infraErr(err)
		}

		if len(accounts) != len(touched) {
			return domain.ErrAccountNotFound
		}

		accountMap := make(map[string]*domain.Account, len(accounts))
		for _, a := range accounts {
			accountMap[a.AccountNumber] = a
		}

		now := time.Now().UTC()

		writes, err := fn(accountMap, now)
		if err != nil {
			return err
		}

		for _, w := range writes {
			if err := uc.txnRepo.Append(ctx, tx, w.record); err != nil {
				return infraErr(err)
			}

			if err := uc.accountRepo.UpdateBalance(ctx, tx, w.accountNumber, w.newBalance, now); err != nil {
				return infraErr(err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return infraErr(err)
		}

		return nil
	}

	if err := uc.retrier.Retry(ctx, unit); err != nil {
		return err
	}

	// Cached account snapshots are stale after a committed mutation.
	if uc.cache != nil {
		for _, number := range touched {
			_ = uc.cache.Delete(ctx, accountCacheKey(number))
		}
	}

	return nil
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountNumber string
	Amount        decimal.Decimal
	Remarks       string
}

// OperationResult is the outcome of a single-account mutation.
type OperationResult struct {
	TransactionNumber string
	NewBalance        decimal.Decimal
}

// Deposit credits amount to an account and appends one CREDIT record.
func (uc *LedgerUseCase) Deposit(ctx context.Context, input DepositInput) (*OperationResult, error) {
	if err := validateOperationInput(input.AccountNumber, input.Amount, input.Remarks); err != nil {
		return nil, err
	}

	remarks := input.Remarks
	if remarks == "" {
		remarks = "Cash Deposit"
	}

	var result *OperationResult

	err := uc.apply(ctx, []string{input.AccountNumber}, func(accounts map[string]*domain.Account, now time.Time) ([]ledgerWrite, error) {
		account := accounts[input.AccountNumber]
		newBalance := account.ApplyCredit(input.Amount)

		record := &domain.TransactionRecord{
			TransactionNumber: uc.txnNumber(),
			AccountNumber:     account.AccountNumber,
			Type:              domain.TransactionTypeCredit,
			Amount:            input.Amount,
			BalanceAfter:      newBalance,
			Remarks:           remarks,
			CreatedAt:         now,
		}

		result = &OperationResult{
			TransactionNumber: record.TransactionNumber,
			NewBalance:        newBalance,
		}

		return []ledgerWrite{{account.AccountNumber, newBalance, record}}, nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// WithdrawInput represents input for a withdrawal.
type WithdrawInput struct {
	AccountNumber string
	Amount        decimal.Decimal
	Remarks       string
}

// Withdraw debits amount from an account and appends one DEBIT record.
// Balance sufficiency is checked under the row lock, never before it.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, input WithdrawInput) (*OperationResult, error) {
	if err := validateOperationInput(input.AccountNumber, input.Amount, input.Remarks); err != nil {
		return nil, err
	}

	remarks := input.Remarks
	if remarks == "" {
		remarks = "Cash Withdrawal"
	}

	var result *OperationResult

	err := uc.apply(ctx, []string{input.AccountNumber}, func(accounts map[string]*domain.Account, now time.Time) ([]ledgerWrite, error) {
		account := accounts[input.AccountNumber]

		if err := account.ValidateWithdrawal(input.Amount); err != nil {
			return nil, err
		}

		newBalance := account.ApplyDebit(input.Amount)

		record := &domain.TransactionRecord{
			TransactionNumber: uc.txnNumber(),
			AccountNumber:     account.AccountNumber,
			Type:              domain.TransactionTypeDebit,
			Amount:            input.Amount,
			BalanceAfter:      newBalance,
			Remarks:           remarks,
			CreatedAt:         now,
		}

		result = &OperationResult{
			TransactionNumber: record.TransactionNumber,
			NewBalance:        newBalance,
		}

		return []ledgerWrite{{account.AccountNumber, newBalance, record}}, nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccount string
	ToAccount   string
	Amount      decimal.Decimal
	Remarks     string
}

// TransferResult is the outcome of a transfer, reported from the sender's
// perspective as the original API does.
type TransferResult struct {
	TransactionNumber string
	TransferGroupID   string
	NewBalance        decimal.Decimal
	RecipientName     string
}

// Transfer moves amount between two accounts in one unit: both balance
// writes and both records (DEBIT on sender, CREDIT on receiver) commit
// together or not at all. Both legs share a transfer group ID.
func (uc *LedgerUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.FromAccount == input.ToAccount {
		return nil, domain.ErrSameAccount
	}

	if err := validateOperationInput(input.FromAccount, input.Amount, input.Remarks); err != nil {
		return nil, err
	}

	if err := domain.ValidateAccountNumber(input.ToAccount); err != nil {
		return nil, err
	}

	remarks := input.Remarks
	if remarks == "" {
		remarks = "Fund Transfer"
	}

	var result *TransferResult

	err := uc.apply(ctx, []string{input.FromAccount, input.ToAccount}, func(accounts map[string]*domain.Account, now time.Time) ([]ledgerWrite, error) {
		sender := accounts[input.FromAccount]
		receiver := accounts[input.ToAccount]

		if err := sender.ValidateWithdrawal(input.Amount); err != nil {
			return nil, err
		}

		senderBalance := sender.ApplyDebit(input.Amount)
		receiverBalance := receiver.ApplyCredit(input.Amount)
		groupID := uc.idGen.Generate()

		debit := &domain.TransactionRecord{
			TransactionNumber: uc.txnNumber(),
			AccountNumber:     sender.AccountNumber,
			Type:              domain.TransactionTypeDebit,
			Amount:            input.Amount,
			BalanceAfter:      senderBalance,
			TransferGroupID:   groupID,
			Remarks:           fmt.Sprintf("Transfer to %s - %s", receiver.AccountNumber, remarks),
			CreatedAt:         now,
		}

		credit := &domain.TransactionRecord{
			TransactionNumber: uc.txnNumber(),
			AccountNumber:     receiver.AccountNumber,
			Type:              domain.TransactionTypeCredit,
			Amount:            input.Amount,
			BalanceAfter:      receiverBalance,
			TransferGroupID:   groupID,
			Remarks:           fmt.Sprintf("Transfer from %s - %s", sender.AccountNumber, remarks),
			CreatedAt:         now,
		}

		result = &TransferResult{
			TransactionNumber: debit.TransactionNumber,
			TransferGroupID:   groupID,
			NewBalance:        senderBalance,
			RecipientName:     receiver.HolderName,
		}

		return []ledgerWrite{
			{sender.AccountNumber, senderBalance, debit},
			{receiver.AccountNumber, receiverBalance, credit},
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// txnNumber generates a transaction number. Called only inside the locked
// region so an aborted unit never leaks a number into a committed record.
func (uc *LedgerUseCase) txnNumber() string {
	return "TXN" + uc.idGen.Generate()
}

func validateOperationInput(accountNumber string, amount decimal.Decimal, remarks string) error {
	if err := domain.ValidateAccountNumber(accountNumber); err != nil {
		return err
	}

	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}

	return domain.ValidateRemarks(remarks)
}
