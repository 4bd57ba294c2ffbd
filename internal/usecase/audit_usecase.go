package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// AuditUseCase verifies ledger invariants.
type AuditUseCase struct {
	accountRepo AccountRepository
	txnRepo     TransactionRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(accountRepo AccountRepository, txnRepo TransactionRepository) *AuditUseCase {
	return &AuditUseCase{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

// ConsistencyReport is the result of replaying an account's transaction log.
type ConsistencyReport struct {
	AccountNumber  string
	StoredBalance  decimal.Decimal
	ReplayedAmount decimal.Decimal
	Consistent     bool
}

// CheckConsistency replays the log for one account: the sum of CREDIT
// amounts minus DEBIT amounts must equal the stored balance, since every
// account starts at zero and opening balances are logged as credits.
func (uc *AuditUseCase) CheckConsistency(ctx context.Context, accountNumber string) (*ConsistencyReport, error) {
	if err := domain.ValidateAccountNumber(accountNumber); err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, infraErr(err)
	}

	replayed, err := uc.txnRepo.SumSigned(ctx, accountNumber)
	if err != nil {
		return nil, infraErr(err)
	}

	return &ConsistencyReport{
		AccountNumber:  account.AccountNumber,
		StoredBalance:  account.Balance,
		ReplayedAmount: replayed,
		Consistent:     account.Balance.Equal(replayed),
	}, nil
}
