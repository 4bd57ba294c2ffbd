package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/bankcore/internal/domain"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200

	accountCacheTTL = 30 * time.Second
)

// AccountUseCase handles account opening and the read-only operations:
// balance, details, transaction history.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	txnRepo     TransactionRepository
	idGen       IDGenerator
	cache       Cache
	bcryptCost  int
}

// NewAccountUseCase creates a new AccountUseCase. cache may be nil.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
	cache Cache,
	bcryptCost int,
) *AccountUseCase {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}

	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		idGen:       idGen,
		cache:       cache,
		bcryptCost:  bcryptCost,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	HolderName     string
	Email          string
	Phone          string
	Type           domain.AccountType
	PIN            string
	OpeningBalance decimal.Decimal
}

// OpenAccount creates a new ACTIVE account. A non-zero opening balance is
// recorded as an initial CREDIT so the transaction log replays to the
// current balance from zero.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.PublicView, error) {
	if err := domain.ValidateHolderName(input.HolderName); err != nil {
		return nil, err
	}

	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if !input.Type.IsValid() {
		return nil, domain.ErrInvalidAccountType
	}

	if err := domain.ValidatePIN(input.PIN); err != nil {
		return nil, err
	}

	if input.OpeningBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), uc.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		AccountNumber: uc.idGen.Generate(),
		HolderName:    input.HolderName,
		Email:         input.Email,
		Phone:         input.Phone,
		Type:          input.Type,
		PINHash:       string(pinHash),
		Balance:       input.OpeningBalance,
		Status:        domain.AccountStatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, infraErr(err)
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, infraErr(err)
	}

	if input.OpeningBalance.IsPositive() {
		record := &domain.TransactionRecord{
			TransactionNumber: "TXN" + uc.idGen.Generate(),
			AccountNumber:     account.AccountNumber,
			Type:              domain.TransactionTypeCredit,
			Amount:            input.OpeningBalance,
			BalanceAfter:      input.OpeningBalance,
			Remarks:           "Opening Balance",
			CreatedAt:         now,
		}

		if err := uc.txnRepo.Append(ctx, tx, record); err != nil {
			return nil, infraErr(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, infraErr(err)
	}

	return account.Public(), nil
}

// GetBalance returns the current balance of an account.
func (uc *AccountUseCase) GetBalance(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	if err := domain.ValidateAccountNumber(accountNumber); err != nil {
		return decimal.Zero, err
	}

	account, err := uc.getAccount(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}

// GetAccountDetails returns the account without its credential.
func (uc *AccountUseCase) GetAccountDetails(ctx context.Context, accountNumber string) (*domain.PublicView, error) {
	if err := domain.ValidateAccountNumber(accountNumber); err != nil {
		return nil, err
	}

	account, err := uc.getAccount(ctx, accountNumber)
	if err != nil {
		return nil, err
	}

	return account.Public(), nil
}

// ListTransactionsInput represents input for listing transaction history.
type ListTransactionsInput struct {
	AccountNumber string
	Limit         int
}

// ListTransactions returns an account's records, newest first.
func (uc *AccountUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.TransactionRecord, error) {
	if err := domain.ValidateAccountNumber(input.AccountNumber); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	// The account must exist; an empty log on a live account is a valid
	// answer, a missing account is not.
	if _, err := uc.getAccount(ctx, input.AccountNumber); err != nil {
		return nil, err
	}

	records, err := uc.txnRepo.ListByAccount(ctx, input.AccountNumber, limit)
	if err != nil {
		return nil, infraErr(err)
	}

	return records, nil
}

// getAccount reads an account, via the snapshot cache when one is wired.
func (uc *AccountUseCase) getAccount(ctx context.Context, accountNumber string) (*domain.Account, error) {
	if uc.cache == nil {
		account, err := uc.accountRepo.GetByNumber(ctx, accountNumber)
		if err != nil {
			return nil, infraErr(err)
		}

		return account, nil
	}

	key := accountCacheKey(accountNumber)

	if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
		var account domain.Account
		if err := json.Unmarshal(data, &account); err == nil {
			return &account, nil
		}
	}

	account, err := uc.accountRepo.GetByNumber(ctx, accountNumber)
	if err != nil {
		return nil, infraErr(err)
	}

	if data, err := json.Marshal(account); err == nil {
		_ = uc.cache.Set(ctx, key, data, accountCacheTTL)
	}

	return account, nil
}

func accountCacheKey(accountNumber string) string {
	return "account:" + accountNumber
}
