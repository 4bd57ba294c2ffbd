package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	// GetByNumbersForUpdate locks the given accounts in ascending
	// account-number order and returns them. Missing accounts are simply
	// absent from the result.
	GetByNumbersForUpdate(ctx context.Context, tx Transaction, numbers []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, number string, balance decimal.Decimal, updatedAt time.Time) error
}

// TransactionRepository defines data access for the append-only transaction log.
type TransactionRepository interface {
	Append(ctx context.Context, tx Transaction, record *domain.TransactionRecord) error
	ListByAccount(ctx context.Context, accountNumber string, limit int) ([]*domain.TransactionRecord, error)
	// SumSigned returns the sum of CREDIT amounts minus DEBIT amounts for an
	// account, for replaying the log against the stored balance.
	SumSigned(ctx context.Context, accountNumber string) (decimal.Decimal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries a unit of work on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
