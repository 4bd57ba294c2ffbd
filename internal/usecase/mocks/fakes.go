package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// FakeAccountRepository is an in-memory fake of AccountRepository.
type FakeAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc                func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByNumberFunc           func(ctx context.Context, number string) (*domain.Account, error)
	GetByNumbersForUpdateFunc func(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error)
	UpdateBalanceFunc         func(ctx context.Context, tx usecase.Transaction, number string, balance decimal.Decimal, updatedAt time.Time) error
}

func NewFakeAccountRepository() *FakeAccountRepository {
	return &FakeAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *FakeAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.AccountNumber]; ok {
		return domain.ErrAccountExists
	}
	m.accounts[account.AccountNumber] = account
	return nil
}

func (m *FakeAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[number]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *FakeAccountRepository) GetByNumbersForUpdate(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error) {
	if m.GetByNumbersForUpdateFunc != nil {
		return m.GetByNumbersForUpdateFunc(ctx, tx, numbers)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sorted := append([]string(nil), numbers...)
	sort.Strings(sorted)
	var accounts []*domain.Account
	for _, number := range sorted {
		if acc, ok := m.accounts[number]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *FakeAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, number string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, number, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[number]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

// FakeTransactionRepository is an in-memory fake of TransactionRepository.
type FakeTransactionRepository struct {
	mu      sync.RWMutex
	records []*domain.TransactionRecord

	AppendFunc        func(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error
	ListByAccountFunc func(ctx context.Context, accountNumber string, limit int) ([]*domain.TransactionRecord, error)
	SumSignedFunc     func(ctx context.Context, accountNumber string) (decimal.Decimal, error)
}

func NewFakeTransactionRepository() *FakeTransactionRepository {
	return &FakeTransactionRepository{}
}

func (m *FakeTransactionRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *FakeTransactionRepository) ListByAccount(ctx context.Context, accountNumber string, limit int) ([]*domain.TransactionRecord, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountNumber, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var records []*domain.TransactionRecord
	// Newest first, matching the store's ordering.
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].AccountNumber != accountNumber {
			continue
		}
		records = append(records, m.records[i])
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records, nil
}

func (m *FakeTransactionRepository) SumSigned(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	if m.SumSignedFunc != nil {
		return m.SumSignedFunc(ctx, accountNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, r := range m.records {
		if r.AccountNumber == accountNumber {
			sum = sum.Add(r.Signed())
		}
	}
	return sum, nil
}

// Records returns a copy of all appended records.
func (m *FakeTransactionRepository) Records() []*domain.TransactionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.TransactionRecord(nil), m.records...)
}

// FakeTransactionManager is an in-memory fake of TransactionManager.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &FakeTransaction{}, nil
}

// FakeTransaction is an in-memory fake of Transaction.
type FakeTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *FakeTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *FakeTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// FakeRetrier is an in-memory fake of Retrier that runs the
// operation once.
type FakeRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewFakeRetrier() *FakeRetrier {
	return &FakeRetrier{}
}

func (m *FakeRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// FakeIDGenerator is an in-memory fake of IDGenerator.
type FakeIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewFakeIDGenerator() *FakeIDGenerator {
	return &FakeIDGenerator{}
}

func (m *FakeIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// FakeCache is an in-memory fake of Cache.
type FakeCache struct {
	mu   sync.RWMutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		data: make(map[string][]byte),
	}
}

func (m *FakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

func (m *FakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *FakeCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FakeIdempotencyStore is an in-memory fake of IdempotencyStore.
type FakeIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewFakeIdempotencyStore() *FakeIdempotencyStore {
	return &FakeIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *FakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *FakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}
