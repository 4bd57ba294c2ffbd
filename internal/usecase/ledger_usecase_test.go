package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/internal/usecase/mocks"
)

func newLedgerFixture(t *testing.T, accounts ...*domain.Account) (*usecase.LedgerUseCase, *mocks.FakeAccountRepository, *mocks.FakeTransactionRepository, *mocks.FakeCache) {
	t.Helper()

	accountRepo := mocks.NewFakeAccountRepository()
	for _, a := range accounts {
		if err := accountRepo.Create(context.Background(), nil, a); err != nil {
			t.Fatalf("seeding account %s: %v", a.AccountNumber, err)
		}
	}

	txnRepo := mocks.NewFakeTransactionRepository()
	cache := mocks.NewFakeCache()

	uc := usecase.NewLedgerUseCase(
		mocks.NewFakeTransactionManager(),
		mocks.NewFakeRetrier(),
		accountRepo,
		txnRepo,
		mocks.NewFakeIDGenerator(),
		cache,
	)

	return uc, accountRepo, txnRepo, cache
}

func activeAccount(number string, balance int64) *domain.Account {
	return &domain.Account{
		AccountNumber: number,
		HolderName:    "Holder " + number,
		Type:          domain.AccountTypeSavings,
		Balance:       decimal.NewFromInt(balance),
		Status:        domain.AccountStatusActive,
	}
}

func TestLedgerUseCase_Deposit(t *testing.T) {
	t.Run("successful deposit", func(t *testing.T) {
		uc, accountRepo, txnRepo, _ := newLedgerFixture(t, activeAccount("ACC001", 100))

		result, err := uc.Deposit(context.Background(), usecase.DepositInput{
			AccountNumber: "ACC001",
			Amount:        decimal.NewFromInt(50),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.NewBalance.Equal(decimal.NewFromInt(150)) {
			t.Errorf("new balance = %s, want 150", result.NewBalance)
		}

		if !strings.HasPrefix(result.TransactionNumber, "TXN") {
			t.Errorf("transaction number %q missing TXN prefix", result.TransactionNumber)
		}

		acc, _ := accountRepo.GetByNumber(context.Background(), "ACC001")
		if !acc.Balance.Equal(decimal.NewFromInt(150)) {
			t.Errorf("stored balance = %s, want 150", acc.Balance)
		}

		records := txnRepo.Records()
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].Type != domain.TransactionTypeCredit {
			t.Errorf("record type = %s, want CREDIT", records[0].Type)
		}
		if records[0].Remarks != "Cash Deposit" {
			t.Errorf("default remarks = %q, want %q", records[0].Remarks, "Cash Deposit")
		}
		if !records[0].BalanceAfter.Equal(decimal.NewFromInt(150)) {
			t.Errorf("balance after = %s, want 150", records[0].BalanceAfter)
		}
	})

	t.Run("custom remarks kept", func(t *testing.T) {
		uc, _, txnRepo, _ := newLedgerFixture(t, activeAccount("ACC001", 0))

		_, err := uc.Deposit(context.Background(), usecase.DepositInput{
			AccountNumber: "ACC001",
			Amount:        decimal.NewFromInt(10),
			Remarks:       "salary",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := txnRepo.Records()[0].Remarks; got != "salary" {
			t.Errorf("remarks = %q, want %q", got, "salary")
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		uc, _, _, _ := newLedgerFixture(t)

		_, err := uc.Deposit(context.Background(), usecase.DepositInput{
			AccountNumber: "ACC999",
			Amount:        decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		uc, _, txnRepo, _ := newLedgerFixture(t, activeAccount("ACC001", 100))

		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
			_, err := uc.Deposit(context.Background(), usecase.DepositInput{
				AccountNumber: "ACC001",
				Amount:        amount,
			})
			if !errors.Is(err, domain.ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount for %s, got %v", amount, err)
			}
		}

		if len(txnRepo.Records()) != 0 {
			t.Error("rejected deposit must not append records")
		}
	})
}

func TestLedgerUseCase_Withdraw(t *testing.T) {
	t.Run("successful withdrawal", func(t *testing.T) {
		uc, accountRepo, txnRepo, _ := newLedgerFixture(t, activeAccount("ACC001", 100))

		result, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
			AccountNumber: "ACC001",
			Amount:        decimal.NewFromInt(40),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.NewBalance.Equal(decimal.NewFromInt(60)) {
			t.Errorf("new balance = %s, want 60", result.NewBalance)
		}

		acc, _ := accountRepo.GetByNumber(context.Background(), "ACC001")
		if !acc.Balance.Equal(decimal.NewFromInt(60)) {
			t.Errorf("stored balance = %s, want 60", acc.Balance)
		}

		records := txnRepo.Records()
		if len(records) != 1 || records[0].Type != domain.TransactionTypeDebit {
			t.Fatalf("expected one DEBIT record, got %+v", records)
		}
		if records[0].Remarks != "Cash Withdrawal" {
			t.Errorf("default remarks = %q, want %q", records[0].Remarks, "Cash Withdrawal")
		}
	})

	t.Run("withdraw exact balance", func(t *testing.T) {
		uc, accountRepo, _, _ := newLedgerFixture(t, activeAccount("ACC001", 100))

		_, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
			AccountNumber: "ACC001",
			Amount:        decimal.NewFromInt(100),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		acc, _ := accountRepo.GetByNumber(context.Background(), "ACC001")
		if !acc.Balance.IsZero() {
			t.Errorf("stored balance = %s, want 0", acc.Balance)
		}
	})

	t.Run("insufficient funds leaves nothing written", func(t *testing.T) {
		uc, accountRepo, txnRepo, _ := newLedgerFixture(t, activeAccount("ACC001", 100))

		_, err := uc.Withdraw(context.Background(), usecase.WithdrawInput{
			AccountNumber: "ACC001",
			Amount:        decimal.NewFromInt(150),
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		acc, _ := accountRepo.GetByNumber(context.Background(), "ACC001")
		if !acc.Balance.Equal(decimal.NewFromInt(100)) {
			t.Errorf("balance changed to %s after failed withdrawal", acc.Balance)
		}

		if len(txnRepo.Records()) != 0 {
			t.Error("failed withdrawal must not append records")
		}
	})
}

func TestLedgerUseCase_Transfer(t *testing.T) {
	t.Run("successful transfer", func(t *testing.T) {
		sender := activeAccount("ACC001", 500)
		receiver := activeAccount("ACC002", 100)
		receiver.HolderName = "Maria Garcia"

		uc, accountRepo, txnRepo, _ := newLedgerFixture(t, sender, receiver)

		result, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccount: "ACC001",
			ToAccount:   "ACC002",
			Amount:      decimal.NewFromInt(200),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.NewBalance.Equal(decimal.NewFromInt(300)) {
			t.Errorf("sender balance = %s, want 300", result.NewBalance)
		}
		if result.RecipientName != "Maria Garcia" {
			t.Errorf("recipient name = %q, want %q", result.RecipientName, "Maria Garcia")
		}
		if result.TransferGroupID == "" {
			t.Error("expected a transfer group ID")
		}

		from, _ := accountRepo.GetByNumber(context.Background(), "ACC001")
		to, _ := accountRepo.GetByNumber(context.Background(), "ACC002")

		// Money is conserved: total before == total after.
		total := from.Balance.Add(to.Balance)
		if !total.Equal(decimal.NewFromInt(600)) {
			t.Errorf("total balance = %s, want 600", total)
		}

		records := txnRepo.Records()
		if len(records) != 2 {
			t.Fatalf("expected 2 records, got %d", len(records))
		}

		debit, credit := records[0], records[1]
		if debit.Type != domain.TransactionTypeDebit || credit.Type != domain.TransactionTypeCredit {
			t.Fatalf("expected DEBIT then CREDIT, got %s then %s", debit.Type, credit.Type)
		}
		if debit.TransferGroupID != credit.TransferGroupID {
			t.Error("both legs must share a transfer group ID")
		}
		if debit.TransactionNumber == credit.TransactionNumber {
			t.Error("each leg needs its own transaction number")
		}
		if debit.Remarks != "Transfer to ACC002 - Fund Transfer" {
			t.Errorf("debit remarks = %q", debit.Remarks)
		}
		if credit.Remarks != "Transfer from ACC001 - Fund Transfer" {
			t.Errorf("credit remarks = %q", credit.Remarks)
		}
	})

	t.Run("same account rejected", func(t *testing.T) {
		uc, _, _, _ := newLedgerFixture(t, activeAccount("ACC001", 500))

		_, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccount: "ACC001",
			ToAccount:   "ACC001",
			Amount:      decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrSameAccount) {
			t.Fatalf("expected ErrSameAccount, got %v", err)
		}
	})

	t.Run("unknown recipient", func(t *testing.T) {
		uc, accountRepo, txnRepo, _ := newLedgerFixture(t, activeAccount("ACC001", 500))

		_, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccount: "ACC001",
			ToAccount:   "ACC999",
			Amount:      decimal.NewFromInt(10),
		})
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}

		acc, _ := accountRepo.GetByNumber(context.Background(), "ACC001")
		if !acc.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("sender balance changed to %s", acc.Balance)
		}

		if len(txnRepo.Records()) != 0 {
			t.Error("failed transfer must not append records")
		}
	})

	t.Run("insufficient funds keeps both legs unwritten", func(t *testing.T) {
		uc, accountRepo, txnRepo, _ := newLedgerFixture(t,
			activeAccount("ACC001", 50),
			activeAccount("ACC002", 0),
		)

		_, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccount: "ACC001",
			ToAccount:   "ACC002",
			Amount:      decimal.NewFromInt(100),
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		to, _ := accountRepo.GetByNumber(context.Background(), "ACC002")
		if !to.Balance.IsZero() {
			t.Errorf("receiver credited %s on failed transfer", to.Balance)
		}

		if len(txnRepo.Records()) != 0 {
			t.Error("failed transfer must not append records")
		}
	})
}

func TestLedgerUseCase_InfrastructureErrorsWrapped(t *testing.T) {
	accountRepo := mocks.NewFakeAccountRepository()
	accountRepo.GetByNumbersForUpdateFunc = func(ctx context.Context, tx usecase.Transaction, numbers []string) ([]*domain.Account, error) {
		return nil, errors.New("connection reset")
	}

	uc := usecase.NewLedgerUseCase(
		mocks.NewFakeTransactionManager(),
		mocks.NewFakeRetrier(),
		accountRepo,
		mocks.NewFakeTransactionRepository(),
		mocks.NewFakeIDGenerator(),
		nil,
	)

	_, err := uc.Deposit(context.Background(), usecase.DepositInput{
		AccountNumber: "ACC001",
		Amount:        decimal.NewFromInt(10),
	})
	if !errors.Is(err, domain.ErrInfrastructure) {
		t.Fatalf("expected ErrInfrastructure, got %v", err)
	}
}

func TestLedgerUseCase_RetriesTransientFailures(t *testing.T) {
	attempts := 0

	accountRepo := mocks.NewFakeAccountRepository()
	if err := accountRepo.Create(context.Background(), nil, activeAccount("ACC001", 100)); err != nil {
		t.Fatal(err)
	}

	txManager := mocks.NewFakeTransactionManager()
	txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("deadlock detected")
		}
		return &mocks.FakeTransaction{}, nil
	}

	retrier := mocks.NewFakeRetrier()
	retrier.RetryFunc = func(ctx context.Context, operation func() error) error {
		var err error
		for i := 0; i < 2; i++ {
			if err = operation(); err == nil {
				return nil
			}
		}
		return err
	}

	uc := usecase.NewLedgerUseCase(
		txManager,
		retrier,
		accountRepo,
		mocks.NewFakeTransactionRepository(),
		mocks.NewFakeIDGenerator(),
		nil,
	)

	_, err := uc.Deposit(context.Background(), usecase.DepositInput{
		AccountNumber: "ACC001",
		Amount:        decimal.NewFromInt(10),
	})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}

	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestLedgerUseCase_InvalidatesCachedSnapshots(t *testing.T) {
	uc, _, _, cache := newLedgerFixture(t, activeAccount("ACC001", 100))

	ctx := context.Background()
	if err := cache.Set(ctx, "account:ACC001", []byte(`{"stale":true}`), 0); err != nil {
		t.Fatal(err)
	}

	if _, err := uc.Deposit(ctx, usecase.DepositInput{
		AccountNumber: "ACC001",
		Amount:        decimal.NewFromInt(10),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cached, _ := cache.Get(ctx, "account:ACC001"); cached != nil {
		t.Error("expected cached snapshot to be invalidated after deposit")
	}
}
