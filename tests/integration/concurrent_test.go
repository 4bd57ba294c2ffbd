package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/adapter/repository/postgres"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/tests/testutil"
)

func newLedgerUseCase(db *testutil.TestDB) *usecase.LedgerUseCase {
	pool := db.Pool

	return usecase.NewLedgerUseCase(
		postgres.NewTxManager(pool),
		postgres.NewRetrier(zerolog.Nop()),
		postgres.NewAccountRepository(pool),
		postgres.NewTransactionRepository(pool),
		postgres.NewULIDGenerator(),
		nil,
	)
}

func TestConcurrentWithdrawals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	db := testutil.NewTestDB(t)
	defer db.Cleanup()

	ledgerUC := newLedgerUseCase(db)

	t.Run("N concurrent withdrawals against N-1 cover yield exactly N-1 successes", func(t *testing.T) {
		db.TruncateAll(ctx)

		// Balance covers 9 withdrawals of 10; 10 goroutines race for them.
		db.CreateTestAccount(ctx, "ACCWD1", decimal.NewFromInt(90))

		numWithdrawals := 10
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
			fundsErrors  atomic.Int32
		)

		wg.Add(numWithdrawals)

		for i := 0; i < numWithdrawals; i++ {
			go func() {
				defer wg.Done()

				_, err := ledgerUC.Withdraw(ctx, usecase.WithdrawInput{
					AccountNumber: "ACCWD1",
					Amount:        amount,
				})
				switch {
				case err == nil:
					successCount.Add(1)
				case errors.Is(err, domain.ErrInsufficientFunds):
					fundsErrors.Add(1)
				default:
					t.Errorf("unexpected withdrawal error: %v", err)
				}
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numWithdrawals-1) {
			t.Errorf("expected %d successful withdrawals, got %d", numWithdrawals-1, successCount.Load())
		}
		if fundsErrors.Load() != 1 {
			t.Errorf("expected exactly 1 insufficient-funds failure, got %d", fundsErrors.Load())
		}

		if balance := db.GetBalance(ctx, "ACCWD1"); !balance.IsZero() {
			t.Errorf("expected final balance 0, got %s", balance)
		}

		if count := db.CountTransactions(ctx, "ACCWD1"); count != numWithdrawals-1 {
			t.Errorf("expected %d DEBIT records, got %d", numWithdrawals-1, count)
		}
	})
}

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	db := testutil.NewTestDB(t)
	defer db.Cleanup()

	ledgerUC := newLedgerUseCase(db)

	t.Run("100 concurrent transfers conserve total balance", func(t *testing.T) {
		db.TruncateAll(ctx)

		db.CreateTestAccount(ctx, "ACCTF1", decimal.NewFromInt(1000))
		db.CreateTestAccount(ctx, "ACCTF2", decimal.NewFromInt(0))

		numTransfers := 100
		amount := decimal.NewFromInt(10)

		var (
			wg           sync.WaitGroup
			successCount atomic.Int32
		)

		wg.Add(numTransfers)

		for i := 0; i < numTransfers; i++ {
			go func() {
				defer wg.Done()

				_, err := ledgerUC.Transfer(ctx, usecase.TransferInput{
					FromAccount: "ACCTF1",
					ToAccount:   "ACCTF2",
					Amount:      amount,
				})
				if err != nil {
					t.Errorf("transfer failed: %v", err)
					return
				}
				successCount.Add(1)
			}()
		}

		wg.Wait()

		if successCount.Load() != int32(numTransfers) {
			t.Fatalf("expected %d successful transfers, got %d", numTransfers, successCount.Load())
		}

		from := db.GetBalance(ctx, "ACCTF1")
		to := db.GetBalance(ctx, "ACCTF2")

		if !from.IsZero() || !to.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("balances not conserved: from=%s to=%s", from, to)
		}
		if total := from.Add(to); !total.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected total 1000, got %s", total)
		}
	})

	t.Run("opposing transfers between two accounts do not deadlock", func(t *testing.T) {
		db.TruncateAll(ctx)

		db.CreateTestAccount(ctx, "ACCTF1", decimal.NewFromInt(500))
		db.CreateTestAccount(ctx, "ACCTF2", decimal.NewFromInt(500))

		numPairs := 50
		amount := decimal.NewFromInt(1)

		var wg sync.WaitGroup
		wg.Add(numPairs * 2)

		for i := 0; i < numPairs; i++ {
			go func() {
				defer wg.Done()
				if _, err := ledgerUC.Transfer(ctx, usecase.TransferInput{
					FromAccount: "ACCTF1", ToAccount: "ACCTF2", Amount: amount,
				}); err != nil {
					t.Errorf("forward transfer failed: %v", err)
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := ledgerUC.Transfer(ctx, usecase.TransferInput{
					FromAccount: "ACCTF2", ToAccount: "ACCTF1", Amount: amount,
				}); err != nil {
					t.Errorf("reverse transfer failed: %v", err)
				}
			}()
		}

		wg.Wait()

		from := db.GetBalance(ctx, "ACCTF1")
		to := db.GetBalance(ctx, "ACCTF2")
		if !from.Equal(decimal.NewFromInt(500)) || !to.Equal(decimal.NewFromInt(500)) {
			t.Errorf("symmetric transfers should cancel out: from=%s to=%s", from, to)
		}
	})
}
