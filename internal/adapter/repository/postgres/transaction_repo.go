package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/postgres/generated"
	"github.com/iho/bankcore/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. The
// transactions table is append-only; this type deliberately has no update or
// delete methods.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Append inserts a new transaction record inside the given transaction.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.TransactionRecord) error {
	queries := generated.New(tx.(*Tx).PgxTx())

	err := queries.CreateTransaction(ctx, generated.CreateTransactionParams{
		TransactionNumber: record.TransactionNumber,
		AccountNumber:     record.AccountNumber,
		TransactionType:   string(record.Type),
		Amount:            decimalToNumeric(record.Amount),
		BalanceAfter:      decimalToNumeric(record.BalanceAfter),
		TransferGroupID:   textOrNull(record.TransferGroupID),
		Remarks:           record.Remarks,
		CreatedAt:         timeToPgTimestamptz(record.CreatedAt),
	})

	return mapPgError(err)
}

// ListByAccount retrieves records for an account, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountNumber string, limit int) ([]*domain.TransactionRecord, error) {
	rows, err := r.queries.ListTransactionsByAccount(ctx, generated.ListTransactionsByAccountParams{
		AccountNumber: accountNumber,
		Limit:         int32(limit),
	})
	if err != nil {
		return nil, err
	}

	records := make([]*domain.TransactionRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, rowToRecord(row))
	}

	return records, nil
}

// SumSigned returns credits minus debits for an account.
func (r *TransactionRepository) SumSigned(ctx context.Context, accountNumber string) (decimal.Decimal, error) {
	total, err := r.queries.SumSignedByAccount(ctx, accountNumber)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

func rowToRecord(row generated.Transaction) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		TransactionNumber: row.TransactionNumber,
		AccountNumber:     row.AccountNumber,
		Type:              domain.TransactionType(row.TransactionType),
		Amount:            numericToDecimal(row.Amount),
		BalanceAfter:      numericToDecimal(row.BalanceAfter),
		TransferGroupID:   row.TransferGroupID.String,
		Remarks:           row.Remarks,
		CreatedAt:         row.CreatedAt.Time,
	}
}

func textOrNull(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
