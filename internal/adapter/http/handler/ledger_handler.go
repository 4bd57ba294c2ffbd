package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/adapter/http/middleware"
	"github.com/iho/bankcore/internal/infrastructure/metrics"
	"github.com/iho/bankcore/internal/usecase"
)

// LedgerHandler handles money movement endpoints.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
	metrics  *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC: ledgerUC,
		metrics:  m,
	}
}

// Deposit credits an account.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !h.authorizeAccount(w, r, req.AccountNumber) {
		return
	}

	start := time.Now()

	result, err := h.ledgerUC.Deposit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.recordError("deposit", err)

		status := mapDomainError(err)
		writeError(w, status, "deposit failed", err.Error())

		return
	}

	h.recordSuccess("deposit", req.Amount.InexactFloat64(), time.Since(start))

	writeJSON(w, http.StatusOK, dto.OperationFromResult(result))
}

// Withdraw debits an account. The balance check happens inside the
// locked transaction, so concurrent withdrawals cannot overdraw.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !h.authorizeAccount(w, r, req.AccountNumber) {
		return
	}

	start := time.Now()

	result, err := h.ledgerUC.Withdraw(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.recordError("withdraw", err)

		status := mapDomainError(err)
		writeError(w, status, "withdrawal failed", err.Error())

		return
	}

	h.recordSuccess("withdraw", req.Amount.InexactFloat64(), time.Since(start))

	writeJSON(w, http.StatusOK, dto.OperationFromResult(result))
}

// Transfer moves money between two accounts atomically.
func (h *LedgerHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if !h.authorizeAccount(w, r, req.FromAccount) {
		return
	}

	start := time.Now()

	result, err := h.ledgerUC.Transfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.recordError("transfer", err)

		status := mapDomainError(err)
		writeError(w, status, "transfer failed", err.Error())

		return
	}

	h.recordSuccess("transfer", req.Amount.InexactFloat64(), time.Since(start))

	writeJSON(w, http.StatusOK, dto.TransferFromResult(result))
}

// authorizeAccount ensures the session account matches the account being
// debited or credited. Transfers only require ownership of the source.
func (h *LedgerHandler) authorizeAccount(w http.ResponseWriter, r *http.Request, accountNumber string) bool {
	claims, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing session")
		return false
	}

	if claims.AccountNumber != accountNumber {
		writeError(w, http.StatusForbidden, "forbidden", "account does not belong to session")
		return false
	}

	return true
}

func (h *LedgerHandler) recordSuccess(operation string, amount float64, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}

	switch operation {
	case "deposit":
		h.metrics.DepositsTotal.Inc()
	case "withdraw":
		h.metrics.WithdrawalsTotal.Inc()
	case "transfer":
		h.metrics.TransfersTotal.Inc()
	}

	h.metrics.OperationAmount.WithLabelValues(operation).Observe(amount)
	h.metrics.OperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (h *LedgerHandler) recordError(operation string, err error) {
	if h.metrics == nil {
		return
	}

	h.metrics.OperationErrors.WithLabelValues(operation, errorType(err)).Inc()
}
