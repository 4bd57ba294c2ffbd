package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/infrastructure/metrics"
	"github.com/iho/bankcore/internal/usecase"
)

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC *usecase.AccountUseCase
	auditUC   *usecase.AuditUseCase
	metrics   *metrics.Metrics
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC *usecase.AccountUseCase, auditUC *usecase.AuditUseCase, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{
		accountUC: accountUC,
		auditUC:   auditUC,
		metrics:   m,
	}
}

// Open creates a new account.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.OpenAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to open account", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.AccountsOpened.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves account details, PIN excluded.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")

	account, err := h.accountUC.GetAccountDetails(r.Context(), accountNumber)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account details", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetBalance retrieves the current balance.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")

	balance, err := h.accountUC.GetBalance(r.Context(), accountNumber)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get balance", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountNumber: accountNumber,
		Balance:       balance,
	})
}

// ListTransactions lists an account's records, newest first.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")
	limit := parseIntQuery(r, "limit", 0)

	records, err := h.accountUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountNumber: accountNumber,
		Limit:         limit,
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transactions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records))
}

// CheckConsistency replays the account's transaction log against its balance.
func (h *AccountHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	accountNumber := chi.URLParam(r, "accountNumber")

	report, err := h.auditUC.CheckConsistency(r.Context(), accountNumber)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check consistency", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromReport(report))
}
