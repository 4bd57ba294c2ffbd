package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/infrastructure/auth"
	"github.com/iho/bankcore/internal/infrastructure/metrics"
	"github.com/iho/bankcore/internal/usecase"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authUC     *usecase.AuthUseCase
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authUC *usecase.AuthUseCase, jwtManager *auth.JWTManager, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		authUC:     authUC,
		jwtManager: jwtManager,
		metrics:    m,
	}
}

// Login authenticates an account by number and PIN and issues a session
// token. The response is identical for unknown accounts and wrong PINs.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.authUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		if h.metrics != nil {
			h.metrics.LoginAttempts.WithLabelValues("failure").Inc()
		}

		status := mapDomainError(err)
		writeError(w, status, "login failed", err.Error())

		return
	}

	token, err := h.jwtManager.Generate(account.AccountNumber)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.LoginAttempts.WithLabelValues("success").Inc()
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:   token,
		Account: dto.AccountFromDomain(account),
	})
}
