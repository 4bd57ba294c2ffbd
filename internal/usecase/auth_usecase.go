package usecase

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/bankcore/internal/domain"
)

// AuthUseCase authenticates accounts by number and PIN.
type AuthUseCase struct {
	accountRepo AccountRepository
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(accountRepo AccountRepository) *AuthUseCase {
	return &AuthUseCase{accountRepo: accountRepo}
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	AccountNumber string
	PIN           string
}

// Authenticate verifies an account number and PIN pair. Every failure mode —
// unknown account, wrong PIN, inactive account — returns the same
// ErrInvalidCredentials so callers cannot enumerate account numbers.
func (uc *AuthUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.PublicView, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, input.AccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}

		return nil, infraErr(err)
	}

	if !account.IsActive() {
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PINHash), []byte(input.PIN)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return account.Public(), nil
}
