package usecase

import (
	"errors"
	"fmt"

	"github.com/iho/bankcore/internal/domain"
)

// infraErr classifies a storage error as domain.ErrInfrastructure while
// keeping the original chain intact, so the retrier can still inspect
// driver error codes with errors.As. Domain outcomes pass through untouched.
func infraErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrAccountExists) ||
		errors.Is(err, domain.ErrConstraintViolation) {
		return err
	}

	return fmt.Errorf("%w: %w", domain.ErrInfrastructure, err)
}
