package custom_err

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrSenderNotFound    = fmt.Errorf("sender wallet: %w", ErrNotFound)
	ErrReceiverNotFound  = fmt.Errorf("receiver wallet: %w", ErrNotFound)
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrWalletExists      = errors.New("user already has a wallet")
	ErrUserExists        = errors.New("user with this email already exists")
	ErrBlacklisted       = errors.New("user is blacklisted")
)

// ValidationError marks a caller-supplied value that violates a precondition.
// Never retried, always maps to a 400.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
