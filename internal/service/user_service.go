package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"api_ledger/internal/custom_err"
	"api_ledger/internal/karma"
	"api_ledger/internal/models"
	"api_ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UserServicer interface {
	OnboardUser(ctx context.Context, req models.OnboardUserRequest) (*models.User, error)
}

var _ UserServicer = (*UserService)(nil)

type UserService struct {
	users     repository.User
	wallets   repository.Wallet
	txManager TxManager
	karma     karma.Checker
	log       *slog.Logger
}

func NewUserService(users repository.User, wallets repository.Wallet, txManager TxManager, checker karma.Checker, log *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		wallets:   wallets,
		txManager: txManager,
		karma:     checker,
		log:       log,
	}
}

// OnboardUser creates the user and their zero-balance wallet in one
// transaction, after the blacklist check. The blacklist dependency fails
// open: when it is unavailable the user is onboarded anyway, and the
// decision is logged here, at the single call site.
func (s *UserService) OnboardUser(ctx context.Context, req models.OnboardUserRequest) (*models.User, error) {
	const op = "service.OnboardUser"

	if err := validateOnboardRequest(req); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	decision, err := s.karma.Check(ctx, email)
	switch decision {
	case karma.Blocked:
		return nil, custom_err.ErrBlacklisted
	case karma.Unavailable:
		s.log.Warn("blacklist service unavailable, failing open",
			slog.String("op", op), slog.String("error", errString(err)))
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, custom_err.ErrUserExists
	}

	user := &models.User{
		ID:         uuid.New(),
		FirstName:  strings.TrimSpace(req.FirstName),
		MiddleName: req.MiddleName,
		LastName:   strings.TrimSpace(req.LastName),
		Email:      email,
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if err := s.users.CreateTx(ctx, tx, user); err != nil {
		if errors.Is(err, custom_err.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	wallet := &models.Wallet{
		ID:      uuid.New(),
		UserID:  user.ID,
		Balance: decimal.Zero,
	}
	if err := s.wallets.CreateWalletTx(ctx, tx, wallet); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func validateOnboardRequest(req models.OnboardUserRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return custom_err.NewValidationError("first_name is required")
	}
	if strings.TrimSpace(req.LastName) == "" {
		return custom_err.NewValidationError("last_name is required")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return custom_err.NewValidationError("email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return custom_err.NewValidationError("email is not valid")
	}
	return nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
