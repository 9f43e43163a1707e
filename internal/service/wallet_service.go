package service

import (
	"context"
	"errors"
	"fmt"

	"api_ledger/internal/custom_err"
	"api_ledger/internal/models"
	"api_ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WalletServicer is the ledger engine: every balance mutation runs as one
// database transaction, and the sufficiency check for debits is a
// conditional UPDATE so the store serializes conflicting decrements.
type WalletServicer interface {
	CreateWalletForUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	FundWallet(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*models.Wallet, error)
	WithdrawFunds(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*models.WithdrawalResult, error)
	TransferFunds(ctx context.Context, senderWalletID, receiverWalletID uuid.UUID, amount decimal.Decimal) (*models.TransferResult, error)
	GetBalance(ctx context.Context, walletID uuid.UUID) (*models.BalanceResponse, error)
	GetTransactionHistory(ctx context.Context, walletID uuid.UUID, page, limit int) (*models.HistoryPage, error)
}

var _ WalletServicer = (*WalletService)(nil)

type TxManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

type WalletService struct {
	repo      repository.Wallet
	txManager TxManager
	cache     *WalletCache
}

// NewWalletService accepts a nil cache; reads then always hit the store.
func NewWalletService(repo repository.Wallet, txManager TxManager, cache *WalletCache) *WalletService {
	return &WalletService{
		repo:      repo,
		txManager: txManager,
		cache:     cache,
	}
}

func (s *WalletService) CreateWalletForUser(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	const op = "service.CreateWalletForUser"

	wallet := &models.Wallet{
		ID:      uuid.New(),
		UserID:  userID,
		Balance: decimal.Zero,
	}
	if err := s.repo.CreateWallet(ctx, wallet); err != nil {
		if errors.Is(err, custom_err.ErrWalletExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return wallet, nil
}

func (s *WalletService) FundWallet(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*models.Wallet, error) {
	const op = "service.FundWallet"

	if !amount.IsPositive() {
		return nil, custom_err.NewValidationError("amount must be greater than zero")
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	wallet, err := s.repo.CreditWalletTx(ctx, tx, walletID, amount)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	txn := &models.Transaction{
		ID:       uuid.New(),
		WalletID: walletID,
		Type:     models.FundTransaction,
		Amount:   amount,
	}
	if err := s.repo.CreateTransactionTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(ctx, walletID)
	return wallet, nil
}

func (s *WalletService) WithdrawFunds(ctx context.Context, walletID uuid.UUID, amount decimal.Decimal) (*models.WithdrawalResult, error) {
	const op = "service.WithdrawFunds"

	if !amount.IsPositive() {
		return nil, custom_err.NewValidationError("amount must be greater than zero")
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if err := s.debitWallet(ctx, tx, walletID, amount, custom_err.ErrNotFound); err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		ID:       uuid.New(),
		WalletID: walletID,
		Type:     models.WithdrawTransaction,
		Amount:   amount.Neg(),
	}
	if err := s.repo.CreateTransactionTx(ctx, tx, txn); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(ctx, walletID)
	return &models.WithdrawalResult{
		Message:  "Withdrawal successful",
		WalletID: walletID,
		Amount:   amount,
	}, nil
}

func (s *WalletService) TransferFunds(ctx context.Context, senderWalletID, receiverWalletID uuid.UUID, amount decimal.Decimal) (*models.TransferResult, error) {
	const op = "service.TransferFunds"

	if !amount.IsPositive() {
		return nil, custom_err.NewValidationError("amount must be greater than zero")
	}
	if senderWalletID == receiverWalletID {
		return nil, custom_err.NewValidationError("self-transfer not allowed")
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	if err := s.debitWallet(ctx, tx, senderWalletID, amount, custom_err.ErrSenderNotFound); err != nil {
		return nil, err
	}

	if _, err := s.repo.CreditWalletTx(ctx, tx, receiverWalletID, amount); err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, custom_err.ErrReceiverNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Exactly two rows per transfer: a debit on the sender and a credit on
	// the receiver, each naming the other as counterparty.
	debit := &models.Transaction{
		ID:             uuid.New(),
		WalletID:       senderWalletID,
		Type:           models.TransferTransaction,
		Amount:         amount.Neg(),
		TargetWalletID: &receiverWalletID,
	}
	if err := s.repo.CreateTransactionTx(ctx, tx, debit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	credit := &models.Transaction{
		ID:             uuid.New(),
		WalletID:       receiverWalletID,
		Type:           models.TransferTransaction,
		Amount:         amount,
		TargetWalletID: &senderWalletID,
	}
	if err := s.repo.CreateTransactionTx(ctx, tx, credit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Invalidate(ctx, senderWalletID)
	s.cache.Invalidate(ctx, receiverWalletID)
	return &models.TransferResult{
		Message:          "Transfer successful",
		Amount:           amount,
		SenderWalletID:   senderWalletID,
		ReceiverWalletID: receiverWalletID,
	}, nil
}

// debitWallet applies the conditional decrement and turns a non-matching
// guard into the right domain error: notFoundErr when the wallet row is
// absent, ErrInsufficientFunds otherwise.
func (s *WalletService) debitWallet(ctx context.Context, tx pgx.Tx, walletID uuid.UUID, amount decimal.Decimal, notFoundErr error) error {
	const op = "service.debitWallet"

	applied, err := s.repo.DebitWalletTx(ctx, tx, walletID, amount)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if applied {
		return nil
	}

	exists, err := s.repo.WalletExistsTx(ctx, tx, walletID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return notFoundErr
	}
	return custom_err.ErrInsufficientFunds
}

func (s *WalletService) GetBalance(ctx context.Context, walletID uuid.UUID) (*models.BalanceResponse, error) {
	const op = "service.GetBalance"

	if balance, ok := s.cache.GetBalance(ctx, walletID); ok {
		return &models.BalanceResponse{WalletID: walletID, Balance: balance}, nil
	}

	wallet, err := s.repo.GetByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.SetBalance(ctx, walletID, wallet.Balance)
	return &models.BalanceResponse{WalletID: walletID, Balance: wallet.Balance}, nil
}

func (s *WalletService) GetTransactionHistory(ctx context.Context, walletID uuid.UUID, page, limit int) (*models.HistoryPage, error) {
	const op = "service.GetTransactionHistory"

	page, limit = clampPagination(page, limit)

	if cached, ok := s.cache.GetHistory(ctx, walletID, page, limit); ok {
		return cached, nil
	}

	if _, err := s.repo.GetByID(ctx, walletID); err != nil {
		if errors.Is(err, custom_err.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	offset := (page - 1) * limit
	transactions, err := s.repo.ListTransactions(ctx, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	total, err := s.repo.CountTransactions(ctx, walletID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := &models.HistoryPage{
		Data:  transactions,
		Page:  page,
		Limit: limit,
		Total: total,
	}
	s.cache.SetHistory(ctx, walletID, page, limit, result)
	return result, nil
}

// clampPagination coerces out-of-range inputs to safe values instead of
// rejecting them: page below 1 becomes 1, a non-positive limit becomes the
// default, an oversized limit is capped.
func clampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return page, limit
}
