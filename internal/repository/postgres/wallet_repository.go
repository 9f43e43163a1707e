package postgres

import (
	"context"
	"errors"
	"fmt"

	"api_ledger/internal/custom_err"
	"api_ledger/internal/models"
	"api_ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type WalletRepository struct {
	db *pgxpool.Pool
}

func NewWalletRepository(db *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{db: db}
}

var _ repository.Wallet = (*WalletRepository)(nil)

func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Wallet, error) {
	const op = "repository.GetByID"
	var wallet models.Wallet
	err := r.db.QueryRow(ctx, repository.GetWalletByIDQuery, id).Scan(
		&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &wallet, nil
}

func (r *WalletRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	const op = "repository.GetByUserID"
	var wallet models.Wallet
	err := r.db.QueryRow(ctx, repository.GetWalletByUserIDQuery, userID).Scan(
		&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &wallet, nil
}

func (r *WalletRepository) CreateWallet(ctx context.Context, wallet *models.Wallet) error {
	const op = "repository.CreateWallet"
	err := r.db.QueryRow(ctx, repository.CreateWalletQuery, wallet.ID, wallet.UserID, wallet.Balance).
		Scan(&wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return custom_err.ErrWalletExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *WalletRepository) CreateWalletTx(ctx context.Context, tx pgx.Tx, wallet *models.Wallet) error {
	const op = "repository.CreateWalletTx"
	err := tx.QueryRow(ctx, repository.CreateWalletQuery, wallet.ID, wallet.UserID, wallet.Balance).
		Scan(&wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return custom_err.ErrWalletExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
