package repository

import (
	"context"

	"api_ledger/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Wallet interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wallet, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error)
	CreateWallet(ctx context.Context, wallet *models.Wallet) error
	CreateWalletTx(ctx context.Context, tx pgx.Tx, wallet *models.Wallet) error

	// CreditWalletTx unconditionally adds amount to the wallet's balance and
	// returns the updated row. ErrNotFound when the wallet does not exist.
	CreditWalletTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (*models.Wallet, error)

	// DebitWalletTx subtracts amount only if the current balance covers it.
	// Returns false when the guard did not match, which means either the
	// wallet is missing or the balance is insufficient; the caller decides
	// which via WalletExistsTx.
	DebitWalletTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (bool, error)

	WalletExistsTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error)

	CreateTransactionTx(ctx context.Context, tx pgx.Tx, txn *models.Transaction) error
	ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]models.Transaction, error)
	CountTransactions(ctx context.Context, walletID uuid.UUID) (int64, error)
}

type User interface {
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// GetOldest returns the earliest-created user, which the faux auth
	// middleware treats as the authenticated caller.
	GetOldest(ctx context.Context) (*models.User, error)
}
