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
	"github.com/shopspring/decimal"
)

func (r *WalletRepository) CreditWalletTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (*models.Wallet, error) {
	const op = "repository.CreditWalletTx"
	var wallet models.Wallet
	err := tx.QueryRow(ctx, repository.CreditWalletQuery, id, amount).Scan(
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

func (r *WalletRepository) DebitWalletTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	const op = "repository.DebitWalletTx"
	cmdTag, err := tx.Exec(ctx, repository.DebitWalletQuery, id, amount)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return cmdTag.RowsAffected() > 0, nil
}

func (r *WalletRepository) WalletExistsTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (bool, error) {
	const op = "repository.WalletExistsTx"
	var exists bool
	if err := tx.QueryRow(ctx, repository.WalletExistsQuery, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

func (r *WalletRepository) CreateTransactionTx(ctx context.Context, tx pgx.Tx, txn *models.Transaction) error {
	const op = "repository.CreateTransactionTx"
	_, err := tx.Exec(ctx, repository.CreateTransactionQuery,
		txn.ID, txn.WalletID, txn.Type, txn.Amount, txn.TargetWalletID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *WalletRepository) ListTransactions(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	const op = "repository.ListTransactions"
	rows, err := r.db.Query(ctx, repository.ListTransactionsQuery, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0, limit)
	for rows.Next() {
		var txn models.Transaction
		if err := rows.Scan(
			&txn.ID, &txn.WalletID, &txn.Type, &txn.Amount, &txn.TargetWalletID,
			&txn.CreatedAt, &txn.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return transactions, nil
}

func (r *WalletRepository) CountTransactions(ctx context.Context, walletID uuid.UUID) (int64, error) {
	const op = "repository.CountTransactions"
	var total int64
	if err := r.db.QueryRow(ctx, repository.CountTransactionsQuery, walletID).Scan(&total); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
