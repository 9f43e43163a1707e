package service

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"api_ledger/internal/custom_err"
	"api_ledger/internal/db"
	"api_ledger/internal/models"
	"api_ledger/internal/repository/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIntegrationTest(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	require.NoError(t, db.RunMigrations(dsn, "../../migrations"))

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(context.Background()))

	t.Cleanup(func() {
		pool.Exec(context.Background(), "TRUNCATE transactions, wallets, users CASCADE")
		pool.Close()
	})
	return pool
}

func createTestWallet(t *testing.T, pool *pgxpool.Pool, balance string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	userID := uuid.New()
	_, err := pool.Exec(ctx, `
        INSERT INTO users (id, first_name, last_name, email, created_at, updated_at)
        VALUES ($1, 'Test', 'User', $2, NOW(), NOW())`,
		userID, userID.String()+"@example.com")
	require.NoError(t, err)

	walletID := uuid.New()
	_, err = pool.Exec(ctx, `
        INSERT INTO wallets (id, user_id, balance, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())`,
		walletID, userID, balance)
	require.NoError(t, err)
	return walletID
}

// Two concurrent transfers that would jointly overdraw the sender: exactly
// one must commit, and the final balance must reflect the single winner.
func TestWalletService_TransferFunds_Concurrent(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()

	repo := postgres.NewWalletRepository(pool)
	svc := NewWalletService(repo, pool, nil)

	senderID := createTestWallet(t, pool, "300.00")
	receiverA := createTestWallet(t, pool, "0.00")
	receiverB := createTestWallet(t, pool, "0.00")

	var wg sync.WaitGroup
	results := make([]error, 2)
	receivers := []uuid.UUID{receiverA, receiverB}

	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.TransferFunds(ctx, senderID, receivers[i], dec("200"))
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			failed++
			assert.True(t, errors.Is(err, custom_err.ErrInsufficientFunds), "loser must see insufficient funds, got %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)

	sender, err := repo.GetByID(ctx, senderID)
	require.NoError(t, err)
	assert.True(t, sender.Balance.Equal(dec("100.00")), "final balance is %s", sender.Balance)

	var rows int64
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM transactions WHERE wallet_id = $1 OR target_wallet_id = $1", senderID).Scan(&rows))
	assert.Equal(t, int64(2), rows, "the single successful transfer writes exactly two rows")
}

func TestWalletService_Ledger_Integration(t *testing.T) {
	pool := setupIntegrationTest(t)
	ctx := context.Background()

	repo := postgres.NewWalletRepository(pool)
	svc := NewWalletService(repo, pool, nil)

	t.Run("Fund Then Withdraw", func(t *testing.T) {
		walletID := createTestWallet(t, pool, "300.00")

		wallet, err := svc.FundWallet(ctx, walletID, dec("100"))
		require.NoError(t, err)
		assert.True(t, wallet.Balance.Equal(dec("400.00")))

		_, err = svc.WithdrawFunds(ctx, walletID, dec("1500"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, custom_err.ErrInsufficientFunds))

		// The rejected withdrawal must leave no trace.
		balance, err := svc.GetBalance(ctx, walletID)
		require.NoError(t, err)
		assert.True(t, balance.Balance.Equal(dec("400.00")))

		history, err := svc.GetTransactionHistory(ctx, walletID, 1, 10)
		require.NoError(t, err)
		require.Equal(t, int64(1), history.Total)
		assert.Equal(t, models.FundTransaction, history.Data[0].Type)
		assert.True(t, history.Data[0].Amount.Equal(dec("100")))
	})

	t.Run("Transfer Conserves Total", func(t *testing.T) {
		senderID := createTestWallet(t, pool, "500.00")
		receiverID := createTestWallet(t, pool, "200.00")

		_, err := svc.TransferFunds(ctx, senderID, receiverID, dec("100"))
		require.NoError(t, err)

		sender, err := repo.GetByID(ctx, senderID)
		require.NoError(t, err)
		receiver, err := repo.GetByID(ctx, receiverID)
		require.NoError(t, err)

		assert.True(t, sender.Balance.Equal(dec("400.00")))
		assert.True(t, receiver.Balance.Equal(dec("300.00")))

		history, err := svc.GetTransactionHistory(ctx, senderID, 1, 10)
		require.NoError(t, err)
		require.Equal(t, int64(1), history.Total)
		require.NotNil(t, history.Data[0].TargetWalletID)
		assert.Equal(t, receiverID, *history.Data[0].TargetWalletID)
		assert.True(t, history.Data[0].Amount.Equal(dec("-100")))
	})
}
