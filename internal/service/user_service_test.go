package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"api_ledger/internal/custom_err"
	"api_ledger/internal/karma"
	"api_ledger/internal/models"
	"api_ledger/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repository.User = (*mockUserRepository)(nil)

type mockUserRepository struct {
	CreateTxFunc      func(ctx context.Context, tx pgx.Tx, user *models.User) error
	ExistsByEmailFunc func(ctx context.Context, email string) (bool, error)
	GetOldestFunc     func(ctx context.Context) (*models.User, error)
}

func (m *mockUserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, user)
	}
	return nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) GetOldest(ctx context.Context) (*models.User, error) {
	if m.GetOldestFunc != nil {
		return m.GetOldestFunc(ctx)
	}
	return nil, errors.New("GetOldestFunc not implemented")
}

var _ karma.Checker = (*mockKarma)(nil)

type mockKarma struct {
	decision karma.Decision
	err      error
}

func (m *mockKarma) Check(ctx context.Context, email string) (karma.Decision, error) {
	return m.decision, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validRequest() models.OnboardUserRequest {
	return models.OnboardUserRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	}
}

func TestUserService_OnboardUser(t *testing.T) {
	t.Run("Success - Creates User And Wallet", func(t *testing.T) {
		var walletCreated bool
		users := &mockUserRepository{}
		wallets := &mockRepository{
			CreateWalletTxFunc: func(ctx context.Context, tx pgx.Tx, wallet *models.Wallet) error {
				walletCreated = true
				assert.True(t, wallet.Balance.IsZero(), "new wallets start empty")
				return nil
			},
		}
		txm := &fakeTxManager{}
		svc := NewUserService(users, wallets, txm, &mockKarma{decision: karma.Allowed}, discardLogger())

		user, err := svc.OnboardUser(context.Background(), validRequest())

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.True(t, walletCreated)
		assert.True(t, txm.tx.committed)
	})

	t.Run("Success - Fails Open When Karma Unavailable", func(t *testing.T) {
		users := &mockUserRepository{}
		wallets := &mockRepository{}
		checker := &mockKarma{decision: karma.Unavailable, err: errors.New("connection refused")}
		svc := NewUserService(users, wallets, &fakeTxManager{}, checker, discardLogger())

		user, err := svc.OnboardUser(context.Background(), validRequest())

		require.NoError(t, err)
		assert.NotNil(t, user)
	})

	t.Run("Error - Blacklisted", func(t *testing.T) {
		created := false
		users := &mockUserRepository{
			CreateTxFunc: func(ctx context.Context, tx pgx.Tx, user *models.User) error {
				created = true
				return nil
			},
		}
		svc := NewUserService(users, &mockRepository{}, &fakeTxManager{}, &mockKarma{decision: karma.Blocked}, discardLogger())

		_, err := svc.OnboardUser(context.Background(), validRequest())

		require.Error(t, err)
		assert.True(t, errors.Is(err, custom_err.ErrBlacklisted))
		assert.False(t, created)
	})

	t.Run("Error - Duplicate Email", func(t *testing.T) {
		users := &mockUserRepository{
			ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
				return true, nil
			},
		}
		svc := NewUserService(users, &mockRepository{}, &fakeTxManager{}, &mockKarma{decision: karma.Allowed}, discardLogger())

		_, err := svc.OnboardUser(context.Background(), validRequest())

		require.Error(t, err)
		assert.True(t, errors.Is(err, custom_err.ErrUserExists))
	})

	t.Run("Error - Validation", func(t *testing.T) {
		svc := NewUserService(&mockUserRepository{}, &mockRepository{}, &fakeTxManager{}, &mockKarma{}, discardLogger())

		cases := []models.OnboardUserRequest{
			{LastName: "Lovelace", Email: "ada@example.com"},
			{FirstName: "Ada", Email: "ada@example.com"},
			{FirstName: "Ada", LastName: "Lovelace"},
			{FirstName: "Ada", LastName: "Lovelace", Email: "not-an-email"},
		}
		for _, req := range cases {
			_, err := svc.OnboardUser(context.Background(), req)
			require.Error(t, err)
			assert.True(t, custom_err.IsValidation(err), "request %+v", req)
		}
	})

	t.Run("Error - Wallet Creation Rolls Back User", func(t *testing.T) {
		users := &mockUserRepository{}
		wallets := &mockRepository{
			CreateWalletTxFunc: func(ctx context.Context, tx pgx.Tx, wallet *models.Wallet) error {
				return errors.New("insert failed")
			},
		}
		txm := &fakeTxManager{}
		svc := NewUserService(users, wallets, txm, &mockKarma{decision: karma.Allowed}, discardLogger())

		_, err := svc.OnboardUser(context.Background(), validRequest())

		require.Error(t, err)
		assert.True(t, txm.tx.rolledBack)
	})
}
