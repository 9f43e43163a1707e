package postgres

import (
	"context"
	"errors"
	"fmt"

	"api_ledger/internal/custom_err"
	"api_ledger/internal/models"
	"api_ledger/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.User = (*UserRepository)(nil)

func (r *UserRepository) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	const op = "repository.CreateUserTx"
	err := tx.QueryRow(ctx, repository.CreateUserQuery,
		user.ID, user.FirstName, user.MiddleName, user.LastName, user.Email,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return custom_err.ErrUserExists
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const op = "repository.ExistsByEmail"
	var exists bool
	if err := r.db.QueryRow(ctx, repository.UserExistsByEmailQuery, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

func (r *UserRepository) GetOldest(ctx context.Context) (*models.User, error) {
	const op = "repository.GetOldestUser"
	var user models.User
	err := r.db.QueryRow(ctx, repository.GetOldestUserQuery).Scan(
		&user.ID, &user.FirstName, &user.MiddleName, &user.LastName, &user.Email,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_err.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}
