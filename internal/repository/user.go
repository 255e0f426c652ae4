package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	apperrors "github.com/umalmyha/customer-registry/internal/errors"
	"github.com/umalmyha/customer-registry/internal/model"
	"github.com/umalmyha/customer-registry/pkg/db/transactor"
)

// UserRepository is store of API operators
type UserRepository interface {
	Create(context.Context, *model.User) error
	FindByEmail(context.Context, string) (*model.User, error)
	FindByID(context.Context, string) (*model.User, error)
}

type postgresUserRepository struct {
	executor transactor.PgxWithinTransactionExecutor
}

// NewPostgresUserRepository builds postgres UserRepository
func NewPostgresUserRepository(executor transactor.PgxWithinTransactionExecutor) UserRepository {
	return &postgresUserRepository{executor: executor}
}

func (r *postgresUserRepository) Create(ctx context.Context, u *model.User) error {
	q := "INSERT INTO users(id, email, password_hash) VALUES($1, $2, $3)"
	if _, err := r.executor.Executor(ctx).Exec(ctx, q, u.ID, u.Email, u.PasswordHash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return apperrors.ErrUserEmailReserved.Wrap(err)
		}
		return err
	}
	return nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	q := "SELECT id, email, password_hash FROM users WHERE email = $1"
	return r.scanRow(r.executor.Executor(ctx).QueryRow(ctx, q, email))
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	q := "SELECT id, email, password_hash FROM users WHERE id = $1"
	return r.scanRow(r.executor.Executor(ctx).QueryRow(ctx, q, id))
}

func (r *postgresUserRepository) scanRow(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
