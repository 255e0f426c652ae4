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

const pgUniqueViolationCode = "23505"

const (
	pgEmailActiveIndex = "customers_email_active_idx"
	pgPhoneActiveIndex = "customers_phone_active_idx"
)

const customerColumns = "id, first_name, middle_name, last_name, second_last_name, email, address, phone, country, demonym, disabled"

// CustomerRepository is customers store. Reads never return disabled customers.
type CustomerRepository interface {
	FindByID(context.Context, int) (*model.Customer, error)
	FindAll(context.Context) ([]*model.Customer, error)
	FindByCountry(context.Context, int16) ([]*model.Customer, error)
	Create(context.Context, *model.Customer) (bool, error)
	Update(context.Context, *model.CustomerUpdate) (bool, error)
	DisableByID(context.Context, int) (bool, error)
	DeleteByID(context.Context, int) (bool, error)
	EmailExists(context.Context, string, int) (bool, error)
	PhoneExists(context.Context, string, int) (bool, error)
	NextID(context.Context) (int, error)
}

type postgresCustomerRepository struct {
	executor transactor.PgxWithinTransactionExecutor
}

// NewPostgresCustomerRepository builds postgres CustomerRepository
func NewPostgresCustomerRepository(executor transactor.PgxWithinTransactionExecutor) CustomerRepository {
	return &postgresCustomerRepository{executor: executor}
}

func (r *postgresCustomerRepository) FindByID(ctx context.Context, id int) (*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customers WHERE id = $1 AND NOT disabled"

	c, err := r.scanRow(r.executor.Executor(ctx).QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresCustomerRepository) FindAll(ctx context.Context) ([]*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customers WHERE NOT disabled ORDER BY id"
	return r.query(ctx, q)
}

func (r *postgresCustomerRepository) FindByCountry(ctx context.Context, country int16) ([]*model.Customer, error) {
	q := "SELECT " + customerColumns + " FROM customers WHERE country = $1 AND NOT disabled ORDER BY id"
	return r.query(ctx, q, country)
}

func (r *postgresCustomerRepository) Create(ctx context.Context, c *model.Customer) (bool, error) {
	q := `INSERT INTO customers(id, first_name, middle_name, last_name, second_last_name, email, address, phone, country, demonym, disabled)
          VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	comm, err := r.executor.Executor(ctx).Exec(
		ctx,
		q,
		c.ID,
		c.FirstName,
		c.MiddleName,
		c.LastName,
		c.SecondLastName,
		c.Email,
		c.Address,
		c.Phone,
		c.Country,
		c.Demonym,
		c.Disabled,
	)
	if err != nil {
		return false, r.uniqueViolation(err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) Update(ctx context.Context, upd *model.CustomerUpdate) (bool, error) {
	q := `UPDATE customers SET email = COALESCE($1, email), address = COALESCE($2, address), phone = COALESCE($3, phone),
          country = $4, demonym = $5
          WHERE id = $6 AND NOT disabled`

	comm, err := r.executor.Executor(ctx).Exec(ctx, q, upd.Email, upd.Address, upd.Phone, upd.Country, upd.Demonym, upd.ID)
	if err != nil {
		return false, r.uniqueViolation(err)
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) DisableByID(ctx context.Context, id int) (bool, error) {
	q := "UPDATE customers SET disabled = TRUE WHERE id = $1 AND NOT disabled"
	comm, err := r.executor.Executor(ctx).Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) DeleteByID(ctx context.Context, id int) (bool, error) {
	q := "DELETE FROM customers WHERE id = $1"
	comm, err := r.executor.Executor(ctx).Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return comm.RowsAffected() > 0, nil
}

func (r *postgresCustomerRepository) EmailExists(ctx context.Context, email string, excludeID int) (bool, error) {
	q := "SELECT EXISTS(SELECT 1 FROM customers WHERE email = $1 AND id <> $2 AND NOT disabled)"
	return r.exists(ctx, q, email, excludeID)
}

func (r *postgresCustomerRepository) PhoneExists(ctx context.Context, phone string, excludeID int) (bool, error) {
	q := "SELECT EXISTS(SELECT 1 FROM customers WHERE phone = $1 AND id <> $2 AND NOT disabled)"
	return r.exists(ctx, q, phone, excludeID)
}

func (r *postgresCustomerRepository) NextID(ctx context.Context) (int, error) {
	var id int64
	if err := r.executor.Executor(ctx).QueryRow(ctx, "SELECT nextval('customers_id_seq')").Scan(&id); err != nil {
		return 0, err
	}
	return int(id), nil
}

func (r *postgresCustomerRepository) exists(ctx context.Context, q string, args ...any) (bool, error) {
	var exists bool
	if err := r.executor.Executor(ctx).QueryRow(ctx, q, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *postgresCustomerRepository) query(ctx context.Context, q string, args ...any) ([]*model.Customer, error) {
	rows, err := r.executor.Executor(ctx).Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]*model.Customer, 0)
	for rows.Next() {
		c, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *postgresCustomerRepository) scanRow(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.MiddleName,
		&c.LastName,
		&c.SecondLastName,
		&c.Email,
		&c.Address,
		&c.Phone,
		&c.Country,
		&c.Demonym,
		&c.Disabled,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// uniqueViolation translates violation of active email/phone indexes into business errors
func (r *postgresCustomerRepository) uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolationCode {
		return err
	}

	switch pgErr.ConstraintName {
	case pgEmailActiveIndex:
		return apperrors.ErrDuplicateEmail.Wrap(err)
	case pgPhoneActiveIndex:
		return apperrors.ErrDuplicatePhone.Wrap(err)
	default:
		return err
	}
}
