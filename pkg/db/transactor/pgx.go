package transactor

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgtype/pgxtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
)

type pgxTxKey struct{}

func withPgxTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, pgxTxKey{}, tx)
}

func pgxTxValue(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(pgxTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// PgxTransactor runs functions within pgx transaction
type PgxTransactor interface {
	Transactor
	WithinTransactionWithOptions(context.Context, func(context.Context) error, pgx.TxOptions) error
}

type pgxTransactor struct {
	pool *pgxpool.Pool
}

// NewPgxTransactor builds PgxTransactor
func NewPgxTransactor(p *pgxpool.Pool) PgxTransactor {
	return &pgxTransactor{pool: p}
}

func (t *pgxTransactor) WithinTransaction(ctx context.Context, txFunc func(context.Context) error) error {
	return t.WithinTransactionWithOptions(ctx, txFunc, pgx.TxOptions{})
}

func (t *pgxTransactor) WithinTransactionWithOptions(ctx context.Context, txFunc func(context.Context) error, opts pgx.TxOptions) error {
	// nested calls join outer transaction
	if pgxTxValue(ctx) != nil {
		return txFunc(ctx)
	}

	tx, err := t.pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction - %w", err)
	}

	if err := txFunc(withPgxTx(ctx, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			logrus.Errorf("failed to rollback transaction - %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction - %w", err)
	}
	return nil
}

// PgxWithinTransactionExecutor picks transaction from context if any, otherwise pool
type PgxWithinTransactionExecutor interface {
	Executor(ctx context.Context) PgxQueryExecutor
}

// PgxQueryExecutor runs statements on pool or transaction
type PgxQueryExecutor interface {
	pgxtype.Querier
}

type pgxWithinTransactionExecutor struct {
	pool *pgxpool.Pool
}

// NewPgxWithinTransactionExecutor builds PgxWithinTransactionExecutor
func NewPgxWithinTransactionExecutor(p *pgxpool.Pool) PgxWithinTransactionExecutor {
	return &pgxWithinTransactionExecutor{pool: p}
}

func (e *pgxWithinTransactionExecutor) Executor(ctx context.Context) PgxQueryExecutor {
	tx := pgxTxValue(ctx)
	if tx != nil {
		return tx
	}
	return e.pool
}
