package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the statement surface shared by the pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is the connection handle passed into every store call; *pgxpool.Pool satisfies it.
type DB interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(context.Context) error
	Close()
}

type FakeDB struct {
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	BeginFn    func(ctx context.Context) (pgx.Tx, error)
	PingFn     func(ctx context.Context) error
	CloseFn    func()
}

func (f *FakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if f.ExecFn != nil {
		return f.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (f *FakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if f.QueryFn != nil {
		return f.QueryFn(ctx, sql, args...)
	}
	panic("unexpected Query")
}

func (f *FakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if f.QueryRowFn != nil {
		return f.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

func (f *FakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if f.BeginFn != nil {
		return f.BeginFn(ctx)
	}
	panic("unexpected Begin")
}

func (f *FakeDB) Ping(ctx context.Context) error {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

func (f *FakeDB) Close() {
	if f.CloseFn != nil {
		f.CloseFn()
	}
}

// FakeTx records the outcome of a transaction. Methods other than the ones
// overridden here hit the nil embedded interface and panic.
type FakeTx struct {
	pgx.Tx
	ExecFn     func(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	CommitErr  error

	Statements []string
	Committed  bool
	RolledBack bool
}

func (t *FakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.Statements = append(t.Statements, sql)
	if t.ExecFn != nil {
		return t.ExecFn(ctx, sql, args...)
	}
	panic("unexpected Exec")
}

func (t *FakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.Statements = append(t.Statements, sql)
	if t.QueryRowFn != nil {
		return t.QueryRowFn(ctx, sql, args...)
	}
	panic("unexpected QueryRow")
}

func (t *FakeTx) Commit(context.Context) error {
	if t.CommitErr != nil {
		return t.CommitErr
	}
	t.Committed = true
	return nil
}

func (t *FakeTx) Rollback(context.Context) error {
	if t.Committed {
		return pgx.ErrTxClosed
	}
	t.RolledBack = true
	return nil
}

// TxDB returns a FakeDB whose Begin hands out tx.
func TxDB(tx *FakeTx) *FakeDB {
	return &FakeDB{BeginFn: func(context.Context) (pgx.Tx, error) { return tx, nil }}
}
