package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"job-board/internal/apperr"
	"job-board/internal/database"
	"job-board/internal/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func adminVals(a model.Admin) []any {
	return []any{a.ID, a.Email, a.Name, a.PasswordHash, a.CreatedAt}
}

func TestAdminRepository(t *testing.T) {
	now := time.Now().UTC()
	sample := model.Admin{ID: 7, Email: "alice@example.com", Name: "Alice", PasswordHash: "hash", CreatedAt: now}

	t.Run("Create ok", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		tx := &database.FakeTx{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			gotSQL, gotArgs = sql, args
			return &fakeRow{vals: []any{7, now}}
		}}
		a := &model.Admin{Email: "alice@example.com", Name: "Alice", PasswordHash: "hash"}
		got, err := CreateAdmin(context.Background(), database.TxDB(tx), a)
		require.NoError(t, err)
		require.Equal(t, 7, got.ID)
		require.Equal(t, now, got.CreatedAt)
		require.Equal(t, "INSERT INTO admins (email, name, password_hash) VALUES ($1, $2, $3) RETURNING id, created_at", gotSQL)
		require.Equal(t, []any{"alice@example.com", "Alice", "hash"}, gotArgs)
		require.True(t, tx.Committed)
	})

	t.Run("Create duplicate email", func(t *testing.T) {
		dup := &pgconn.PgError{
			Code:    pgerrcode.UniqueViolation,
			Message: `duplicate key value violates unique constraint "admins_email_key"`,
			Detail:  "Key (email)=(alice@example.com) already exists.",
		}
		tx := &database.FakeTx{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanErr: dup}
		}}
		_, err := CreateAdmin(context.Background(), database.TxDB(tx), &model.Admin{})
		require.True(t, apperr.IsConflict(err))
		appErr, _ := apperr.As(err)
		require.Equal(t, "Account with email (alice@example.com) already exists", appErr.Message)
		require.True(t, tx.RolledBack)
		require.False(t, tx.Committed)
	})

	t.Run("GetByID ok", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "WHERE id = $1")
			require.Equal(t, []any{7}, args)
			return &fakeRow{vals: adminVals(sample)}
		}}
		got, err := GetAdminByID(context.Background(), db, 7)
		require.NoError(t, err)
		require.Equal(t, sample, *got)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(context.Context, string, ...any) pgx.Row {
			return &fakeRow{scanErr: pgx.ErrNoRows}
		}}
		_, err := GetAdminByID(context.Background(), db, 7)
		require.True(t, apperr.IsNotFound(err))
		require.ErrorIs(t, err, pgx.ErrNoRows)
		require.Contains(t, err.Error(), "GetAdminByID: Admin not found")
	})

	t.Run("GetByEmail", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "WHERE email = $1")
			require.Equal(t, []any{"alice@example.com"}, args)
			return &fakeRow{vals: adminVals(sample)}
		}}
		got, err := GetAdminByEmail(context.Background(), db, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, 7, got.ID)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &fakeRow{scanErr: errors.New("conn reset")} }
		_, err = GetAdminByEmail(context.Background(), db, "alice@example.com")
		require.Error(t, err)
		require.False(t, apperr.IsNotFound(err))
	})

	t.Run("FirstAdmin", func(t *testing.T) {
		db := &database.FakeDB{QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
			require.Contains(t, sql, "ORDER BY id LIMIT 1")
			return &fakeRow{vals: adminVals(sample)}
		}}
		got, err := FirstAdmin(context.Background(), db)
		require.NoError(t, err)
		require.Equal(t, 7, got.ID)

		db.QueryRowFn = func(context.Context, string, ...any) pgx.Row { return &fakeRow{scanErr: pgx.ErrNoRows} }
		_, err = FirstAdmin(context.Background(), db)
		require.True(t, apperr.IsNotFound(err))
	})

	t.Run("Update sets sorted columns", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		tx := &database.FakeTx{ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			gotSQL, gotArgs = sql, args
			return pgconn.NewCommandTag("UPDATE 1"), nil
		}}
		err := UpdateAdmin(context.Background(), database.TxDB(tx), 7, map[string]any{"name": "Bob", "email": "bob@example.com"})
		require.NoError(t, err)
		require.Equal(t, "UPDATE admins SET email = $1, name = $2 WHERE id = $3", gotSQL)
		require.Equal(t, []any{"bob@example.com", "Bob", 7}, gotArgs)
		require.True(t, tx.Committed)
	})

	t.Run("Update missing row", func(t *testing.T) {
		tx := &database.FakeTx{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}}
		err := UpdateAdmin(context.Background(), database.TxDB(tx), 7, map[string]any{"name": "Bob"})
		require.True(t, apperr.IsNotFound(err))
		require.True(t, tx.RolledBack)
	})

	t.Run("Update rejects unknown column", func(t *testing.T) {
		err := UpdateAdmin(context.Background(), &database.FakeDB{}, 7, map[string]any{"id": 9})
		require.True(t, apperr.IsValidation(err))
	})

	t.Run("Update with no fields", func(t *testing.T) {
		require.NoError(t, UpdateAdmin(context.Background(), &database.FakeDB{}, 7, nil))
	})

	t.Run("Delete removes owned jobs first", func(t *testing.T) {
		tx := &database.FakeTx{ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
			require.Equal(t, []any{7}, args)
			if strings.HasPrefix(sql, "DELETE FROM jobs") {
				return pgconn.NewCommandTag("DELETE 3"), nil
			}
			return pgconn.NewCommandTag("DELETE 1"), nil
		}}
		require.NoError(t, DeleteAdmin(context.Background(), database.TxDB(tx), 7))
		require.Equal(t, []string{
			"DELETE FROM jobs WHERE admin_id = $1",
			"DELETE FROM admins WHERE id = $1",
		}, tx.Statements)
		require.True(t, tx.Committed)
	})

	t.Run("Delete child failure rolls back", func(t *testing.T) {
		tx := &database.FakeTx{ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
			return pgconn.CommandTag{}, errors.New("lock timeout")
		}}
		err := DeleteAdmin(context.Background(), database.TxDB(tx), 7)
		require.ErrorContains(t, err, "lock timeout")
		require.Len(t, tx.Statements, 1)
		require.True(t, tx.RolledBack)
	})
}
