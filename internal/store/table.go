package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"job-board/internal/apperr"
	"job-board/internal/database"

	"github.com/jackc/pgx/v5"
)

// Child is a table whose rows reference the parent through ForeignKey and go away with it.
type Child struct {
	Table      string
	ForeignKey string
}

// Table describes how one model maps onto its table. Insert, Update and Delete
// all run inside a transaction that rolls back on any failure.
type Table[T any] struct {
	Name string
	// Columns are the writable columns, in the order Values returns them.
	Columns []string
	Values  func(*T) []any
	// Returning lists the generated columns read back after insert.
	Returning []string
	Generated func(*T) []any
	Children  []Child
	NotFound  string
}

func (t Table[T]) Insert(ctx context.Context, db database.DB, row *T) error {
	placeholders := make([]string, len(t.Columns))
	for i := range t.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		t.Name,
		strings.Join(t.Columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(t.Returning, ", "),
	)
	err := database.WithTx(ctx, db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, sql, t.Values(row)...).Scan(t.Generated(row)...)
	})
	return apperr.MapDBError(err)
}

// Update sets the given columns on row id. Keys must be writable columns; an empty
// map is a no-op.
func (t Table[T]) Update(ctx context.Context, db database.DB, id int, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if !slices.Contains(t.Columns, k) {
			return apperr.ValidationField(k, "Unknown field.")
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)

	sets := make([]string, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, k := range keys {
		sets[i] = fmt.Sprintf("%s = $%d", k, i+1)
		args = append(args, fields[k])
	}
	args = append(args, id)
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", t.Name, strings.Join(sets, ", "), len(args))

	err := database.WithTx(ctx, db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound(t.NotFound)
		}
		return nil
	})
	return apperr.MapDBError(err)
}

// Delete removes row id together with its children.
func (t Table[T]) Delete(ctx context.Context, db database.DB, id int) error {
	err := database.WithTx(ctx, db, func(tx pgx.Tx) error {
		for _, c := range t.Children {
			if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = $1", c.Table, c.ForeignKey), id); err != nil {
				return err
			}
		}
		tag, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", t.Name), id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperr.NotFound(t.NotFound)
		}
		return nil
	})
	return apperr.MapDBError(err)
}

// lookupErr reports a missing row with msg instead of the generic not-found text.
func lookupErr(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.Wrap(err, apperr.CodeNotFound, msg)
	}
	return apperr.MapDBError(err)
}
