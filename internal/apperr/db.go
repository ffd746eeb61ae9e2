package apperr

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reParenthesized selects everything between a pair of parentheses.
var reParenthesized = regexp.MustCompile(`\(([^()]+)\)`)

// ParseIntegrityMessage turns a unique-constraint failure text into a readable message.
// Postgres reports the key and value in parentheses ("Key (email)=(a@b.c) already exists.");
// when exactly two such groups are found they are reported as field and value, otherwise
// the raw text is returned because other engines format the message differently.
func ParseIntegrityMessage(text string) string {
	matches := reParenthesized.FindAllStringSubmatch(text, -1)
	if len(matches) == 2 {
		return fmt.Sprintf("Account with %s (%s) already exists", matches[0][1], matches[1][1])
	}
	return text
}

// integrityText rebuilds the driver text the way psql prints it: message plus DETAIL line.
func integrityText(pgErr *pgconn.PgError) string {
	if pgErr.Detail == "" {
		return pgErr.Message
	}
	return pgErr.Message + "\nDETAIL: " + pgErr.Detail
}

// MapDBError maps storage failures onto AppErrors:
//   - pgx.ErrNoRows → NotFound
//   - unique violations → Conflict (with ParseIntegrityMessage)
//   - foreign key, not-null and check violations → Validation
//   - any other PgError → Internal
//
// Errors that are already AppErrors, and unrecognized errors, are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return Wrap(err, CodeNotFound, "Resource not found")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return Wrap(err, CodeConflict, ParseIntegrityMessage(integrityText(pgErr)))
	case pgerrcode.ForeignKeyViolation, pgerrcode.NotNullViolation, pgerrcode.CheckViolation:
		field := pgErr.ColumnName
		if field == "" {
			field = pgErr.ConstraintName
		}
		appErr := Validation(FieldErrors{field: {pgErr.Message}})
		appErr.Cause = err
		return appErr
	default:
		return Wrap(err, CodeInternal, "A database error occurred")
	}
}
