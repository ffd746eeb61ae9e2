package store

import (
	"context"
	"fmt"

	"job-board/internal/database"
	"job-board/internal/model"

	"github.com/jackc/pgx/v5"
)

const adminColumns = `id, email, name, password_hash, created_at`

var admins = Table[model.Admin]{
	Name:    "admins",
	Columns: []string{"email", "name", "password_hash"},
	Values: func(a *model.Admin) []any {
		return []any{a.Email, a.Name, a.PasswordHash}
	},
	Returning: []string{"id", "created_at"},
	Generated: func(a *model.Admin) []any {
		return []any{&a.ID, &a.CreatedAt}
	},
	Children: []Child{{Table: "jobs", ForeignKey: "admin_id"}},
	NotFound: "Admin not found",
}

func scanAdmin(row pgx.Row) (*model.Admin, error) {
	a := &model.Admin{}
	if err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordHash,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	return a, nil
}

func CreateAdmin(ctx context.Context, db database.DB, a *model.Admin) (*model.Admin, error) {
	if err := admins.Insert(ctx, db, a); err != nil {
		return nil, fmt.Errorf("CreateAdmin: %w", err)
	}
	return a, nil
}

func GetAdminByID(ctx context.Context, db database.DB, adminID int) (*model.Admin, error) {
	a, err := scanAdmin(db.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = $1`,
		adminID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetAdminByID: %w", lookupErr(err, admins.NotFound))
	}
	return a, nil
}

func GetAdminByEmail(ctx context.Context, db database.DB, email string) (*model.Admin, error) {
	a, err := scanAdmin(db.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = $1`,
		email,
	))
	if err != nil {
		return nil, fmt.Errorf("GetAdminByEmail: %w", lookupErr(err, admins.NotFound))
	}
	return a, nil
}

// FirstAdmin returns the admin with the lowest id.
func FirstAdmin(ctx context.Context, db database.DB) (*model.Admin, error) {
	a, err := scanAdmin(db.QueryRow(ctx,
		`SELECT `+adminColumns+` FROM admins ORDER BY id LIMIT 1`,
	))
	if err != nil {
		return nil, fmt.Errorf("FirstAdmin: %w", lookupErr(err, admins.NotFound))
	}
	return a, nil
}

// UpdateAdmin sets the given columns (email, name, password_hash).
func UpdateAdmin(ctx context.Context, db database.DB, adminID int, fields map[string]any) error {
	if err := admins.Update(ctx, db, adminID, fields); err != nil {
		return fmt.Errorf("UpdateAdmin: %w", err)
	}
	return nil
}

// DeleteAdmin removes the admin and every job it owns.
func DeleteAdmin(ctx context.Context, db database.DB, adminID int) error {
	if err := admins.Delete(ctx, db, adminID); err != nil {
		return fmt.Errorf("DeleteAdmin: %w", err)
	}
	return nil
}
