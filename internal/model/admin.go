// File: internal/model/admin.go
package model

import "time"

// RedactedPassword is what reading an admin's password yields.
const RedactedPassword = "***"

// Admin owns Jobs and authenticates with email/password.
// PasswordHash is write-only: it is never encoded and only set through service.SetPassword.
type Admin struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Password returns the redacted placeholder, never the hash.
func (a Admin) Password() string {
	return RedactedPassword
}
