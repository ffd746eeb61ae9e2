// File: internal/model/job.go
package model

import "time"

// Job types.
const (
	JobTypeFullTime = 1
	JobTypePartTime = 2
)

// Job is a listing owned by exactly one Admin.
type Job struct {
	ID           int       `db:"id" json:"id"`
	AdminID      int       `db:"admin_id" json:"-"`
	Title        string    `db:"title" json:"title"`
	Description  string    `db:"description" json:"description"`
	Vacancy      int       `db:"vacancy" json:"vacancy"`
	Salary       string    `db:"salary" json:"salary"`
	Location     string    `db:"location" json:"location"`
	Type         int       `db:"type" json:"type"`
	CompanyName  string    `db:"company_name" json:"company_name"`
	CompanyLogo  string    `db:"company_logo" json:"company_logo"`
	CompanyEmail string    `db:"company_email" json:"company_email"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// OwnedBy reports whether the admin with adminID owns the job.
func (j Job) OwnedBy(adminID int) bool {
	return j.AdminID == adminID
}
