package store

import (
	"context"
	"fmt"

	"job-board/internal/apperr"
	"job-board/internal/database"
	"job-board/internal/model"

	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, admin_id, title, description, vacancy, salary, location, type,
	company_name, company_logo, company_email, created_at`

var jobs = Table[model.Job]{
	Name: "jobs",
	Columns: []string{
		"admin_id", "title", "description", "vacancy", "salary", "location", "type",
		"company_name", "company_logo", "company_email",
	},
	Values: func(j *model.Job) []any {
		return []any{
			j.AdminID, j.Title, j.Description, j.Vacancy, j.Salary, j.Location, j.Type,
			j.CompanyName, j.CompanyLogo, j.CompanyEmail,
		}
	},
	Returning: []string{"id", "created_at"},
	Generated: func(j *model.Job) []any {
		return []any{&j.ID, &j.CreatedAt}
	},
	NotFound: "Job not found",
}

func scanJob(row pgx.Row) (*model.Job, error) {
	j := &model.Job{}
	if err := row.Scan(
		&j.ID,
		&j.AdminID,
		&j.Title,
		&j.Description,
		&j.Vacancy,
		&j.Salary,
		&j.Location,
		&j.Type,
		&j.CompanyName,
		&j.CompanyLogo,
		&j.CompanyEmail,
		&j.CreatedAt,
	); err != nil {
		return nil, err
	}
	return j, nil
}

func CreateJob(ctx context.Context, db database.DB, j *model.Job) (*model.Job, error) {
	if err := jobs.Insert(ctx, db, j); err != nil {
		return nil, fmt.Errorf("CreateJob: %w", err)
	}
	return j, nil
}

func GetJobByID(ctx context.Context, db database.DB, jobID int) (*model.Job, error) {
	j, err := scanJob(db.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`,
		jobID,
	))
	if err != nil {
		return nil, fmt.Errorf("GetJobByID: %w", lookupErr(err, jobs.NotFound))
	}
	return j, nil
}

// ListJobs returns one page of jobs, newest first, and the total number of jobs.
// Pages start at 1; a page past the end is empty.
func ListJobs(ctx context.Context, db database.DB, page, perPage int) ([]model.Job, int, error) {
	if page < 1 {
		page = 1
	}
	var total int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListJobs: %w", apperr.MapDBError(err))
	}

	rows, err := db.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY id DESC LIMIT $1 OFFSET $2`,
		perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListJobs: %w", apperr.MapDBError(err))
	}
	defer rows.Close()

	list := make([]model.Job, 0, perPage)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("ListJobs: %w", err)
		}
		list = append(list, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListJobs: %w", apperr.MapDBError(err))
	}
	return list, total, nil
}

func UpdateJob(ctx context.Context, db database.DB, jobID int, fields map[string]any) error {
	if err := jobs.Update(ctx, db, jobID, fields); err != nil {
		return fmt.Errorf("UpdateJob: %w", err)
	}
	return nil
}

func DeleteJob(ctx context.Context, db database.DB, jobID int) error {
	if err := jobs.Delete(ctx, db, jobID); err != nil {
		return fmt.Errorf("DeleteJob: %w", err)
	}
	return nil
}
