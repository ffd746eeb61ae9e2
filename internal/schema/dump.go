package schema

import (
	"job-board/internal/asset"
	"job-board/internal/dto"
	"job-board/internal/model"
)

// DumpAdmin never exposes the password.
func DumpAdmin(a model.Admin) dto.AdminResponse {
	return dto.AdminResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		CreatedAt: a.CreatedAt.UTC(),
	}
}

// DumpJob resolves company_logo into its delivery URL.
func DumpJob(j model.Job, urls asset.URLBuilder) dto.JobResponse {
	return dto.JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Description:  j.Description,
		Vacancy:      j.Vacancy,
		Salary:       j.Salary,
		Location:     j.Location,
		Type:         j.Type,
		CompanyName:  j.CompanyName,
		CompanyLogo:  urls.URL(j.CompanyLogo),
		CompanyEmail: j.CompanyEmail,
		CreatedAt:    j.CreatedAt.UTC(),
	}
}

func DumpJobs(jobs []model.Job, urls asset.URLBuilder) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, DumpJob(j, urls))
	}
	return out
}
