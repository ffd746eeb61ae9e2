// File: internal/dto/job.go
package dto

import "time"

// JobRequest 建立職缺
// Vacancy and Type are pointers so a missing value can be told apart from zero.
// swagger:model dto.JobRequest
type JobRequest struct {
	Title        string `json:"title" form:"title" validate:"required" example:"Backend Engineer"`
	Description  string `json:"description" form:"description" validate:"required" example:"<p>Go, Postgres</p>"`
	Vacancy      *int   `json:"vacancy" form:"vacancy" validate:"required" example:"2"`
	Salary       string `json:"salary" form:"salary" validate:"required" example:"Negotiable"`
	Location     string `json:"location" form:"location" validate:"required" example:"Taipei"`
	Type         *int   `json:"type" form:"type" validate:"required,oneof=1 2" example:"1"`
	CompanyName  string `json:"company_name" form:"company_name" validate:"required" example:"ACME"`
	CompanyLogo  string `json:"company_logo" form:"company_logo" validate:"required" example:"logos/3f6c.png"`
	CompanyEmail string `json:"company_email" form:"company_email" validate:"required" example:"jobs@acme.test"`
}

// swagger:model dto.JobResponse
type JobResponse struct {
	ID           int       `json:"id" example:"1"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Vacancy      int       `json:"vacancy"`
	Salary       string    `json:"salary"`
	Location     string    `json:"location"`
	Type         int       `json:"type" example:"1"`
	CompanyName  string    `json:"company_name"`
	CompanyLogo  string    `json:"company_logo" example:"https://cdn.example.com/logos/3f6c.png"`
	CompanyEmail string    `json:"company_email"`
	CreatedAt    time.Time `json:"created_at"`
}

// swagger:model dto.JobEnvelope
type JobEnvelope struct {
	Data JobResponse `json:"data"`
}

// PageMeta 分頁資訊
// swagger:model dto.PageMeta
type PageMeta struct {
	Total   int `json:"total" example:"20"`
	Page    int `json:"page" example:"1"`
	PerPage int `json:"per_page" example:"15"`
}

// swagger:model dto.JobListResponse
type JobListResponse struct {
	Data []JobResponse `json:"data"`
	Meta PageMeta      `json:"meta"`
}
