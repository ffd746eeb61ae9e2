package schema

import (
	"context"
	"fmt"

	"job-board/internal/apperr"
	"job-board/internal/asset"
	"job-board/internal/dto"
	"job-board/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

const msgLogoMissing = "does not exist"

// DescriptionTags are the only markup elements kept in a job description.
var DescriptionTags = []string{"p", "h1", "h2", "h3", "ul", "li"}

var jobFields = map[string]string{
	"title":         "Title",
	"description":   "Description",
	"vacancy":       "Vacancy",
	"salary":        "Salary",
	"location":      "Location",
	"type":          "Type",
	"company_name":  "CompanyName",
	"company_logo":  "CompanyLogo",
	"company_email": "CompanyEmail",
}

// JobLoader turns job payloads into models. The logo must exist in the asset store.
type JobLoader struct {
	assets asset.Checker
	policy *bluemonday.Policy
}

func NewJobLoader(assets asset.Checker) *JobLoader {
	return &JobLoader{assets: assets, policy: DescriptionPolicy()}
}

// DescriptionPolicy strips every element except DescriptionTags, and all attributes.
func DescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(DescriptionTags...)
	return p
}

// Sanitize applies the description policy. Sanitizing twice yields the same text.
func (l *JobLoader) Sanitize(description string) string {
	return l.policy.Sanitize(description)
}

// Load validates req and returns an unsaved Job owned by ownerID.
func (l *JobLoader) Load(ctx context.Context, req dto.JobRequest, ownerID int) (*model.Job, error) {
	fields := apperr.FieldErrors{}
	if err := l.check(ctx, fields, validate.Struct(req), req.CompanyLogo); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	return &model.Job{
		AdminID:      ownerID,
		Title:        req.Title,
		Description:  l.Sanitize(req.Description),
		Vacancy:      *req.Vacancy,
		Salary:       req.Salary,
		Location:     req.Location,
		Type:         *req.Type,
		CompanyName:  req.CompanyName,
		CompanyLogo:  req.CompanyLogo,
		CompanyEmail: req.CompanyEmail,
	}, nil
}

// LoadPartial validates only the keys present in raw and returns the column values to update.
func (l *JobLoader) LoadPartial(ctx context.Context, raw []byte) (map[string]any, error) {
	var req dto.JobRequest
	present, err := decodePartial(raw, &req, jobFields)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if len(present) == 0 {
		return out, nil
	}

	logo := ""
	for _, key := range present {
		if key == "company_logo" {
			logo = req.CompanyLogo
		}
	}
	fields := apperr.FieldErrors{}
	if err := l.check(ctx, fields, validate.StructPartial(req, goNames(present, jobFields)...), logo); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		return nil, apperr.Validation(fields)
	}

	for _, key := range present {
		switch key {
		case "title":
			out[key] = req.Title
		case "description":
			out[key] = l.Sanitize(req.Description)
		case "vacancy":
			out[key] = *req.Vacancy
		case "salary":
			out[key] = req.Salary
		case "location":
			out[key] = req.Location
		case "type":
			out[key] = *req.Type
		case "company_name":
			out[key] = req.CompanyName
		case "company_logo":
			out[key] = req.CompanyLogo
		case "company_email":
			out[key] = req.CompanyEmail
		}
	}
	return out, nil
}

// check gathers validator failures into fields and verifies logo when it passed validation.
// Only failures of the asset store itself are returned.
func (l *JobLoader) check(ctx context.Context, fields apperr.FieldErrors, verr error, logo string) error {
	if verr != nil {
		verrs, ok := verr.(validator.ValidationErrors)
		if !ok {
			return verr
		}
		collect(fields, verrs)
	}
	if logo == "" || len(fields["company_logo"]) > 0 {
		return nil
	}
	exists, err := l.assets.Exists(ctx, logo)
	if err != nil {
		return fmt.Errorf("check company_logo: %w", err)
	}
	if !exists {
		fields.Add("company_logo", msgLogoMissing)
	}
	return nil
}
