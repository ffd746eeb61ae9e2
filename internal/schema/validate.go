// Package schema validates and normalizes request payloads into models and
// dumps models back into response shapes.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"job-board/internal/apperr"

	"github.com/go-playground/validator/v10"
)

const (
	msgRequired = "Missing data for required field."
	msgEmail    = "Not a valid email address."
	msgInteger  = "Not a valid integer."
	msgString   = "Not a valid string."
	msgInvalid  = "Invalid value."
)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// 錯誤訊息以 json 欄位名稱回報
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validator plugs the field rules into echo (e.Validator).
// swagger:ignore
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{v: validate}
}

// Validate returns an AppError of code validation listing every failing field.
func (cv *Validator) Validate(i any) error {
	return fieldErrors(cv.v.Struct(i))
}

// fieldErrors converts validator output into apperr field errors.
func fieldErrors(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := apperr.FieldErrors{}
	collect(fields, verrs)
	return apperr.Validation(fields)
}

func collect(fields apperr.FieldErrors, verrs validator.ValidationErrors) {
	for _, fe := range verrs {
		fields.Add(fe.Field(), message(fe))
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return msgEmail
	case "max":
		return fmt.Sprintf("Longer than maximum length %s.", fe.Param())
	case "min":
		return fmt.Sprintf("Shorter than minimum length %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return msgInvalid
	}
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
