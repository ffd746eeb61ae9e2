package schema

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"

	"job-board/internal/apperr"

	"github.com/labstack/echo/v4"
)

// Bind decodes the request into dst and reports type mismatches per field.
func Bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return BindError(err)
	}
	return nil
}

// BindError maps an echo binding failure onto a validation error when the
// offending field is known, otherwise onto a bad request.
func BindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeError(typeErr)
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if errors.As(he.Internal, &typeErr) {
			return typeError(typeErr)
		}
		if he.Code == http.StatusUnsupportedMediaType {
			return apperr.Wrap(err, apperr.CodeBadRequest, "Unsupported content type")
		}
	}
	return apperr.Wrap(err, apperr.CodeBadRequest, "Malformed request body")
}

func typeError(te *json.UnmarshalTypeError) error {
	msg := msgInvalid
	if te.Type != nil {
		switch te.Type.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			msg = msgInteger
		case reflect.String:
			msg = msgString
		}
	}
	field := te.Field
	if field == "" {
		field = "_schema"
	}
	appErr := apperr.ValidationField(field, msg)
	appErr.Cause = te
	return appErr
}
