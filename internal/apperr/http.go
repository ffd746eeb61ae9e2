package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"job-board/internal/dto"

	"github.com/labstack/echo/v4"
)

// statusCoder is implemented by errors that carry their own HTTP status.
type statusCoder interface {
	StatusCode() int
}

// Translate converts any error into a status code and the uniform response envelope.
func Translate(err error) (int, dto.HTTPError) {
	if appErr, ok := As(err); ok {
		body := dto.HTTPError{Message: appErr.Message}
		if len(appErr.Fields) > 0 {
			body.Errors = appErr.Fields
		}
		return appErr.StatusCode(), body
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if he.Message != nil {
			msg = fmt.Sprint(he.Message)
		}
		return he.Code, dto.HTTPError{Message: msg}
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) && sc.StatusCode() >= 400 {
		status = sc.StatusCode()
	}
	return status, dto.HTTPError{Message: http.StatusText(status)}
}

// NewHTTPErrorHandler returns the echo error handler that every route error flows into.
// Server-side failures are logged unless quiet is set (test environment).
func NewHTTPErrorHandler(logger *slog.Logger, quiet bool) echo.HTTPErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := Translate(err)
		if status >= http.StatusInternalServerError && !quiet {
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Any("error", err),
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil && !quiet {
			logger.Error("write error response", slog.Any("error", werr))
		}
	}
}
