// File: internal/handler/index.go
package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed static/index.html
var indexHTML []byte

// IndexHandler 回傳前端入口頁
func IndexHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.HTMLBlob(http.StatusOK, indexHTML)
	}
}
