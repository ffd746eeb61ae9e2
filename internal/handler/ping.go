// File: internal/handler/ping.go
package handler

import (
	"net/http"
	"time"

	"job-board/internal/apperr"
	"job-board/internal/cache"
	"job-board/internal/database"

	"github.com/labstack/echo/v4"
)

// pingKey 用來確認快取可寫入
const pingKey = "health:ping"

// PingResponse 健康檢查回應模型
// swagger:model PingResponse
type PingResponse struct {
	// 回應訊息
	Message string `json:"message" example:"pong"`
}

// PingHandler 健康檢查
// @Summary     Health Check
// @Description 回傳 pong，並檢查資料庫與快取連線是否正常
// @Tags        health
// @Produce     json
// @Success     200 {object} PingResponse
// @Failure     500 {object} dto.HTTPError
// @Router      /ping [get]
func PingHandler(db database.DB, c cache.Cache) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		reqCtx := ctx.Request().Context()
		if err := db.Ping(reqCtx); err != nil {
			return apperr.Wrap(err, apperr.CodeInternal, "database unhealthy")
		}
		if err := c.Set(reqCtx, pingKey, time.Now().UTC().Format(time.RFC3339), time.Minute).Err(); err != nil {
			return apperr.Wrap(err, apperr.CodeInternal, "cache unhealthy")
		}
		return ctx.JSON(http.StatusOK, PingResponse{Message: "pong"})
	}
}
