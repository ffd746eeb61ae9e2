// File: internal/router/router.go
package router

import (
	"job-board/internal/asset"
	"job-board/internal/cache"
	"job-board/internal/database"
	"job-board/internal/handler"
	"job-board/internal/handler/auth"
	"job-board/internal/handler/jobs"
	"job-board/internal/handler/upload"
	"job-board/internal/middleware"
	"job-board/internal/schema"
	"job-board/internal/service"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Deps 路由需要的依賴
type Deps struct {
	DB     database.DB
	Cache  cache.Cache
	Tokens *service.TokenService
	Assets asset.Store
	Upload upload.Options
	Jobs   jobs.Options
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	loader := schema.NewJobLoader(d.Assets)
	requireAuth := middleware.RequireAuth(d.Tokens, d.DB)
	optionalAuth := middleware.OptionalAuth(d.Tokens, d.DB)

	e.GET("/", handler.IndexHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 註冊與登入
	api.POST("/register", auth.RegisterHandler(d.DB, d.Tokens))
	api.POST("/login", auth.LoginHandler(d.DB, d.Tokens))

	api.POST("/upload", upload.UploadHandler(d.Assets, d.Upload), optionalAuth)

	// 職缺
	api.GET("/jobs", jobs.ListJobsHandler(d.DB, d.Assets))
	api.GET("/jobs/:id", jobs.GetJobHandler(d.DB, d.Assets))
	api.POST("/jobs", jobs.CreateJobHandler(d.DB, loader, d.Assets, d.Jobs), optionalAuth)
	api.DELETE("/jobs/:id", jobs.DeleteJobHandler(d.DB), requireAuth)
}
