// @title        Job Board API
// @version      1.0
// @description  這是 Job Board 的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"job-board/internal/apperr"
	"job-board/internal/asset"
	"job-board/internal/cache"
	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/handler/jobs"
	"job-board/internal/handler/upload"
	"job-board/internal/router"
	"job-board/internal/schema"
	"job-board/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	_ "job-board/docs" // 引入 swag 產出的 docs
)

const shutdownTimeout = 10 * time.Second

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	createSchemaFn  = database.CreateSchema
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	logOutput       io.Writer = os.Stdout
	exitFunc        = os.Exit
)

// initLogger 安裝 JSON slog 為預設 logger
func initLogger(w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

func newEcho(cfg config.Config, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = schema.NewValidator()
	e.HTTPErrorHandler = apperr.NewHTTPErrorHandler(logger, cfg.IsTest())
	if !cfg.IsTest() {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	return e
}

// prepareSchema 測試環境直接建表，其餘環境跑 migration
func prepareSchema(ctx context.Context, cfg config.Config, db database.DB) error {
	if cfg.IsTest() {
		return createSchemaFn(ctx, db)
	}
	return runMigrationsFn(cfg.DatabaseURL)
}

// serve 啟動 HTTP server，ctx 結束時在 shutdownTimeout 內優雅關閉
func serve(ctx context.Context, e *echo.Echo, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		if err := startServer(e, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		defer done()
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger := initLogger(logOutput)

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := prepareSchema(ctx, cfg, db); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	rdb, err := newRedisClient(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	tokens, err := service.NewTokenService(cfg.SecretKey, cfg.TokenTTL)
	if err != nil {
		return err
	}

	client, err := asset.NewClient(cfg.Asset, &http.Client{Timeout: cfg.Asset.Timeout})
	if err != nil {
		return fmt.Errorf("asset client: %w", err)
	}
	defer client.Close()

	e := newEcho(cfg, logger)
	router.Setup(e, router.Deps{
		DB:     db,
		Cache:  rdb,
		Tokens: tokens,
		Assets: asset.NewCachedStore(client, rdb, cfg.Asset.CacheTTL, logger),
		Upload: upload.Options{
			MaxBytes:   cfg.Upload.MaxBytes,
			Extensions: cfg.Upload.Extensions,
		},
		Jobs: jobs.Options{
			AllowAnonymous:     cfg.Jobs.AllowAnonymous,
			FallbackAdminEmail: cfg.Jobs.FallbackAdminEmail,
		},
	})

	logger.InfoContext(ctx, "server starting", slog.String("addr", cfg.Addr), slog.String("env", cfg.Env))
	return serve(ctx, e, cfg.Addr)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		slog.Error("service stopped", slog.Any("error", err))
		exitFunc(1)
	}
}
