// Command seed 建立預設管理員，可用 -f 指定 YAML 覆寫 email/name/password
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/seed"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type seedConfig struct {
	Env         string `env:"APP_ENV" envDefault:"production"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
}

var (
	newPgxPool      = database.NewPgxPool
	runMigrationsFn = database.RunMigrations
	createSchemaFn  = database.CreateSchema
	runSeed         = seed.Run
	exitFunc        = os.Exit
)

func loadConfig() (seedConfig, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return seedConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}
	var cfg seedConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(out)
	file := fs.String("f", "", "seed YAML 檔案路徑")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := seed.LoadFile(*file)
	if err != nil {
		return err
	}

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if cfg.Env == config.EnvTest {
		err = createSchemaFn(ctx, db)
	} else {
		err = runMigrationsFn(cfg.DatabaseURL)
	}
	if err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	res, err := runSeed(ctx, db, f)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(out, nil))
	logger.InfoContext(ctx, "seed finished",
		slog.Int("admin_id", res.Admin.ID),
		slog.String("email", res.Admin.Email),
		slog.Bool("created", res.Created),
		slog.Bool("updated", res.Updated),
	)
	return nil
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("seed failed", slog.Any("error", err))
		exitFunc(1)
	}
}
