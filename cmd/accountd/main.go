package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	accounts "github.com/accountkit/go-accounts"
	"github.com/accountkit/go-accounts/migrations"
)

func main() {
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := accounts.NewSlogLogger(slogger)

	cfg, err := LoadConfig()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *AppConfig, logger accounts.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDatabaseDSN())
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := migrate(ctx, sqldb); err != nil {
		return err
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	repo := accounts.NewRepositoryManager(bunDB)
	if err := repo.Validate(); err != nil {
		return err
	}

	tokens := accounts.NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		logger,
	)

	app := fiber.New(fiber.Config{
		AppName:      "accountd",
		ErrorHandler: accounts.NewJSONErrorHandler(logger),
	})

	app.Use(requestid.New())
	app.Use(recover.New())

	accounts.RegisterAccountRoutes(
		app.Group("/user"),
		accounts.WithLogger(logger),
		accounts.WithRepositoryManager(repo),
		accounts.WithTokenService(tokens),
		accounts.WithContextKey(cfg.GetContextKey()),
		accounts.WithAuthScheme(cfg.GetAuthScheme()),
		accounts.WithDebug(cfg.Debug),
	)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.GetHTTPAddr())
		errCh <- app.Listen(cfg.GetHTTPAddr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}
