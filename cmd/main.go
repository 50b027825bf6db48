package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthpgx "github.com/hellofresh/health-go/v5/checks/pgx5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/yakoovad/startup-roster/internal/api"
	"github.com/yakoovad/startup-roster/internal/auth"
	"github.com/yakoovad/startup-roster/internal/db"
	"github.com/yakoovad/startup-roster/internal/repository"
	"github.com/yakoovad/startup-roster/internal/service"
	"github.com/yakoovad/startup-roster/pkg/config"
	"github.com/yakoovad/startup-roster/pkg/logger"
	"go.uber.org/zap"
)

const version = "v0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting application", zap.String("version", version))

	auth.TokenSecretKey = cfg.Auth.TokenSecret

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	err = pool.Ping(pingCtx)
	cancel()
	if err != nil {
		logger.Fatal("failed to ping database", zap.Error(err))
	}

	logger.Info("database connection established",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.DBName))

	healthChecker, err := api.NewHealthChecker(version, health.Config{
		Name:    "postgres",
		Timeout: 2 * time.Second,
		Check:   healthpgx.New(healthpgx.Config{DSN: cfg.Database.DSN()}),
	})
	if err != nil {
		logger.Fatal("failed to set up health checks", zap.Error(err))
	}

	transactor := db.NewPgxTransactor(pool)

	startupRepo := repository.NewPgxStartupRepository(pool)
	cofounderRepo := repository.NewPgxCofounderRepository(pool)

	cofounders := service.NewCofounderService(transactor).WithStartupRepo(startupRepo).WithCofounderRepo(cofounderRepo)

	e := echo.New()
	e.HideBanner = true

	handler := api.NewHandler(logger).WithHealthChecker(healthChecker).WithCofounderService(cofounders)

	handler.RegisterRoutes(e)

	go func() {
		logger.Info("server starting", zap.String("address", cfg.Server.Address()))
		if err := e.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down server", zap.Error(err))
	}
}
