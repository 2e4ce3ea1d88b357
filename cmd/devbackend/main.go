package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"empresas_admin/internal/app/router"
	"empresas_admin/internal/feature/devbackend/adapters"
	devhandler "empresas_admin/internal/feature/devbackend/transport/handler"
	devusecase "empresas_admin/internal/feature/devbackend/usecase"
	"empresas_admin/internal/platform/config"
	infradb "empresas_admin/internal/platform/db"
	infrahttp "empresas_admin/internal/platform/http"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/platform/metrics"
)

const serviceName = "empresas-devbackend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.Init(logger.Options{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: serviceName,
	})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(cfg.DevBackend, zl, adapters.Models()...)
	if err != nil {
		zl.Fatal("failed to open database", zap.Error(err))
	}

	// Repository → Usecase → Handler
	repo := adapters.NewCatalogGorm(db)
	uc := devusecase.NewCatalogUsecase(repo)
	h := devhandler.NewCatalogHandler(uc)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.Backend.JWTSecret == "" {
		zl.Warn("BACKEND_JWT_SECRET is not set. The API accepts unauthenticated requests.")
	}

	r := router.NewDevBackendRouter(h, metrics.New(serviceName), cfg.Backend.JWTSecret)

	zl.Info("starting development backend",
		zap.String("port", cfg.DevBackend.Port),
		zap.String("driver", cfg.DevBackend.DBDriver),
	)
	if err := infrahttp.ListenAndServe(ctx, cfg.DevBackend.Port, r, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
