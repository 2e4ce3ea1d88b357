package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"empresas_admin/internal/app/di"
	"empresas_admin/internal/app/router"
	empresashandler "empresas_admin/internal/feature/empresas/transport/handler"
	empresasusecase "empresas_admin/internal/feature/empresas/usecase"
	envioshandler "empresas_admin/internal/feature/envios/transport/handler"
	proveedoreshandler "empresas_admin/internal/feature/proveedores/transport/handler"
	proveedoresusecase "empresas_admin/internal/feature/proveedores/usecase"
	"empresas_admin/internal/platform/config"
	"empresas_admin/internal/platform/externalapi/backend"
	infrahttp "empresas_admin/internal/platform/http"
	"empresas_admin/internal/platform/http/handler"
	"empresas_admin/internal/platform/logger"
	"empresas_admin/internal/platform/metrics"
	"empresas_admin/internal/platform/observability"
	infraredis "empresas_admin/internal/platform/redis"
	"empresas_admin/internal/shared/submission"
)

const serviceName = "empresas-admin"

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

	// Redis（未設定・接続失敗時はメモリ実装）
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis, zl); err != nil {
		zl.Warn("Redis unavailable. Running with in-memory state.", zap.Error(err))
	} else if tmp != nil {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				zl.Error("failed to close Redis client", zap.Error(err))
			}
		}()
	}

	m := metrics.New(serviceName)

	// バックエンドAPI
	client, err := di.NewBackendClient(cfg.Backend, m)
	if err != nil {
		zl.Fatal("failed to create backend client", zap.Error(err))
	}
	empresaAPI := backend.NewEmpresaAPI(client)
	proveedorAPI := backend.NewProveedorAPI(client)
	if cfg.Backend.JWTSecret == "" {
		zl.Warn("BACKEND_JWT_SECRET is not set. Requests to the backend carry no service token.")
	}

	// Usecase
	guard := submission.NewGuard(di.NewSubmissionStore(rdb, cfg.State.SubmissionTTL), m)
	empresasUC := empresasusecase.NewEmpresaUsecase(empresaAPI, di.NewEmpresaSnapshots(rdb, cfg.State.SnapshotTTL))
	proveedoresUC := proveedoresusecase.NewProveedorUsecase(proveedorAPI, proveedorAPI, di.NewProveedorSnapshots(rdb, cfg.State.SnapshotTTL))

	// Readiness
	checks := map[string]handler.CheckFunc{}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	if cfg.Admin.User == "" && cfg.IsProduction() {
		zl.Warn("ADMIN_USER is not set. The admin UI is not protected.")
	}

	// ルータ生成
	r := router.NewRouter(router.AdminDeps{
		Empresas:          empresashandler.NewEmpresaHandler(empresasUC, guard),
		Proveedores:       proveedoreshandler.NewProveedorHandler(proveedoresUC, guard),
		Envios:            envioshandler.NewEnvioHandler(guard),
		Metrics:           m,
		Checks:            checks,
		AdminUser:         cfg.Admin.User,
		AdminPasswordHash: cfg.Admin.PasswordHash,
	})

	zl.Info("starting admin server",
		zap.String("port", cfg.Server.Port),
		zap.String("backend", cfg.Backend.BaseURL),
	)
	if err := infrahttp.ListenAndServe(ctx, cfg.Server.Port, observability.WithServerTiming(r), zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
