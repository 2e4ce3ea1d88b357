package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	empresasusecase "empresas_admin/internal/feature/empresas/usecase"
	proveedoresusecase "empresas_admin/internal/feature/proveedores/usecase"
	"empresas_admin/internal/platform/cache"
	"empresas_admin/internal/platform/session"
	"empresas_admin/internal/shared/submission"
)

// NewSubmissionStore creates the form token store.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process store.
func NewSubmissionStore(rdb *redis.Client, ttl time.Duration) submission.Store {
	if rdb != nil {
		return session.NewSubmissionRedis(rdb, "envio", ttl)
	}
	return submission.NewMemoryStore(ttl)
}

// NewEmpresaSnapshots creates the list snapshot store of the empresas feature.
func NewEmpresaSnapshots(rdb *redis.Client, ttl time.Duration) empresasusecase.SnapshotStore {
	if rdb != nil {
		return cache.NewRedisSnapshots[empresasusecase.Snapshot](rdb, ttl, "vista:empresas")
	}
	return cache.NewMemorySnapshots[empresasusecase.Snapshot](ttl)
}

// NewProveedorSnapshots creates the list snapshot store of the proveedores feature.
func NewProveedorSnapshots(rdb *redis.Client, ttl time.Duration) proveedoresusecase.SnapshotStore {
	if rdb != nil {
		return cache.NewRedisSnapshots[proveedoresusecase.Snapshot](rdb, ttl, "vista:proveedores")
	}
	return cache.NewMemorySnapshots[proveedoresusecase.Snapshot](ttl)
}
