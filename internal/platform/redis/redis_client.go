// Package redis はフォーム状態と一覧スナップショットを保持するRedisクライアントを生成します。
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"empresas_admin/internal/platform/config"
)

// NewRedisClient は設定からRedisクライアントを作成し、接続を確認します。
// REDIS_HOST が未設定なら (nil, nil) を返し、呼び出し側はメモリ実装にフォールバックします。
func NewRedisClient(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (*redis.Client, error) {
	if cfg.Host == "" {
		log.Info("Redis not configured, using in-memory state")
		return nil, nil
	}
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error("Redis connection failed", zap.String("address", addr), zap.Error(err))
		_ = rdb.Close()
		return nil, err
	}

	log.Info("Redis connection successful", zap.String("address", addr))
	return rdb, nil
}
