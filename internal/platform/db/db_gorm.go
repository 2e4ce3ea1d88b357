// Package db は開発用バックエンドが使うGORM接続を提供します。
package db

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"empresas_admin/internal/platform/config"
)

const retryInterval = 3 * time.Second

// ErrUnsupportedDriver は DB_DRIVER が sqlite / postgres 以外の場合に返されます。
var ErrUnsupportedDriver = errors.New("unsupported db driver")

// Opener はDSNからDBを開く関数です。テストで差し替えられます。
type Opener func(dsn string) (*gorm.DB, error)

// OpenerFor はドライバー名に対応する Opener を返します。
func OpenerFor(driver string) (Opener, error) {
	switch driver {
	case "sqlite":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		}, nil
	case "postgres":
		return func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// ConnectWithRetry は timeout に達するまで一定間隔で接続を再試行します。
// Postgres コンテナの起動待ちを想定しています。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener, log *zap.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		log.Warn("DB connect failed, retrying", zap.Error(err))
		time.Sleep(retryInterval)
	}
}

// OpenDB は設定に従ってDBを開き、RunMigrations が有効なら models を自動マイグレーションします。
func OpenDB(cfg config.DevBackendConfig, log *zap.Logger, models ...any) (*gorm.DB, error) {
	open, err := OpenerFor(cfg.DBDriver)
	if err != nil {
		return nil, err
	}

	db, err := ConnectWithRetry(cfg.DBDSN, 60*time.Second, open, log)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations && len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
		log.Info("database migrated", zap.String("driver", cfg.DBDriver))
	}
	return db, nil
}
