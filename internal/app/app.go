package app

import (
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/config"
	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

// Infra holds the connections shared by every process.
type Infra struct {
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
}

// Connect opens postgres and, when withRedis is set, redis.
func Connect(cfg config.Config, withRedis bool) (*Infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.Postgres(), cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	infra := &Infra{GormDB: gormDB, DB: sqlDB}
	if !withRedis {
		return infra, nil
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	infra.Redis = rdb
	return infra, nil
}

func (i *Infra) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			zap.L().Warn("close redis failed", zap.Error(err))
		}
	}
	if err := i.DB.Close(); err != nil {
		zap.L().Warn("close database failed", zap.Error(err))
	}
}
