package app

import (
	"context"
	"database/sql"

	"github.com/hoangtrungt373/chat-api-service/internal/config"
	"github.com/hoangtrungt373/chat-api-service/internal/db"
	"github.com/hoangtrungt373/chat-api-service/internal/logger"
	"github.com/hoangtrungt373/chat-api-service/internal/redis"

	_ "github.com/lib/pq"
)

type Infra struct {
	DB    *sql.DB
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	sqlDB, err := sql.Open("postgres", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := db.RunUserSchemaMigration(ctx, sqlDB); err != nil {
		return nil, err
	}

	logger.Info("database ready", nil)

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		DB:    sqlDB,
		Redis: redisClient,
	}, nil
}
