package main

import (
	"errors"
	"fmt"

	"github.com/target/aircraft-catalog/internal/bootstrap"
)

// connectServices opens Postgres (and Redis when enabled) and builds the
// service container. The returned close func releases every connection.
func connectServices(cmdCtx *commandContext) (bootstrap.ServiceContainer, func(), error) {
	db, err := bootstrap.ConnectDB(cmdCtx.Config.Postgres, cmdCtx.Logger)
	if err != nil {
		return bootstrap.ServiceContainer{}, nil, fmt.Errorf("connect db: %w", err)
	}
	redisClient, err := bootstrap.ConnectRedis(cmdCtx.Config.Redis, cmdCtx.Logger)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
		}
		return bootstrap.ServiceContainer{}, nil, fmt.Errorf("connect redis: %w", err)
	}

	services := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cmdCtx.Config,
		DB:          db,
		RedisClient: redisClient,
		Logger:      cmdCtx.Logger,
	})
	closeAll := func() {
		if services.Metrics != nil {
			if cerr := services.Metrics.Close(); cerr != nil {
				cmdCtx.Logger.Warn("statsd close failed", "error", cerr)
			}
		}
		if redisClient != nil {
			if cerr := redisClient.Close(); cerr != nil {
				cmdCtx.Logger.Warn("redis close failed", "error", cerr)
			}
		}
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}
	return services, closeAll, nil
}
