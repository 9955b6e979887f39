package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"out-of-office/internal/config"
	"out-of-office/internal/metrics"
	"out-of-office/internal/middleware"
	"out-of-office/internal/shared/connection"
	"out-of-office/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, registers every module on router and
// returns a function releasing the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres.DSN(), 5)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, 5)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	cleanup := func() {
		_ = rdb.Close()
		_ = sqlDB.Close()
	}

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	router.Use(middleware.RequestID())
	router.GET("/healthz", healthz(sqlDB, rdb))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, m); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func healthz(db *sql.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "up", "redis": "up"}
		healthy := true
		if err := db.PingContext(ctx); err != nil {
			status["database"] = "down"
			healthy = false
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			healthy = false
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Dependency unavailable", status)
			return
		}
		response.Success(c, http.StatusOK, status, nil)
	}
}
