package handler

import (
	"context"
	"net/http"
	"time"

	"autocenter/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// BreakerReporter is satisfied by *infra.Mailer.
type BreakerReporter interface {
	BreakerState() string
}

// Health returns a JSON health check response.
// Checks DB and Redis connectivity; never exposes credentials or internals.
// DLQ sizes and the SMTP breaker state are informative and never fail the check.
func Health(db *gorm.DB, rdb *redis.Client, mailer BreakerReporter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":    status == http.StatusOK,
			"db":    dbStatus,
			"redis": redisStatus,
		}
		if redisStatus == "connected" {
			if dlq, err := worker.DLQLength(ctx, rdb); err == nil {
				body["dlq"] = dlq
			}
		}
		if mailer != nil {
			body["smtp_breaker"] = mailer.BreakerState()
		}
		c.JSON(status, body)
	}
}
