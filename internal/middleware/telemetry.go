package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/config"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const telemetryWriteTimeout = 2 * time.Second

// TelemetryMiddleware records one observation per request (endpoint, status,
// latency, timestamp) to a Redis key-value sink. Writes happen in a separate
// goroutine and are best effort: a slow or failing sink never blocks or
// fails the response it is observing.
func TelemetryMiddleware(redisClient *redis.Client, cfg config.TelemetryConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			endpoint := r.URL.Path
			status := ww.Status()
			duration := time.Since(start)

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), telemetryWriteTimeout)
				defer cancel()

				key := fmt.Sprintf("%s:req:%s", cfg.KeyPrefix, uuid.New())
				recentKey := fmt.Sprintf("%s:recent", cfg.KeyPrefix)

				pipe := redisClient.TxPipeline()
				pipe.HSet(ctx, key,
					"endpoint", endpoint,
					"status_code", strconv.Itoa(status),
					"execution_time", strconv.FormatFloat(duration.Seconds(), 'f', -1, 64),
					"timestamp", strconv.FormatInt(time.Now().Unix(), 10),
				)
				pipe.LPush(ctx, recentKey, key)
				pipe.LTrim(ctx, recentKey, 0, int64(cfg.MaxRecent)-1)

				if _, err := pipe.Exec(ctx); err != nil {
					logger.Warn("Failed to record request telemetry",
						zap.Error(err),
						zap.String("endpoint", endpoint),
					)
				}
			}()
		})
	}
}
