package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const healthCheckTimeout = 3 * time.Second

// HealthHandler serves /health. Postgres is required; the redis check only
// runs when a client was configured for rate limiting.
type HealthHandler struct {
	pool  *pgxpool.Pool
	redis *redis.Client
}

func NewHealthHandler(pool *pgxpool.Pool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{pool: pool, redis: redisClient}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	record := func(name string, err error) {
		if err != nil {
			checks[name] = "down: " + err.Error()
			healthy = false
			return
		}
		checks[name] = "ok"
	}

	record("database", h.pool.Ping(ctx))
	if h.redis != nil {
		record("redis", h.redis.Ping(ctx).Err())
	}

	status := http.StatusOK
	body := map[string]interface{}{
		"status": "ok",
		"checks": checks,
	}
	if !healthy {
		status = http.StatusServiceUnavailable
		body["status"] = "unhealthy"
	}
	writeJSON(w, status, body)
}
