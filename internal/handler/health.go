package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	amqpConn    *amqp.Connection
}

func NewHealthHandler(dbPool *pgxpool.Pool, redisClient *redis.Client, amqpConn *amqp.Connection) *HealthHandler {
	return &HealthHandler{dbPool: dbPool, redisClient: redisClient, amqpConn: amqpConn}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	ok(c, http.StatusOK, gin.H{"status": "ok"})
}

// Readyz probes each backing service and reports the first one that is down.
func (h *HealthHandler) Readyz(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.dbPool.Ping(ctx); err != nil {
		fail(c, http.StatusServiceUnavailable, "postgres unavailable")
		return
	}
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		fail(c, http.StatusServiceUnavailable, "redis unavailable")
		return
	}
	if h.amqpConn.IsClosed() {
		fail(c, http.StatusServiceUnavailable, "rabbitmq unavailable")
		return
	}

	ok(c, http.StatusOK, gin.H{
		"postgres": "connected",
		"redis":    "connected",
		"rabbitmq": "connected",
	})
}
