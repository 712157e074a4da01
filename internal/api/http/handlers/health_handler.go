package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/girmesh03/Task-Manager-V19/internal/observability"
	"github.com/girmesh03/Task-Manager-V19/internal/persistence"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	pg      *persistence.Postgres
	redis   *persistence.Redis
	metrics *observability.Metrics
}

// NewHealthHandler constructs handler.
func NewHealthHandler(pg *persistence.Postgres, redis *persistence.Redis, metrics *observability.Metrics) *HealthHandler {
	return &HealthHandler{pg: pg, redis: redis, metrics: metrics}
}

// Live GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready GET /health/ready. Reports degraded dependencies without failing the
// probe for optional ones.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	checks := fiber.Map{"postgres": "ok", "redis": "ok"}
	status := http.StatusOK

	if h.pg == nil || h.pg.PoolHandle() == nil {
		checks["postgres"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else if err := h.pg.PoolHandle().Ping(c.UserContext()); err != nil {
		checks["postgres"] = err.Error()
		status = http.StatusServiceUnavailable
	}

	if err := h.redis.Ping(c.UserContext()); err != nil {
		checks["redis"] = "unavailable"
	}

	return c.Status(status).JSON(fiber.Map{"checks": checks})
}

// Counters GET /health/counters. Process-local request/error counters.
func (h *HealthHandler) Counters(c *fiber.Ctx) error {
	requests, errs := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"requests": requests, "errors": errs})
}
