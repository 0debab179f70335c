package handler

import (
    "context"      // context bounds the readiness ping
    "database/sql" // sql provides the DB handle for the readiness probe
    "net/http"     // net/http provides status codes and response helpers
    "time"         // time stamps the health payload

    "github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
    DB *sql.DB // connection pool pinged by Ready; may be nil in tests
}

// Health is a simple liveness endpoint used by load balancers and
// monitoring systems to verify that the process is up.  It never touches
// a dependency.
func (h *HealthHandler) Health(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{
        "status":  "ok",
        "service": "restaurant-table-reservation",
        "time":    time.Now().UTC().Format(time.RFC3339),
    })
}

// Ready reports whether the service can do useful work: it pings the
// database with a short timeout and returns 503 when the ping fails.
func (h *HealthHandler) Ready(c echo.Context) error {
    if h.DB == nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "reason": "database not configured"})
    }
    ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
    defer cancel()
    if err := h.DB.PingContext(ctx); err != nil {
        return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable", "reason": "database unreachable"})
    }
    return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
}
