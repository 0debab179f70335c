package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/restaurant-table-reservation/internal/handler" // import the handlers that implement business logic
)

// Handlers bundles every handler the API exposes so the wiring in
// main stays a single call.  Fields are nil-safe only in the sense
// that main always fills all of them; tests register subsets with
// their own Echo instance instead.
type Handlers struct {
	Health       *handler.HealthHandler
	Tables       *handler.TableHandler
	Customers    *handler.CustomerHandler
	Hours        *handler.HoursHandler
	Availability *handler.AvailabilityHandler
	Reservations *handler.ReservationHandler
}

// RegisterRoutes registers health-check routes on the provided Echo
// instance.  These live outside the /api/v1 prefix so load balancers
// and monitoring systems can probe them without versioned paths.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	// Liveness: the process is up and serving.
	e.GET("/health", h.Health)
	// Readiness: the database answers a ping, so traffic is safe.
	e.GET("/ready", h.Ready)
}

// RegisterAPI registers the versioned API under /api/v1.  The
// cacheMW middleware, when non-nil, is applied only to availability
// reads: those are the hot, repeatable queries where a short-lived
// cached body is worth the staleness.  Writes never pass through it.
func RegisterAPI(e *echo.Echo, h *Handlers, cacheMW echo.MiddlewareFunc) {
	v1 := e.Group("/api/v1")

	// Table inventory management.
	v1.POST("/tables", h.Tables.Create)
	v1.GET("/tables", h.Tables.List)
	v1.GET("/tables/:id", h.Tables.Get)
	v1.PUT("/tables/:id", h.Tables.Update)
	v1.DELETE("/tables/:id", h.Tables.Delete)

	// Customer lookup.  Records are created implicitly at reservation
	// intake, so there is no POST route here.
	v1.GET("/customers", h.Customers.List)
	v1.GET("/customers/:id", h.Customers.Get)

	// Operating hours: one weekly row per day plus date-specific
	// overrides (closures and special schedules).
	v1.GET("/hours", h.Hours.ListWeekly)
	v1.PUT("/hours/:day", h.Hours.UpsertWeekly)
	v1.GET("/hours/special", h.Hours.ListSpecial)
	v1.PUT("/hours/special", h.Hours.UpsertSpecial)
	v1.DELETE("/hours/special/:date", h.Hours.DeleteSpecial)

	// Availability reads get the response cache when configured.
	avail := v1.Group("/availability")
	if cacheMW != nil {
		avail.Use(cacheMW)
	}
	avail.GET("", h.Availability.Slots)
	avail.GET("/check", h.Availability.Check)

	// Reservation intake and lifecycle.
	v1.POST("/reservations", h.Reservations.Create)
	v1.GET("/reservations", h.Reservations.List)
	v1.GET("/reservations/:id", h.Reservations.Get)
	v1.PUT("/reservations/:id", h.Reservations.Update)
	v1.PATCH("/reservations/:id/status", h.Reservations.ChangeStatus)
	v1.POST("/reservations/:id/cancel", h.Reservations.Cancel)
	v1.DELETE("/reservations/:id", h.Reservations.Delete)
}
