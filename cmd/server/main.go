package main // Entry point package

import (
	"context" // Context for the schema migration
	"log"     // Logging library
	"time"    // Timeout for startup tasks

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/restaurant-table-reservation/internal/booking"    // Seating engine
	"github.com/iliyamo/restaurant-table-reservation/internal/config"     // Internal config loader
	"github.com/iliyamo/restaurant-table-reservation/internal/database"   // MySQL pool and schema bootstrap
	"github.com/iliyamo/restaurant-table-reservation/internal/handler"    // HTTP handlers
	"github.com/iliyamo/restaurant-table-reservation/internal/middleware" // Cache and rate-limit middleware
	"github.com/iliyamo/restaurant-table-reservation/internal/queue"      // Reservation event consumer
	"github.com/iliyamo/restaurant-table-reservation/internal/repository" // SQL repositories and store adapter
	"github.com/iliyamo/restaurant-table-reservation/internal/router"     // Route registration
	queue_publisher "github.com/iliyamo/restaurant-table-reservation/internal/service" // RabbitMQ event publisher
)

func main() {
	// Load a local .env when present.  In production the variables come
	// from the real environment and the missing file is not an error.
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v (using process environment)", err)
	}

	cfg := config.Load() // Load environment config

	// Open the MySQL pool and make sure the schema exists before any
	// request can touch it.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database open: %v", err)
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(migrateCtx, db); err != nil {
		log.Fatalf("schema migration: %v", err)
	}

	// Assemble the engine: SQL-backed store, policy knobs from the
	// environment, and the RabbitMQ publisher for lifecycle events.
	store := repository.NewStore(db)
	bk := config.LoadBookingConfig()
	svc := booking.NewService(store, booking.Policy{
		DefaultDurationMinutes: bk.DefaultDurationMin,
		SlotGranularityMinutes: bk.SlotGranularityMin,
		MaxCombinationTables:   bk.CombineMaxTables,
		MaxCombinationExcess:   bk.CombineMaxExcess,
		GuestContactThreshold:  bk.GuestContactThreshold,
	}, queue_publisher.New())

	// The consumer mirrors reservation events into logs/reservation.log.
	// It reconnects on its own; a dead broker never blocks the API.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New() // Create Echo instance

	// Redis backs both the availability response cache and the token
	// bucket rate limiter.  Both fail open when Redis is down.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	h := &router.Handlers{
		Health:       &handler.HealthHandler{DB: db},
		Tables:       &handler.TableHandler{Tables: store.Tables()},
		Customers:    &handler.CustomerHandler{Customers: store.Customers()},
		Hours:        &handler.HoursHandler{Hours: store.Hours()},
		Availability: &handler.AvailabilityHandler{Svc: svc},
		Reservations: &handler.ReservationHandler{Svc: svc},
	}
	router.RegisterRoutes(e, h.Health) // Health and readiness probes
	router.RegisterAPI(e, h, cacheMW)  // Versioned API under /api/v1

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
