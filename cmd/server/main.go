package main // Entry point package

import (
	"log" // Logging library
	"os"  // Environment toggles

	"github.com/joho/godotenv"               // .env loader for local development
	"github.com/labstack/echo/v4"            // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo built-in middleware (CORS, logging, recovery)

	"github.com/himanshu1091/store-rating-api/internal/config"     // Internal config loader
	"github.com/himanshu1091/store-rating-api/internal/database"   // MySQL pool constructor
	"github.com/himanshu1091/store-rating-api/internal/handler"    // HTTP handlers
	"github.com/himanshu1091/store-rating-api/internal/middleware" // Redis cache and rate limiting
	"github.com/himanshu1091/store-rating-api/internal/queue"      // Rating event consumer
	"github.com/himanshu1091/store-rating-api/internal/repository" // Data access layer
	"github.com/himanshu1091/store-rating-api/internal/router"     // Route registration
	"github.com/himanshu1091/store-rating-api/internal/validate"   // Request DTO validation
)

func main() {
	_ = godotenv.Load() // Load .env when present; real env vars win

	cfg := config.Load() // Load environment config (fatal on missing required vars)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	defer db.Close()

	// Repositories over the shared pool
	users := repository.NewUserRepo(db)
	stores := repository.NewStoreRepo(db)
	ratings := repository.NewRatingRepo(db)

	// Handlers
	authH := handler.NewAuthHandler(cfg, users)
	userH := handler.NewUserHandler(cfg, users)
	storeH := handler.NewStoreHandler(stores)
	ratingH := handler.NewRatingHandler(ratings)

	e := echo.New()
	e.Validator = validate.New()
	e.Use(echomw.Recover()) // request isolation: a panicking handler answers 500, never kills the process
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())

	// Redis-backed middleware degrades to passthrough when Redis is down
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: response cache and rate limiting disabled")
	}
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)

	// Routes
	router.RegisterRoutes(e)                              // health check
	router.RegisterAuth(e, authH)                         // register + login
	router.RegisterStores(e, storeH, cfg.JWTSecret, cache) // store directory
	router.RegisterRatings(e, ratingH, cfg.JWTSecret, cache) // ratings + aggregates
	router.RegisterUsers(e, userH, cfg.JWTSecret)         // admin + password change

	// Background consumer appending the rating audit log; opt out with
	// RATING_CONSUMER_ENABLED=false when no broker is deployed.
	if os.Getenv("RATING_CONSUMER_ENABLED") != "false" {
		go func() {
			if err := queue.StartRatingConsumer(); err != nil {
				log.Printf("rating consumer stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
