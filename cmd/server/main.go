package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Optional .env file loader
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/car-rental/internal/config"
	"github.com/iliyamo/car-rental/internal/database"
	"github.com/iliyamo/car-rental/internal/handler"
	"github.com/iliyamo/car-rental/internal/middleware"
	"github.com/iliyamo/car-rental/internal/queue"
	"github.com/iliyamo/car-rental/internal/repository"
	"github.com/iliyamo/car-rental/internal/router"
)

func main() {
	// Load a .env file when present; real deployments set env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	creds := repository.NewCredentialRepo(db)
	tokens := repository.NewTokenRepo(db)
	cars := repository.NewCarRepo(db)
	bookings := repository.NewBookingRepo(db)

	authHandler := handler.NewAuthHandler(cfg, creds, tokens)
	fleetHandler := handler.NewFleetHandler(cars, bookings)
	rentalHandler := handler.NewRentalHandler(cars, bookings)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterFleet(e, fleetHandler, cfg.JWTSecret)
	router.RegisterRental(e, rentalHandler, cfg.JWTSecret, cacheMW)

	// Background consumer mirrors confirmed bookings into logs/booking.log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
