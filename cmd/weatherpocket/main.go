package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/weatherpocket/weatherpocket/internal/api/http"
	"github.com/weatherpocket/weatherpocket/internal/config"
	"github.com/weatherpocket/weatherpocket/internal/district"
	"github.com/weatherpocket/weatherpocket/internal/favorites"
	"github.com/weatherpocket/weatherpocket/internal/geocode"
	"github.com/weatherpocket/weatherpocket/internal/scheduler"
	"github.com/weatherpocket/weatherpocket/internal/settings"
	"github.com/weatherpocket/weatherpocket/internal/storage"
	"github.com/weatherpocket/weatherpocket/internal/store"
	"github.com/weatherpocket/weatherpocket/internal/weather"
	"github.com/weatherpocket/weatherpocket/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound Open-Meteo calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Local key-value persistence for favorites and settings.
	kv, err := storage.NewFileStore(cfg.DataFile)
	if err != nil {
		log.Fatalf("failed to open data file: %v", err)
	}

	favStore := favorites.NewStore(kv)
	settingsStore := settings.NewStore(kv)

	// Snapshot cache with configured staleness window.
	cache := store.NewMemoryCache(cfg.CacheStaleAfter)

	// Weather service over the two Open-Meteo endpoints.
	svc := weather.NewService(
		providers.NewOpenMeteoClient(httpClient),
		providers.NewAirQualityClient(httpClient),
		cache,
	)

	// Geocoding: forward lookup plus the reverse fallback chain
	// (Kakao, then OpenWeatherMap, then the static placeholder).
	owm := geocode.NewOpenWeatherClient(cfg.OpenWeatherAPIKey)
	reverseChain := geocode.NewChain(
		geocode.NewKakaoClient(cfg.KakaoAPIKey),
		owm,
	)

	districts, err := district.Load()
	if err != nil {
		log.Fatalf("failed to load district list: %v", err)
	}

	// Background refresh of favorited locations.
	sched := scheduler.New(favStore, svc, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-pocket",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-pocket",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, httpapi.Deps{
		Weather:   svc,
		Favorites: favStore,
		Settings:  settingsStore,
		Districts: districts,
		Geocoder:  owm,
		Reverse:   reverseChain,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
