package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	fiberRecover "github.com/gofiber/fiber/v3/middleware/recover"

	"movie-recommendation-api/internal/auth"
	"movie-recommendation-api/internal/config"
	"movie-recommendation-api/internal/database"
	"movie-recommendation-api/internal/handler"
	"movie-recommendation-api/internal/middleware"
	"movie-recommendation-api/internal/repository"
	"movie-recommendation-api/internal/service"
	"movie-recommendation-api/internal/tmdb"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache and rate limiting", "error", err)
	}

	// Initialize TMDB client and token manager
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpirationHours)*time.Hour)

	// Initialize layers
	userRepo := repository.NewUserRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	watchlistRepo := repository.NewWatchlistRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	catalogSvc := service.NewCatalogService(tmdbClient, rdb)
	authSvc := service.NewAuthService(userRepo, tokens)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, rdb)
	watchlistSvc := service.NewWatchlistService(watchlistRepo)
	reviewSvc := service.NewReviewService(reviewRepo)
	recommendationSvc := service.NewRecommendationService(favoriteRepo, catalogSvc, rdb)

	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(catalogSvc)
	favoriteH := handler.NewFavoriteHandler(favoriteSvc)
	watchlistH := handler.NewWatchlistHandler(watchlistSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	recommendationH := handler.NewRecommendationHandler(recommendationSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Recommendation API",
		ServerHeader: "Movie-Recommendation-API",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Global middleware
	app.Use(fiberRecover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Rate limiting (skipped when Redis is down; limiter itself fails open)
	if rdb != nil {
		rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
		app.Use(rateLimiter.Handler())
	}

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	requireAuth := middleware.Auth(tokens, userRepo)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", movieH.Health)

	api.Post("/auth/register", authH.Register)
	api.Post("/auth/login", authH.Login)
	api.Get("/auth/me", authH.Me, requireAuth)

	api.Get("/movies/search", movieH.Search)
	api.Get("/movies/popular", movieH.Popular)
	api.Get("/movies/top-rated", movieH.TopRated)
	api.Get("/movies/discover", movieH.Discover)
	api.Get("/movies/:id", movieH.Details)
	api.Get("/genres", movieH.Genres)

	api.Post("/favorites", favoriteH.Add, requireAuth)
	api.Get("/favorites", favoriteH.List, requireAuth)
	api.Delete("/favorites/:movie_id", favoriteH.Remove, requireAuth)

	api.Post("/watchlists", watchlistH.Create, requireAuth)
	api.Get("/watchlists", watchlistH.List, requireAuth)
	api.Post("/watchlists/:id/movies", watchlistH.AddMovie, requireAuth)
	api.Delete("/watchlists/:id/movies/:movie_id", watchlistH.RemoveMovie, requireAuth)

	api.Post("/reviews", reviewH.Create, requireAuth)
	api.Get("/reviews/user", reviewH.ListForUser, requireAuth)
	api.Get("/reviews/movie/:id", reviewH.ListForMovie)

	api.Get("/recommendations", recommendationH.Get, requireAuth)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.Port
		slog.Info("starting movie recommendation API", "addr", addr)
		if err := app.Listen(addr); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down...")

	if err := app.Shutdown(); err != nil {
		slog.Error("error shutting down HTTP server", "error", err)
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("error closing Redis connection", "error", err)
		}
	}

	slog.Info("shutdown complete")
}
