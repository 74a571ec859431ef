package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pressly/goose/v3"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/laurenz19/tourvisit/internal/handler"
	"github.com/laurenz19/tourvisit/internal/infrastructure/logger"
	"github.com/laurenz19/tourvisit/internal/infrastructure/redis"
	"github.com/laurenz19/tourvisit/internal/migrations"
	"github.com/laurenz19/tourvisit/internal/observability/tracing"
	"github.com/laurenz19/tourvisit/internal/repository"
	"github.com/laurenz19/tourvisit/internal/security/auth"
	"github.com/laurenz19/tourvisit/internal/service"
	"github.com/laurenz19/tourvisit/pkg/config"
	"github.com/laurenz19/tourvisit/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting tourvisit server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	shutdownTracing, err := tracing.Init(ctx, log, "tourvisit", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Connect to PostgreSQL and apply migrations
	pool, err := database.NewConnectionPool(ctx, &database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Error("failed to set migration dialect", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := goose.UpContext(ctx, pool.GetDB(), "."); err != nil {
		log.Error("failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Optional Redis-backed refresh-token denylist
	var denylist service.TokenDenylist
	var redisPinger handler.Pinger
	if cfg.RedisURL != "" {
		dl, err := redis.NewDenylist(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer dl.Close()
		denylist = dl
		redisPinger = dl
		log.Info("refresh-token revocation enabled")
	}

	// 6. Initialize repositories
	db := pool.GetDB()
	userRepo := repository.NewPostgresUserRepository(db, log)
	visitorRepo := repository.NewPostgresVisitorRepository(db, log)
	siteRepo := repository.NewPostgresSiteRepository(db, log)
	visitRepo := repository.NewPostgresVisitRepository(db, log)
	counterRepo := repository.NewPostgresCounterRepository(db)

	// 7. Initialize services
	tokenManager := auth.NewTokenManager(
		cfg.AccessTokenSecret,
		cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)
	authService := service.NewAuthService(userRepo, counterRepo, tokenManager, denylist, log)
	visitorService := service.NewVisitorService(visitorRepo, counterRepo, log)
	siteService := service.NewSiteService(siteRepo, visitRepo, counterRepo, log)
	visitService := service.NewVisitService(visitRepo, visitorRepo, siteRepo, counterRepo, log)

	// 8. Initialize handlers and routes
	h := handler.Handlers{
		Register: handler.NewRegisterHandler(authService, log),
		Login:    handler.NewLoginHandler(authService, log),
		Refresh:  handler.NewRefreshHandler(authService, log),
		Visitors: handler.NewVisitorHandler(visitorService, log),
		Sites:    handler.NewSiteHandler(siteService, log),
		Visits:   handler.NewVisitHandler(visitService, log),
		Health:   handler.NewHealthHandler(pool, redisPinger),
	}
	router := handler.NewRouter(h, tokenManager, authService.RevocationEnabled(), log)

	// CORS middleware honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		router.ServeHTTP(w, r)
	})

	rootHandler := withRequestLogging(
		otelhttp.NewHandler(handlerWithCORS, "tourvisit"),
		log,
	)

	// 9. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "jwt"),
		slog.Bool("revocation", authService.RevocationEnabled()),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown error", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}

// withRequestLogging logs each completed request with its duration
func withRequestLogging(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request completed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
