package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wordwatch/internal/audit"
	jwttoken "wordwatch/internal/jwt_token"
	"wordwatch/internal/platform/config"
	"wordwatch/internal/platform/httpserver"
	"wordwatch/internal/platform/logger"
	platformMetrics "wordwatch/internal/platform/metrics"
	platformMongo "wordwatch/internal/platform/mongo"
	platformRedis "wordwatch/internal/platform/redis"
	"wordwatch/internal/profile"
	"wordwatch/internal/profile/handler"
	profileMetrics "wordwatch/internal/profile/metrics"
	"wordwatch/internal/profile/service"
	serverstore "wordwatch/internal/profile/store/server"
	userstore "wordwatch/internal/profile/store/user"
	"wordwatch/internal/ratelimit"
)

// main wires the dependency graph and owns the process lifecycle. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, err := platformMongo.New(ctx, cfg.Mongo)
	if err != nil {
		log.Error("mongo connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Close(closeCtx)
	}()

	db := mongoClient.Database()
	if err := serverstore.EnsureIndexes(ctx, db); err != nil {
		log.Error("server profile indexes failed", "error", err)
		os.Exit(1)
	}
	if err := userstore.EnsureIndexes(ctx, db); err != nil {
		log.Error("user profile indexes failed", "error", err)
		os.Exit(1)
	}

	auditPublisher := audit.NewPublisher(audit.NewMongoStore(db), audit.WithAsyncBuffer(256))
	defer auditPublisher.Close()

	svc := profile.NewService(
		serverstore.NewMongo(db),
		userstore.NewMongo(db),
		service.WithLogger(log),
		service.WithMetrics(profileMetrics.New()),
		service.WithAuditPublisher(auditPublisher),
	)

	handlerOpts := []handler.Option{
		handler.WithMetrics(platformMetrics.New()),
		handler.WithRateLimit(rateLimiter(cfg, log).RateLimit),
	}
	if cfg.Server.AuthDisabled {
		log.Warn("authentication disabled")
	} else {
		jwtService := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, "wordwatch", "wordwatch-api")
		handlerOpts = append(handlerOpts, handler.WithAuth(jwttoken.NewJWTServiceAdapter(jwtService)))
	}

	router := chi.NewRouter()
	profile.NewHandler(svc, log, handlerOpts...).Register(router)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := mongoClient.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting wordwatch", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// rateLimiter prefers the shared Redis window when configured and falls back
// to a per-process one.
func rateLimiter(cfg config.Config, log *slog.Logger) *ratelimit.Middleware {
	var store ratelimit.CounterStore
	redisClient, err := platformRedis.New(cfg.Redis)
	switch {
	case err != nil:
		log.Warn("redis unavailable, using in-process rate limit windows", "error", err)
		store = ratelimit.NewMemoryStore()
	case redisClient == nil:
		store = ratelimit.NewMemoryStore()
	default:
		store = ratelimit.NewRedisStore(redisClient.Client)
	}

	limiter := ratelimit.New(store, cfg.RateLimit.Limit, cfg.RateLimit.Window)
	return ratelimit.NewMiddleware(limiter, log, ratelimit.WithDisabled(!cfg.RateLimit.Enabled))
}
