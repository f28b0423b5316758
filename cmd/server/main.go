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

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"selfservice/internal/platform/config"
	"selfservice/internal/platform/httpserver"
	"selfservice/internal/platform/logger"
	"selfservice/internal/platform/metrics"
	"selfservice/internal/platform/ratelimit"
	"selfservice/internal/platform/redis"
	"selfservice/internal/platform/session"
	"selfservice/internal/services"
	servicemetrics "selfservice/internal/services/metrics"
	"selfservice/internal/services/service"
	"selfservice/internal/services/store/registry"
	httptransport "selfservice/internal/transport/http"
	auditpublisher "selfservice/pkg/platform/audit/publisher"
	auditmemory "selfservice/pkg/platform/audit/store/memory"
)

// main wires the dependencies, serves the pages and shuts down gracefully on
// SIGINT or SIGTERM.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.IsProduction())

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.UsesDefaultSigningKey() {
		if cfg.IsProduction() {
			return errors.New("SESSION_SIGNING_KEY must be set in production")
		}
		log.Warn("using development session signing key")
	}

	registries, pinger, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	auditPublisher := auditpublisher.NewPublisher(auditmemory.NewInMemoryStore(),
		auditpublisher.WithAsyncBuffer(256),
		auditpublisher.WithLogger(log),
	)
	defer auditPublisher.Close()

	sessions := session.NewManager(cfg.Session.SigningKey, cfg.Session.TTL,
		session.WithLogger(log),
		session.WithSecureCookie(cfg.Session.CookieSecure),
	)

	svc := services.NewService(registries,
		service.WithLogger(log),
		service.WithAuditPublisher(auditPublisher),
		service.WithMetrics(servicemetrics.New(prometheus.DefaultRegisterer)),
	)
	pages, err := services.NewHandler(svc, log, services.WithSessionEnder(sessions))
	if err != nil {
		return err
	}

	routerCfg := httptransport.RouterConfig{
		Logger:   log,
		Metrics:  metrics.New(prometheus.DefaultRegisterer),
		Gatherer: prometheus.DefaultGatherer,
		Sessions: sessions.Middleware,
		Store:    pinger,
		Pages:    pages,
	}
	var window *ratelimit.Window
	if cfg.RateLimit.Disabled {
		log.Info("rate limiting disabled")
	} else {
		window = ratelimit.NewWindow(cfg.RateLimit.Limit, cfg.RateLimit.Window)
		routerCfg.Limiter = ratelimit.New(window, log).Limit
	}
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(routerCfg), log)

	g, gctx := errgroup.WithContext(ctx)
	if window != nil {
		g.Go(func() error {
			sweepRateLimits(gctx, window, cfg.RateLimit.Window, log)
			return nil
		})
	}
	if sweeper, ok := registries.(expiredRegistrySweeper); ok && cfg.Session.TTL > 0 {
		g.Go(func() error {
			sweepRegistries(gctx, sweeper, min(cfg.Session.TTL, time.Minute), log)
			return nil
		})
	}
	g.Go(func() error {
		log.Info("starting selfservice", "addr", cfg.Addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// sweepRateLimits drops idle sessions from the limiter until ctx is done.
func sweepRateLimits(ctx context.Context, window *ratelimit.Window, every time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := window.Sweep(); removed > 0 {
				log.Debug("swept idle rate limit buckets", "removed", removed)
			}
		}
	}
}

// expiredRegistrySweeper is implemented by stores that do not expire
// registries on their own.
type expiredRegistrySweeper interface {
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

// sweepRegistries evicts registries of expired sessions until ctx is done.
func sweepRegistries(ctx context.Context, sweeper expiredRegistrySweeper, every time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := sweeper.DeleteExpired(ctx, now)
			if err != nil {
				log.Warn("failed to sweep expired registries", "error", err)
				continue
			}
			if removed > 0 {
				log.Debug("swept expired registries", "removed", removed)
			}
		}
	}
}

// buildStore picks Redis when REDIS_URL is set and process memory otherwise.
func buildStore(ctx context.Context, cfg config.Server, log *slog.Logger) (service.RegistryStore, httptransport.Pinger, func(), error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, nil, err
	}
	if client == nil {
		log.Info("storing registries in memory")
		return registry.NewInMemory(cfg.Session.TTL), nil, func() {}, nil
	}
	log.Info("storing registries in redis", "session_ttl", cfg.Session.TTL.String())
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}
	return registry.NewRedis(client.Client, cfg.Session.TTL), client, closeFn, nil
}
