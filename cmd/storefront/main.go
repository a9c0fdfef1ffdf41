package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/adapters"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/events"
	apphttp "storefront/internal/http"
	"storefront/internal/http/router"
	"storefront/internal/metrics"
	"storefront/internal/notification"
	"storefront/platform/config"
	"storefront/platform/db"
	"storefront/platform/kv"
	"storefront/platform/logger"
	"storefront/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting storefront", "env", cfg.Env, "addr", cfg.HTTPAddr, "cartStore", cfg.GetCartStore())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	sink, health, closeSink, err := openSink(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open cart persistence sink", "error", err, "store", cfg.GetCartStore())
		panic("failed to open cart persistence sink: " + err.Error())
	}
	defer closeSink()

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()
	appMetrics := metrics.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	notificationModule := notification.New(cfg, appMetrics, log)
	notificationModule.RegisterHandlers(eventBus)
	defer notificationModule.Close()

	catalogModule := catalog.NewModule(cfg, val, log)

	// Wire product reader: cart → catalog
	productReader := adapters.NewCatalogProductReader(catalogModule.Fetcher())
	cartModule := cart.NewModule(ctx, cfg, sink, productReader, eventBus, appMetrics, val, log)

	// Wire cart reader: checkout → cart
	cartReader := adapters.NewCheckoutCartReader(cartModule.Service())
	checkoutModule, err := checkout.NewModule(cartReader, eventBus, val, appMetrics, log)
	if err != nil {
		log.Error("failed to initialize checkout module", "error", err)
		panic("failed to initialize checkout module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		Health:    health,
		EventBus:  eventBus,
		Validator: val,
		Metrics:   appMetrics,
		Modules: []apphttp.Module{
			catalogModule,
			cartModule,
			checkoutModule,
			notificationModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// openSink selects the cart persistence sink. The returned health checker is
// nil for the in-memory sink.
func openSink(ctx context.Context, cfg *config.Config, log *logger.Logger) (kv.Store, apphttp.HealthChecker, func(), error) {
	switch cfg.GetCartStore() {
	case config.CartStoreRedis:
		var store *kv.RedisStore
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			s, err := kv.OpenRedis(ctx, cfg.GetRedisURL(), cfg.GetCartTTL())
			if err != nil {
				return err
			}
			store = s
			return nil
		}); err != nil {
			return nil, nil, nil, err
		}
		log.Info("redis connection established")
		return store, store, func() { _ = store.Close() }, nil

	case config.CartStorePostgres:
		var pool *pgxpool.Pool
		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			return nil, nil, nil, err
		}
		log.Info("database connection established")

		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, pool)
		}); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		log.Info("database migrations complete")
		return kv.NewPostgresStore(pool), pool, pool.Close, nil

	case config.CartStoreMemory, "":
		log.Warn("cart persistence is in-memory; the cart will not survive a restart")
		return kv.NewMemoryStore(), nil, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported cart store %q", cfg.GetCartStore())
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
