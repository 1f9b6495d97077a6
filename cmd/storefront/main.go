package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/babychic/storefront/internal/cache"
	"github.com/babychic/storefront/internal/cart"
	"github.com/babychic/storefront/internal/catalog"
	"github.com/babychic/storefront/internal/checkout"
	"github.com/babychic/storefront/internal/config"
	storehttp "github.com/babychic/storefront/internal/http"
	"github.com/babychic/storefront/internal/storage"
	"github.com/babychic/storefront/internal/upstream"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	blobs, err := storage.NewSQLiteStore(cfg.SQLitePath)
	if err != nil {
		logger.Fatal("failed to open local storage", zap.Error(err))
	}
	defer blobs.Close()

	if err := blobs.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("local storage ready", zap.String("path", cfg.SQLitePath))

	startCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	cartStore := cart.NewStore(startCtx, blobs, cfg.CartStorageKey, logger)
	cancel()
	logger.Info("cart rehydrated", zap.Int("item_count", cartStore.ItemCount()))

	var productCache cache.ProductCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		productCache = cache.NewRedisCache(client, cfg.CatalogTTL)
		logger.Info("using redis catalog cache", zap.String("addr", cfg.RedisAddr))
	} else {
		memCache := cache.NewMemoryCache(cfg.CatalogTTL)
		defer memCache.Close()
		productCache = memCache
	}

	backend := upstream.NewClient(cfg.BackendBaseURL, &http.Client{
		Timeout:   cfg.UpstreamTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})

	catalogSvc := catalog.NewService(backend, productCache, logger)
	checkoutSvc := checkout.NewService(cartStore, backend, cfg.Rules, cfg.WhatsAppNumber, logger)

	router := storehttp.NewRouter(
		storehttp.NewProductHandler(catalogSvc),
		storehttp.NewCartHandler(cartStore, catalogSvc, cfg.Rules),
		storehttp.NewCheckoutHandler(checkoutSvc),
		logger,
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
