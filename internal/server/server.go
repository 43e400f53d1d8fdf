// Package server boots the canteen backend: config, database, cache,
// storage, audit log, scheduler and the HTTP stack.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartbytes/canteen/app/routes"
	"github.com/smartbytes/canteen/app/services"
	"github.com/smartbytes/canteen/config"
	"github.com/smartbytes/canteen/pkg/cache"
	"github.com/smartbytes/canteen/pkg/database"
	"github.com/smartbytes/canteen/pkg/logger"
	"github.com/smartbytes/canteen/pkg/metrics"
	"github.com/smartbytes/canteen/pkg/middleware"
	"github.com/smartbytes/canteen/pkg/migration"
	"github.com/smartbytes/canteen/pkg/orm"
	"github.com/smartbytes/canteen/pkg/reqid"
	"github.com/smartbytes/canteen/pkg/router"
	"github.com/smartbytes/canteen/pkg/schedule"
	"github.com/smartbytes/canteen/pkg/storage"
)

// Start boots every subsystem and serves HTTP until SIGINT/SIGTERM.
func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}

	// The menu cache is an optimisation; run without it if Redis is down.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, serving without it", "error", err.Error())
	}
	orm.CacheStore = &ormCache{}

	if err := storage.Connect(); err != nil {
		return err
	}

	var audit *logger.MongoHandler
	if uri := config.AuditMongoURI(); uri != "" {
		h, err := logger.AttachMongo(uri, config.AuditMongoDB(), config.AuditCollection())
		if err != nil {
			logger.Warn("audit log unavailable", "error", err.Error())
		} else {
			audit = h
		}
	}

	registerListeners()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The available_today flag means "on sale today": close out the sale
	// day at midnight.
	catalog := services.NewCatalogService()
	schedule.Cron("0 0 * * *").Name("close-sale-day").WithoutOverlapping().Run(func() {
		if err := catalog.ResetAvailability(); err != nil {
			logger.Error("nightly availability reset failed", "error", err.Error())
		}
	})
	schedule.Start(ctx)

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           buildHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("canteen backend listening", "addr", srv.Addr, "env", config.AppEnv())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if audit != nil {
		_ = audit.Close()
	}
	return nil
}

// buildHandler assembles the middleware stack and the route table.
//
// Stack order (outermost first): metrics for accurate total latency,
// recovery before anything can panic the goroutine, request ID before the
// logger so every line is correlated, then CORS and the global limiter.
func buildHandler() http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	r.Get("/healthz", "health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})

	routes.RegisterAPI(r)

	// Serve locally stored food photos when the local disk is the default.
	if config.StorageDefault() == "local" {
		fs := http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot())))
		r.Mount("/storage", fs)
	}

	return r.Handler()
}

// ormCache bridges pkg/cache to the orm.Cacher interface so neither
// package imports the other.
type ormCache struct{}

func (c *ormCache) Get(key string, dest interface{}) bool {
	return cache.Get(key, dest)
}

func (c *ormCache) Set(key string, value interface{}, ttl time.Duration) error {
	return cache.Set(key, value, ttl)
}
