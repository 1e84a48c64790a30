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

	"github.com/gin-gonic/gin"

	"books/cache"
	"books/config"
	"books/db"
	"books/docs"
	"books/service"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("loading config failed", err)
	}

	config.SetupLogger(cfg, os.Stdout)
	gin.SetMode(cfg.GinMode)

	library := db.NewMemoryLibraryManager(db.SeedBooks...)

	var opts []service.Option

	if cfg.Redis.URL != "" {
		redisClient, err := config.SetupRedis(cfg)
		if err != nil {
			fatal("connecting redis failed", err)
		}
		defer redisClient.Close()

		opts = append(opts, service.WithRequestCacher(cache.NewRedisRequestCacher(redisClient, cfg.Redis.MaxNumberCached)))
	}

	if cfg.Elastic.URL != "" {
		elasticClient, err := config.SetupElasticSearch(cfg)
		if err != nil {
			fatal("connecting elasticsearch failed", err)
		}
		defer elasticClient.Stop()

		indexer := db.NewElasticLibraryIndexer(elasticClient, cfg.Elastic.IndexName)
		if err := db.IndexAll(context.Background(), library, indexer); err != nil {
			fatal("mirroring seed books failed", err)
		}
		opts = append(opts, service.WithIndexer(indexer))
	}

	routes, err := service.SetupRoutes(service.NewLibraryService(library, opts...), docs.Info{
		Title:   cfg.Docs.Title,
		Version: cfg.Docs.Version,
		Host:    cfg.Addr(),
	})
	if err != nil {
		fatal("setting up routes failed", err)
	}

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: routes,
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.ListenAndServe()
	}()

	uri := "http://" + cfg.Addr()
	slog.Info("Server running on " + uri)
	slog.Info("Documentation available at: " + uri + service.DOCUMENTATION_PATH)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			fatal("server failed", err)
		}
	case sig := <-interrupt:
		slog.Info("shutting down", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.String("error", err.Error()))
	os.Exit(1)
}
