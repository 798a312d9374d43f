package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"newswire/internal/cache"
	"newswire/internal/catalog"
	"newswire/internal/config"
	"newswire/internal/db"
	"newswire/internal/notify"
)

// deps holds the wired catalog together with everything that must be
// released on shutdown.
type deps struct {
	catalog *catalog.Service
	closers []func(ctx context.Context)
}

func (d *deps) close(ctx context.Context) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i](ctx)
	}
}

func buildDeps(ctx context.Context, cfg config.Config, logger *log.Logger) (*deps, error) {
	d := &deps{}

	mode, err := catalog.ParseCategoryMode(cfg.CategoryMode)
	if err != nil {
		return nil, err
	}

	store, err := openStore(ctx, cfg, logger, d)
	if err != nil {
		d.close(ctx)
		return nil, err
	}

	notifier, err := openNotifier(cfg, logger, d)
	if err != nil {
		d.close(ctx)
		return nil, err
	}

	client := catalog.NewRelayClient(cfg.RelayURL, cfg.APIEndpoint, &http.Client{Timeout: cfg.Timeout})

	d.catalog = catalog.NewService(client, store, notifier, catalog.Options{
		PageSize:     cfg.PageSize,
		MaxRefreshes: cfg.MaxRefreshes,
		Categories:   mode,
	}, logger)
	return d, nil
}

func openStore(ctx context.Context, cfg config.Config, logger *log.Logger, d *deps) (cache.Store, error) {
	opts := []cache.Option{
		cache.WithKey(cfg.CacheKey),
		cache.WithTTL(cfg.CacheTTL),
		cache.WithLogger(logger),
	}

	switch cfg.CacheBackend {
	case "mongo":
		client, err := db.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		d.closers = append(d.closers, func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				logger.Printf("mongo disconnect error: %v", err)
			}
		})
		logger.Println("cache: using mongo")
		return cache.NewMongo(client.Database(cfg.MongoDBName), opts...), nil

	case "redis":
		client, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		d.closers = append(d.closers, func(context.Context) {
			if err := client.Close(); err != nil {
				logger.Printf("redis close error: %v", err)
			}
		})
		logger.Println("cache: using redis")
		return cache.NewRedis(client, opts...), nil

	case "sqlite":
		s, err := cache.OpenSQLite(cfg.SQLitePath, opts...)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func(context.Context) {
			if err := s.Close(); err != nil {
				logger.Printf("sqlite close error: %v", err)
			}
		})
		logger.Printf("cache: using sqlite at %s", cfg.SQLitePath)
		return s, nil

	default:
		logger.Println("cache: using memory")
		return cache.NewMemory(opts...), nil
	}
}

func openNotifier(cfg config.Config, logger *log.Logger, d *deps) (notify.Notifier, error) {
	logNotifier := notify.NewLogNotifier(logger)
	if cfg.RabbitURI == "" {
		return logNotifier, nil
	}

	rabbit, err := notify.NewRabbitNotifier(cfg.RabbitURI, cfg.RabbitExchange, cfg.RabbitRouting, logger)
	if err != nil {
		return nil, fmt.Errorf("init rabbit notifier: %w", err)
	}
	d.closers = append(d.closers, func(context.Context) {
		if err := rabbit.Close(); err != nil {
			logger.Printf("rabbit close error: %v", err)
		}
	})
	return notify.Multi{logNotifier, rabbit}, nil
}

func shutdownContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}
