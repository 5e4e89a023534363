package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"deenha/internal/app"
	"deenha/internal/config"
	"deenha/internal/database"
	"deenha/internal/repositories"
	"deenha/internal/services"
	"deenha/pkg/imagestore"
	"deenha/pkg/logger"
	"deenha/pkg/rabbitmq"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

func main() {
	cfg := config.Load()
	log := logger.Must(cfg.AppEnv)
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storefront, cleanup, err := buildApp(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to build storefront", zap.Error(err))
	}
	defer cleanup()

	// A failed first load leaves the storefront up; admins can retry
	// through /api/v1/catalog/refresh.
	if err := storefront.Catalog.Refresh(ctx); err != nil {
		log.Error("Initial catalog load failed", zap.Error(err))
	}

	go sweepSessions(ctx, storefront, cfg.SessionIdleTimeout, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting server", zap.String("addr", cfg.AppPort))
		if err := storefront.Fiber.Listen(cfg.AppPort); err != nil {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down server...")
	cancel()
	if err := storefront.Fiber.Shutdown(); err != nil {
		log.Error("Error during Fiber shutdown", zap.Error(err))
	}
	log.Info("Server gracefully stopped")
}

// buildApp opens every external resource named by cfg and wires the
// storefront on top. Optional resources that cannot be reached are
// replaced by their in-process fallbacks. The returned func releases
// what was opened.
func buildApp(ctx context.Context, cfg config.Config, log *zap.Logger) (*app.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	db, err := database.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, log)
	if err != nil {
		return nil, cleanup, err
	}
	if sqlDB, err := db.DB(); err == nil {
		closers = append(closers, func() { sqlDB.Close() })
	}
	if err := app.Migrate(db); err != nil {
		cleanup()
		return nil, func() {}, err
	}

	kv, closeKV := openKVStore(ctx, cfg, log)
	closers = append(closers, closeKV)

	var publisher services.HandoffPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log.Named("rabbitmq"))
		if err != nil {
			log.Warn("RabbitMQ unavailable, checkout handoff events disabled", zap.Error(err))
		} else {
			publisher = mqClient
			closers = append(closers, func() {
				if err := mqClient.Close(); err != nil {
					log.Error("Error closing RabbitMQ client", zap.Error(err))
				}
			})
		}
	}

	images, err := openImageStore(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	storefront := app.New(app.Options{
		Config:     cfg,
		DB:         db,
		KV:         kv,
		Publisher:  publisher,
		Images:     images,
		Logger:     log,
		RequestLog: true,
	})
	return storefront, cleanup, nil
}

func openKVStore(ctx context.Context, cfg config.Config, log *zap.Logger) (repositories.KVStore, func()) {
	if cfg.RedisAddr == "" {
		log.Info("Using in-memory key-value store")
		return repositories.NewInMemoryKVStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory key-value store", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		client.Close()
		return repositories.NewInMemoryKVStore(), func() {}
	}

	log.Info("Connected to Redis", zap.String("addr", cfg.RedisAddr))
	return repositories.NewRedisKVStore(client), func() { client.Close() }
}

func openImageStore(ctx context.Context, cfg config.Config) (imagestore.Store, error) {
	switch cfg.ImageStore {
	case "local":
		return imagestore.NewLocalStore(cfg.ImageDir, cfg.ImageURLBase)
	case "s3":
		s3cfg := imagestore.S3Config{
			Region:    cfg.AWSRegion,
			Bucket:    cfg.AWSS3Bucket,
			Prefix:    cfg.AWSS3Prefix,
			Endpoint:  cfg.AWSS3Endpoint,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		}
		client, err := imagestore.NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		return imagestore.NewS3Store(client, s3cfg), nil
	default:
		return nil, fmt.Errorf("unsupported image store %q", cfg.ImageStore)
	}
}

func sweepSessions(ctx context.Context, storefront *app.App, maxIdle time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := storefront.Sessions.Sweep(maxIdle); n > 0 {
				log.Debug("Swept idle sessions", zap.Int("count", n))
			}
		}
	}
}
