package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"

	"github.com/cinevault/cinevault/pkg/api"
	"github.com/cinevault/cinevault/pkg/auth"
	"github.com/cinevault/cinevault/pkg/config"
	"github.com/cinevault/cinevault/pkg/mail"
	"github.com/cinevault/cinevault/pkg/middleware"
	"github.com/cinevault/cinevault/pkg/movies"
	"github.com/cinevault/cinevault/pkg/observability"
	"github.com/cinevault/cinevault/pkg/reminder"
	"github.com/cinevault/cinevault/pkg/storage/postgres"
	"github.com/cinevault/cinevault/pkg/storage/s3"
	"github.com/cinevault/cinevault/pkg/uploads"
	"github.com/cinevault/cinevault/pkg/validation"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := observability.NewLogger(observability.ParseLogLevel(cfg.LogLevel), os.Stdout)
	metrics := observability.NewMetrics(prometheus.NewRegistry())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	store, err := postgres.NewStore(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("database ready")

	// Token codec; both secrets are mandatory
	codec, err := auth.NewCodec(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token codec: %v", err)
	}

	// Email
	mailer := mail.NewMailer(cfg.SMTP, metrics)
	notifier := mail.NewNotifier(mailer, store, metrics)

	// Services
	authService := auth.NewService(store, store, codec, notifier)
	movieService := movies.NewService(store, notifier)

	validator, err := validation.New()
	if err != nil {
		log.Fatalf("Failed to compile request schemas: %v", err)
	}

	// Object storage is optional; without a bucket the upload endpoint is
	// simply not registered.
	var uploadService api.UploadService
	if cfg.S3.Bucket != "" {
		s3Client, err := s3.NewClient(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize object storage: %v", err)
		}
		uploadService = uploads.NewService(s3Client, logger, metrics)
		logger.WithField("bucket", cfg.S3.Bucket).Info("object storage ready")
	} else {
		logger.Warn("no S3 bucket configured, image upload disabled")
	}

	// Optional redis-backed rate limiting
	var rateLimiter *middleware.RateLimiter
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		rateLimiter = middleware.NewRateLimiter(redisClient, cfg.Redis, logger)
		logger.WithField("addr", cfg.Redis.Addr).Info("rate limiting enabled")
	}

	// Release reminders
	scheduler := reminder.NewScheduler(store, store, mailer, cfg.Reminder.Schedule, metrics)

	server := api.NewServer(api.Deps{
		Auth:        authService,
		Movies:      movieService,
		Uploads:     uploadService,
		Mailer:      mailer,
		Sweeper:     scheduler,
		Welcome:     notifier,
		Validator:   validator,
		AuthMW:      middleware.NewAuthMiddleware(codec),
		RateLimiter: rateLimiter,
		Metrics:     metrics,
		Health:      http.HandlerFunc(observability.NewHealthChecker(store.DB(), redisClient).Handler),
		Logger:      logger,
	})

	httpServer := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      server,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.WithField("addr", httpServer.Addr).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if cfg.Reminder.Enabled {
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start reminder scheduler: %v", err)
		}
	}

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down")

		if cfg.Reminder.Enabled {
			scheduler.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	logger.Info("server stopped")
}
