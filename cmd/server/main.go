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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Diaconix/event-manager/internal/di"
	"github.com/Diaconix/event-manager/internal/publisher"
	"github.com/Diaconix/event-manager/internal/repository"
	"github.com/Diaconix/event-manager/internal/service"
	"github.com/Diaconix/event-manager/internal/worker"
	"github.com/Diaconix/event-manager/migrations"
	"github.com/Diaconix/event-manager/pkg/config"
	"github.com/Diaconix/event-manager/pkg/database"
	"github.com/Diaconix/event-manager/pkg/logger"
	"github.com/Diaconix/event-manager/pkg/middleware"
	pkgredis "github.com/Diaconix/event-manager/pkg/redis"
	"github.com/Diaconix/event-manager/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       logLevel(cfg),
		ServiceName: cfg.App.Name,
		Development: cfg.App.Environment == "development",
		OutputPath:  "stdout",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Get()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tel, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	})
	if err != nil {
		log.Fatal("failed to init telemetry", zap.Error(err))
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = tel.Shutdown(shutdownCtx)
	}()

	db, err := database.NewPostgresDB(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		MaxRetries:      3,
		RetryDelay:      time.Second,
	})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migrations.Apply(ctx, db.Pool()); err != nil {
		log.Fatal("failed to apply migrations", zap.Error(err))
	}

	var pub publisher.Publisher
	if cfg.Kafka.Enabled {
		kafkaPub, err := publisher.NewKafkaPublisher(&publisher.KafkaConfig{
			Brokers:  cfg.Kafka.Brokers,
			Topic:    cfg.Kafka.Topic,
			ClientID: cfg.Kafka.ClientID,
		})
		if err != nil {
			log.Fatal("failed to create kafka publisher", zap.Error(err))
		}
		pub = kafkaPub
	} else {
		pub = publisher.NewMemoryPublisher()
	}
	defer pub.Close()

	container := di.NewContainer(&di.ContainerConfig{
		DB:          db,
		Publisher:   pub,
		TenantRepo:  repository.NewPostgresTenantRepository(db.Pool()),
		EventRepo:   repository.NewPostgresEventRepository(db.Pool()),
		TicketRepo:  repository.NewPostgresTicketRepository(db.Pool()),
		VerifierKey: []byte(cfg.Ticket.VerifierKey),
		Tenant:      &service.TenantServiceConfig{UniqueNames: cfg.Ticket.UniqueTenantNames},
		Ticket:      &service.TicketServiceConfig{DefaultRetention: cfg.Ticket.DefaultRetention},
		Worker: &worker.RetentionWorkerConfig{
			ScanInterval: cfg.Retention.ScanInterval,
			BatchSize:    cfg.Retention.BatchSize,
		},
	})

	container.RetentionWorker.Start(ctx)
	defer container.RetentionWorker.Stop()

	var redisClient *pkgredis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = pkgredis.NewClient(ctx, &pkgredis.Config{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			// Rate limiting degrades to per-instance when redis is absent
			log.Warn("redis unavailable, using local rate limiting", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	router := setupRouter(cfg, container, redisClient)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
}

func logLevel(cfg *config.Config) string {
	if cfg.App.Debug {
		return "debug"
	}
	return "info"
}

func setupRouter(cfg *config.Config, c *di.Container, redisClient *pkgredis.Client) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)

	v1 := router.Group("/api/v1")

	// Tenant registration is the only unauthenticated operation
	v1.POST("/tenants", c.TenantHandler.Create)

	authed := v1.Group("")
	authed.Use(middleware.JWTMiddleware(&middleware.JWTConfig{Secret: cfg.JWT.Secret}))
	{
		authed.GET("/tenant", c.TenantHandler.Resolve)

		authed.POST("/events", c.EventHandler.Create)
		authed.GET("/events", c.EventHandler.List)
		authed.GET("/events/:id", c.EventHandler.Get)
		authed.POST("/events/:id/close", c.EventHandler.CloseRegistration)
		authed.GET("/events/:id/stats", c.EventHandler.Stats)

		authed.POST("/events/:id/guests", c.RegistrationHandler.Register)
		authed.GET("/events/:id/guests", c.RegistrationHandler.ListGuests)
		authed.POST("/guests/:id/retention", c.RegistrationHandler.ScheduleDeletion)
		authed.POST("/retention/run", c.RetentionHandler.Run)

		rateLimitCfg := middleware.DefaultRateLimitConfig()
		if redisClient != nil {
			rateLimitCfg.UseRedis = true
			rateLimitCfg.RedisClient = redisClient
		}
		scan := authed.Group("")
		scan.Use(middleware.RateLimitMiddleware(rateLimitCfg))
		scan.POST("/checkin", c.CheckInHandler.CheckIn)
	}

	return router
}
