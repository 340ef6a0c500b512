// @title       ZenSend Gateway API
// @version     1.0
// @description Queues SMS for delivery through ZenSend and exposes account and verification operations.
// @BasePath    /
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

	"go.uber.org/zap"

	"github.com/oggyb/zensend-gateway/internal/cache/redis"
	"github.com/oggyb/zensend-gateway/internal/config"
	"github.com/oggyb/zensend-gateway/internal/db/gormdb"
	"github.com/oggyb/zensend-gateway/internal/handler"
	"github.com/oggyb/zensend-gateway/internal/logger"
	"github.com/oggyb/zensend-gateway/internal/queue/kafka"
	mesgRepo "github.com/oggyb/zensend-gateway/internal/repository/gorm/message"
	routes "github.com/oggyb/zensend-gateway/internal/router"
	"github.com/oggyb/zensend-gateway/internal/scheduler"
	"github.com/oggyb/zensend-gateway/internal/server"
	"github.com/oggyb/zensend-gateway/internal/service"
	"github.com/oggyb/zensend-gateway/internal/sms"
	"github.com/oggyb/zensend-gateway/pkg/zensend"
)

func main() {
	// Base context for the whole application lifetime.
	rootCtx := context.Background()

	// Load configuration from TOML file, environment and .env.
	cfg := config.New()

	log, err := logger.Init(logger.Config(cfg.Log), cfg.IsDevelopment())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.ZenSend.APIKey == "" {
		log.Fatal("ZENSEND_API_KEY is required")
	}

	// Init cache.
	cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(rootCtx); err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer cache.Close()

	// Init DB.
	db, err := gormdb.New(cfg.PostgresDSN(), log)
	if err != nil {
		log.Fatal("failed to connect db", zap.Error(err))
	}
	defer db.Close()

	// Init ZenSend client and make sure the API key is accepted.
	zs := zensend.New(cfg.ZenSend.APIKey,
		zensend.WithURL(cfg.ZenSend.URL),
		zensend.WithVerifyURL(cfg.ZenSend.VerifyURL),
		zensend.WithHTTPClient(zensend.NewHTTPClient(cfg.ZenSend.RequestTimeout, cfg.ZenSend.KeepAlive)),
		zensend.WithLogger(log.Named("zensend")),
	)

	balance, err := sms.Health(rootCtx, zs)
	if err != nil {
		log.Fatal("ZenSend health check failed", zap.Error(err))
	}
	log.Info("[Main] ZenSend reachable", zap.String("balanceInPence", balance.String()))

	// Init repository and services.
	msgRepository := mesgRepo.NewRepository(db)
	msgSvc := service.NewMessageService(
		msgRepository,
		zs,
		cache,
		cfg.Worker.BatchSize,
		cfg.Worker.MaxWorkers,
		cfg.Worker.PerMessageTimeout,
	)
	accountSvc := service.NewAccountService(zs)
	verificationSvc := service.NewVerificationService(zs, cache, cfg.Verification.SessionTTL)

	// Cron
	cron := scheduler.NewSchedulerService(
		msgSvc,
		cfg.Scheduler.Interval,
		cfg.Scheduler.BatchTimeout,
	)

	// HTTP dependencies & server wiring.
	deps := routes.AppDeps{
		Home:         handler.NewHomeHandler(),
		Message:      handler.NewMessageHandler(msgSvc, cron),
		Account:      handler.NewAccountHandler(accountSvc),
		Verification: handler.NewVerificationHandler(verificationSvc),
	}

	addr := fmt.Sprintf("%s:%s", cfg.API.Host, cfg.API.Port)
	srv := server.New(addr, deps, cfg.IsDevelopment(), log)

	// Create a context that is cancelled on SIGINT/SIGTERM (Ctrl+C, docker stop etc.).
	ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Outbox ingest runs only when brokers are configured.
	var consumer *kafka.Consumer
	consumerDone := make(chan struct{})
	if cfg.KafkaEnabled() {
		reader := kafka.NewReader(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID)
		consumer = kafka.NewConsumer(reader, msgSvc, log)

		go func() {
			defer close(consumerDone)
			if err := consumer.Run(ctx); err != nil {
				log.Error("[Main] Outbox consumer stopped", zap.Error(err))
			}
		}()
		log.Info("[Main] Outbox consumer started",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	} else {
		close(consumerDone)
	}

	if err := cron.Start(); err != nil {
		log.Fatal("Cron job service error", zap.Error(err))
	}
	log.Info("[Main] Scheduler started.")

	// Block until we receive a shutdown signal.
	<-ctx.Done()
	log.Info("[Main] Shutdown signal received, starting graceful shutdown...")

	// Give components some time to shut down cleanly.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Stop the scheduler (waits for in-flight batch to finish or timeout).
	if err := cron.Stop(); err != nil {
		log.Error("[Main] Scheduler could not be stopped", zap.Error(err))
	} else {
		log.Info("[Main] Scheduler stopped.")
	}

	<-consumerDone
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Warn("[Main] Outbox consumer close failed", zap.Error(err))
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("[Main] HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("[Main] HTTP server stopped.")
	}

	log.Info("[Main] Shutdown complete.")
}
