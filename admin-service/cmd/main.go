package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beautyadmin/admin-service/internal/app/admin/backend"
	"beautyadmin/admin-service/internal/app/admin/config"
	"beautyadmin/admin-service/internal/app/admin/handler"
	"beautyadmin/admin-service/internal/app/admin/infrastructure"
	"beautyadmin/admin-service/internal/app/admin/infrastructure/cache"
	"beautyadmin/admin-service/internal/app/admin/infrastructure/messaging"
	"beautyadmin/admin-service/internal/app/admin/processor"
	"beautyadmin/admin-service/internal/app/admin/service"
	"beautyadmin/pkg/logger"
)

const serviceName = "admin-service"

func main() {
	// === ИНИЦИАЛИЗАЦИЯ КОНФИГУРАЦИИ ===
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// === ЛОГИРОВАНИЕ ===
	// JSON в stdout, при наличии адреса дополнительно в Logstash
	logger.Init(serviceName, cfg.Log.Level)
	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Log.LogstashAddr).Msg("Logstash unavailable, logging to stdout only")
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// === ИСТОЧНИК ДАННЫХ ===
	// memory | http | postgres, выбирается один раз при старте
	store, closeStore, err := backend.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Backend.Kind).Msg("Failed to initialize backend")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error().Err(err).Msg("Failed to close backend")
		}
	}()

	checks := map[string]handler.Checker{
		"backend": func(ctx context.Context) error {
			_, err := store.PaymentMethods.GetAll(ctx)
			return err
		},
	}

	// === ПОДКЛЮЧЕНИЕ К REDIS ===
	// Кеширует списки категорий и брендов
	var listCache infrastructure.Cache = infrastructure.NoopCache{}
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.Redis.Address()).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()
		listCache = redisClient
		checks["redis"] = redisClient.Ping
		logger.Info().Str("addr", cfg.Redis.Address()).Msg("Successfully connected to Redis")
	}

	// === ИНИЦИАЛИЗАЦИЯ KAFKA PRODUCER ===
	// События изменения сущностей уходят в cfg.Kafka.Topic
	var publisher infrastructure.MessagePublisher = infrastructure.NoopPublisher{}
	if cfg.Kafka.Enabled {
		kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaProducer.Close()
		publisher = kafkaProducer
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Msg("Successfully initialized Kafka producer")
	}

	// === ИНИЦИАЛИЗАЦИЯ БИЗНЕС-ЛОГИКИ ===
	catalogService := service.NewCatalogService(store, listCache, publisher, cfg.Redis.TTL)
	reviewService := service.NewReviewService(store, publisher)
	couponService := service.NewCouponService(store, publisher)
	paymentMethodService := service.NewPaymentMethodService(store, publisher)

	// === CRON: ДЕАКТИВАЦИЯ ИСТЁКШИХ КУПОНОВ ===
	scheduler := processor.NewCronScheduler(couponService)
	if err := scheduler.Start(ctx, cfg.CouponExpirySchedule); err != nil {
		logger.Fatal().Err(err).Str("schedule", cfg.CouponExpirySchedule).Msg("Failed to start cron scheduler")
	}
	defer scheduler.Stop()

	// === НАСТРОЙКА МАРШРУТОВ ===
	router := handler.SetupRoutes(
		handler.Handlers{
			Catalog:  handler.NewCatalogHandler(catalogService),
			Reviews:  handler.NewReviewHandler(reviewService),
			Commerce: handler.NewCommerceHandler(couponService, paymentMethodService),
			Health:   handler.NewHealthCheckHandler(checks),
		},
		handler.NewAuthMiddleware(cfg.Server.AuthToken),
		cfg.CORSAllowedOrigins,
	)
	if cfg.Server.AuthToken == "" {
		logger.Warn().Msg("ADMIN_AUTH_TOKEN is empty, /api is not protected")
	}

	// === НАСТРОЙКА HTTP СЕРВЕРА ===
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", cfg.Server.Address()).
			Str("backend", store.Name).
			Msg("Starting Admin Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// === GRACEFUL SHUTDOWN ===
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Admin Service...")
	cancel()

	// Даем серверу 30 секунд на завершение текущих запросов
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Admin Service stopped gracefully")
}
