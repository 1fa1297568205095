package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createAvailabilityHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/create_availability"
	deleteAvailabilityHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/delete_availability"
	getAvailabilityHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/get_available_slots"
	updateAvailabilityHandler "github.com/m04kA/SMC-VisitScheduler/internal/api/handlers/update_availability"
	"github.com/m04kA/SMC-VisitScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-VisitScheduler/internal/config"
	availabilityRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-VisitScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-VisitScheduler/internal/integrations/travelservice"
	availabilityService "github.com/m04kA/SMC-VisitScheduler/internal/service/availability"
	slotsService "github.com/m04kA/SMC-VisitScheduler/internal/service/slots"
	getAvailableSlotsUC "github.com/m04kA/SMC-VisitScheduler/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/logger"
	"github.com/m04kA/SMC-VisitScheduler/pkg/metrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-VisitScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка нужна и без метрик: через неё работают транзакции в контексте
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем клиент сервиса времени в пути
	travelClient := travelservice.NewClient(
		cfg.TravelService.URL,
		cfg.TravelService.APIKey,
		time.Duration(cfg.TravelService.Timeout)*time.Second,
		cfg.TravelService.RequestsPerSecond,
		cfg.TravelService.Burst,
		log,
	)
	var estimator slotsService.TravelEstimator = travelClient
	log.Info("Travel service client initialized (url=%s, timeout=%ds, rps=%.1f)",
		cfg.TravelService.URL, cfg.TravelService.Timeout, cfg.TravelService.RequestsPerSecond)

	// Кэш времени в пути в Redis (если включен)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unreachable, travel times will not be cached: %v", err)
		} else {
			estimator = travelservice.NewCachedEstimator(
				travelClient,
				redisClient,
				time.Duration(cfg.Redis.TTLMinutes)*time.Minute,
				log,
			)
			log.Info("Travel time cache enabled (addr=%s, ttl=%dm)", cfg.Redis.Addr, cfg.Redis.TTLMinutes)
		}
		cancel()
	}

	// Инициализируем сервисы
	params := slotsService.Params{
		IntervalMinutes:        cfg.Scheduling.SlotIntervalMinutes,
		ArrivalMarginMinutes:   cfg.Scheduling.ArrivalMarginMinutes,
		DepartureMarginMinutes: cfg.Scheduling.DepartureMarginMinutes,
		Hours: slotsService.BusinessHours{
			Earliest: cfg.Scheduling.EarliestHour,
			Latest:   cfg.Scheduling.LatestHour,
		},
		TravelTimeout:        time.Duration(cfg.Scheduling.TravelTimeoutMs) * time.Millisecond,
		MaxConcurrentLookups: cfg.Scheduling.MaxConcurrentLookups,
	}

	var slotsRecorder slotsService.Recorder
	if metricsCollector != nil {
		slotsRecorder = metricsCollector
	}
	slotsSvc := slotsService.NewService(estimator, params, log, slotsRecorder)

	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		slotsSvc,
		cfg.Scheduling.DefaultBufferMinutes,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, location, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, location, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные начала визитов
	api.HandleFunc("/providers/{providerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Окна доступности провайдера на дату
	api.HandleFunc("/providers/{providerId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/providers/{providerId}/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/{availabilityId}", updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/availability/{availabilityId}", deleteAvailability.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
