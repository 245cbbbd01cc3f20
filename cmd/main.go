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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	cancelAppointmentHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/cancel_appointment"
	createBlockedDateHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/create_blocked_date"
	createBookingHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/create_booking"
	deleteBlockedDateHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/delete_blocked_date"
	getAppointmentsHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/get_appointments"
	getAvailableSlotsHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/get_available_slots"
	getBusinessHoursHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/get_business_hours"
	healthHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/health"
	listBlockedDatesHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/list_blocked_dates"
	listServicesHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/list_services"
	updateBusinessHoursHandler "github.com/haderrenteria13/ronald-barber/internal/api/handlers/update_business_hours"
	"github.com/haderrenteria13/ronald-barber/internal/api/middleware"
	"github.com/haderrenteria13/ronald-barber/internal/availability"
	"github.com/haderrenteria13/ronald-barber/internal/config"
	appointmentRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/appointment"
	catalogRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/catalog"
	scheduleRepo "github.com/haderrenteria13/ronald-barber/internal/infra/storage/schedule"
	"github.com/haderrenteria13/ronald-barber/internal/integrations/whatsappbot"
	appointmentsService "github.com/haderrenteria13/ronald-barber/internal/service/appointments"
	catalogService "github.com/haderrenteria13/ronald-barber/internal/service/catalog"
	scheduleService "github.com/haderrenteria13/ronald-barber/internal/service/schedule"
	createBookingUC "github.com/haderrenteria13/ronald-barber/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/haderrenteria13/ronald-barber/internal/usecase/get_available_slots"
	"github.com/haderrenteria13/ronald-barber/pkg/dbmetrics"
	"github.com/haderrenteria13/ronald-barber/pkg/logger"
	"github.com/haderrenteria13/ronald-barber/pkg/metrics"
	"github.com/haderrenteria13/ronald-barber/pkg/txmanager"
)

const defaultConfigPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

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

	log.Info("Starting ronald-barber...")
	log.Info("Configuration loaded from %s (timezone=%s, max_days_in_advance=%d)",
		configPath, cfg.Shop.Timezone, cfg.Shop.MaxDaysInAdvance)

	location := cfg.Shop.Location()

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

	// Обертка над БД: с метриками пишет длительность запросов и статистику пула
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db)
	}

	// Подключаемся к Redis (используется только лимитером)
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(context.Background()).Err(); err != nil {
			// Лимитер работает в режиме fail-open, поэтому сервис стартует и без Redis
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
		}
	}

	// Инициализируем репозитории и менеджер транзакций
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Движок расчета свободных слотов
	engine := availability.New(availability.WithMaxDaysInAdvance(cfg.Shop.MaxDaysInAdvance))

	// Инициализируем интеграционных клиентов
	var notifier createBookingUC.Notifier
	if cfg.WhatsAppBot.Enabled {
		notifier = whatsappbot.NewClient(
			cfg.WhatsAppBot.URL,
			time.Duration(cfg.WhatsAppBot.Timeout)*time.Second,
			log,
		)
		log.Info("WhatsApp bot client initialized (url=%s, timeout=%ds)",
			cfg.WhatsAppBot.URL, cfg.WhatsAppBot.Timeout)
	} else {
		log.Info("WhatsApp confirmations disabled")
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, location, log)
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		engine,
		location,
		metricsCollector,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		scheduleRepository,
		appointmentRepository,
		txMgr,
		notifier,
		engine,
		location,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentsSvc, location, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(scheduleSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(scheduleSvc, log)
	listBlockedDates := listBlockedDatesHandler.NewHandler(scheduleSvc, location, log)
	createBlockedDate := createBlockedDateHandler.NewHandler(scheduleSvc, location, log)
	deleteBlockedDate := deleteBlockedDateHandler.NewHandler(scheduleSvc, location, log)

	checks := map[string]healthHandler.Check{"postgres": db.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	health := healthHandler.NewHandler(checks, log)

	// Лимитер бронирований: Redis, если он включен, иначе в памяти процесса
	var limiter middleware.Limiter
	if rdb != nil {
		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimit.Requests, cfg.RateLimit.Window(), "ratelimit")
	} else {
		limiter = middleware.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window())
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/readyz", health.Ready).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (клиенты барбершопа)
	// ============================================================

	// Каталог услуг
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)

	// Свободные слоты на день
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание записи (с ограничением частоты запросов)
	var bookingHandler http.Handler = http.HandlerFunc(createBooking.Handle)
	if cfg.RateLimit.Enabled {
		trustedProxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustedProxies)
		if err != nil {
			log.Fatal("Invalid rate_limit.trusted_proxies: %v", err)
		}
		bookingHandler = middleware.RateLimit(limiter, metricsCollector, middleware.RateLimitOptions{
			Route:          "bookings",
			RetryAfter:     cfg.RateLimit.WindowSeconds,
			TrustedProxies: trustedProxies,
		}, log)(bookingHandler)
		log.Info("Booking rate limit enabled (%d requests per %ds, redis=%t)",
			cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds, rdb != nil)
	}
	api.Handle("/bookings", bookingHandler).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header от gateway)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(log))

	// --- Записи ---
	admin.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Рабочие часы ---
	admin.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/business-hours", updateBusinessHours.Handle).Methods(http.MethodPut)

	// --- Нерабочие дни ---
	admin.HandleFunc("/blocked-dates", listBlockedDates.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates", createBlockedDate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates/{date}", deleteBlockedDate.Handle).Methods(http.MethodDelete)

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
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
