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

	cancelAppointmentHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/get_available_slots"
	getDateConfigHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/get_date_config"
	getUserAppointmentsHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/get_user_appointments"
	listOutreachLocationsHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/list_outreach_locations"
	rescheduleAppointmentHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/update_appointment_status"
	updateDateConfigHandler "github.com/velikhov/CSP-BookingService/internal/api/handlers/update_date_config"
	"github.com/velikhov/CSP-BookingService/internal/api/middleware"
	"github.com/velikhov/CSP-BookingService/internal/config"
	appointmentRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointment"
	appointmentConfigRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/appointmentconfig"
	outreachLocationRepo "github.com/velikhov/CSP-BookingService/internal/infra/storage/outreachlocation"
	identityServiceClient "github.com/velikhov/CSP-BookingService/internal/integrations/identityservice"
	notifyServiceClient "github.com/velikhov/CSP-BookingService/internal/integrations/notifyservice"
	appointmentsService "github.com/velikhov/CSP-BookingService/internal/service/appointments"
	configService "github.com/velikhov/CSP-BookingService/internal/service/config"
	locationsService "github.com/velikhov/CSP-BookingService/internal/service/locations"
	createAppointmentUC "github.com/velikhov/CSP-BookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/velikhov/CSP-BookingService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/velikhov/CSP-BookingService/internal/usecase/reschedule_appointment"
	"github.com/velikhov/CSP-BookingService/pkg/dbmetrics"
	"github.com/velikhov/CSP-BookingService/pkg/logger"
	"github.com/velikhov/CSP-BookingService/pkg/metrics"
	"github.com/velikhov/CSP-BookingService/pkg/simpletxmanager"
	"github.com/velikhov/CSP-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting CSP-BookingService...")

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

	// Инициализируем интеграционных клиентов
	identityClient := identityServiceClient.NewClient(
		cfg.IdentityService.URL,
		time.Duration(cfg.IdentityService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (IdentityService=%s, NotifyService=%s)",
		cfg.IdentityService.URL, cfg.NotifyService.URL)

	// Инициализируем репозитории и менеджер транзакций (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		configRepository      *appointmentConfigRepo.Repository
		locationRepository    *outreachLocationRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		configRepository = appointmentConfigRepo.NewRepository(wrappedDB)
		locationRepository = outreachLocationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		configRepository = appointmentConfigRepo.NewRepository(db)
		locationRepository = outreachLocationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		locationRepository,
		identityClient,
		notifyClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		identityClient,
		log,
	)
	locationSvc := locationsService.NewService(
		locationRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		configRepository,
		locationRepository,
		identityClient,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		configRepository,
		locationRepository,
		identityClient,
		notifyClient,
		txMgr,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		configRepository,
		locationRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getDateConfig := getDateConfigHandler.NewHandler(configSvc, log)
	updateDateConfig := updateDateConfigHandler.NewHandler(configSvc, log)
	listOutreachLocations := listOutreachLocationsHandler.NewHandler(locationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Справочник активных выездных площадок
	api.HandleFunc("/outreach-locations", listOutreachLocations.Handle).Methods(http.MethodGet)

	// Календарь и ёмкость на дату
	api.HandleFunc("/appointment-config", getDateConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Rate limiter (если включен)
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		protected.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Доступность слотов ---
	protected.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Записи на приём ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Перенос записи
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса (для сотрудников)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История записей пользователя
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Управление календарём (для сотрудников) ---
	protected.HandleFunc("/appointment-config", updateDateConfig.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
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

	// Останавливаем фоновые задачи
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
	}
	if rateLimiter != nil {
		rateLimiter.Stop()
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
