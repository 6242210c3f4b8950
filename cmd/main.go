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

	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getBookingPolicyHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_booking_policy"
	getClientAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_client_appointments"
	getProfessionalAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_professional_appointments"
	listBookingPoliciesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/list_booking_policies"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reschedule_appointment"
	transitionAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/transition_appointment"
	updateBookingPolicyHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_booking_policy"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/ratelimit"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	blockRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/block"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	configRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/config"
	guestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/guest"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	configService "github.com/m04kA/SMC-AppointmentService/internal/service/config"
	identityService "github.com/m04kA/SMC-AppointmentService/internal/service/identity"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// nil коллектор безопасен: все Observe* методы его проверяют
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	// Ограничитель гостевых бронирований: Redis, при его недоступности память процесса
	window := time.Duration(cfg.Booking.GuestRateWindowSeconds) * time.Second
	var limiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(cfg.Booking.GuestRateLimit, window)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		limiter = ratelimit.NewFallbackLimiter(
			ratelimit.NewRedisLimiter(rdb, cfg.Booking.GuestRateLimit, window, ratelimit.DefaultPrefix),
			limiter,
			log,
		)
		log.Info("Guest rate limiter uses Redis at %s", cfg.Redis.Addr)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	blockRepository := blockRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	guestRepository := guestRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxRetries(cfg.Booking.SerializableRetries),
		txmanager.WithRetryObserver(metricsCollector),
	)

	// Инициализируем сервисы
	configSvc := configService.NewService(
		configRepository,
		catalogRepository,
		txMgr,
		log,
	)
	identitySvc := identityService.NewService(limiter, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		guestRepository,
		catalogRepository,
		configSvc,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogRepository,
		appointmentRepository,
		blockRepository,
		configSvc,
		metricsCollector,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		blockRepository,
		guestRepository,
		catalogRepository,
		configSvc,
		identitySvc,
		txMgr,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		blockRepository,
		catalogRepository,
		configSvc,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	transitionAppointment := transitionAppointmentHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProfessionalAppointments := getProfessionalAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getBookingPolicy := getBookingPolicyHandler.NewHandler(configSvc, log)
	listBookingPolicies := listBookingPoliciesHandler.NewHandler(configSvc, log)
	updateBookingPolicy := updateBookingPolicyHandler.NewHandler(configSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.Metrics(metricsCollector))

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix. Auth пропускает анонимные запросы, обработчики сами требуют актора
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Доступность и политика (публичные) ---
	api.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/booking-policy", getBookingPolicy.Handle).Methods(http.MethodGet)

	// --- Бронирование (клиент или гость) ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// --- Записи (требуют X-User-ID) ---
	api.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{appointmentId}/transition", transitionAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/clients/me/appointments", getClientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление компанией ---
	api.HandleFunc("/businesses/{businessId}/professionals/{professionalId}/appointments",
		getProfessionalAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/booking-policies", listBookingPolicies.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/booking-policy", updateBookingPolicy.Handle).Methods(http.MethodPut)

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
