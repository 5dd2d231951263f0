package main

import (
	"context"
	"database/sql"
	"errors"
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

	cancelAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/cancel_appointment"
	checkAvailabilityHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/check_availability"
	checkMultipleDatesHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/check_multiple_dates"
	completeAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/complete_appointment"
	confirmAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/confirm_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/create_appointment"
	createExceptionHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/create_exception"
	createReparationOrderHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/create_reparation_order"
	createScheduleDayHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/create_schedule_day"
	deactivateAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/deactivate_appointment"
	deactivateScheduleDayHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/deactivate_schedule_day"
	deleteExceptionHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/delete_exception"
	getAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/get_available_slots"
	getBusyDatesHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/get_busy_dates"
	getMonthlyAvailabilityHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/get_monthly_availability"
	getOperatingHoursHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/get_operating_hours"
	getScheduleHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/get_schedule"
	getWorkshopAppointmentsHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/get_workshop_appointments"
	listExceptionsHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/list_exceptions"
	markNoShowHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/mark_no_show"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/reschedule_appointment"
	restoreAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/restore_appointment"
	restoreScheduleDayHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/restore_schedule_day"
	setScheduleHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/set_schedule"
	startAppointmentHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/start_appointment"
	updateScheduleDayHandler "github.com/m04kA/SMC-WorkshopScheduling/internal/api/handlers/update_schedule_day"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/api/middleware"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/config"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/domain"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/infra/cache/slots"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-WorkshopScheduling/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-WorkshopScheduling/internal/integrations/reparationorders"
	appointmentsService "github.com/m04kA/SMC-WorkshopScheduling/internal/service/appointments"
	availabilityService "github.com/m04kA/SMC-WorkshopScheduling/internal/service/availability"
	calendarService "github.com/m04kA/SMC-WorkshopScheduling/internal/service/calendar"
	schedulesService "github.com/m04kA/SMC-WorkshopScheduling/internal/service/schedules"
	createAppointmentUC "github.com/m04kA/SMC-WorkshopScheduling/internal/usecase/create_appointment"
	rescheduleAppointmentUC "github.com/m04kA/SMC-WorkshopScheduling/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-WorkshopScheduling/migrations"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/dbmetrics"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/logger"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/metrics"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/txmanager"
	"github.com/m04kA/SMC-WorkshopScheduling/pkg/types"
)

// slotCache общий интерфейс Redis и no-op кэша слотов
type slotCache interface {
	Get(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType) ([]types.TimeString, bool, error)
	Version(ctx context.Context, workshopID int64, date time.Time) (string, error)
	Set(ctx context.Context, workshopID int64, date time.Time, serviceType domain.ServiceType, version string, slots []types.TimeString) error
	InvalidateDate(ctx context.Context, workshopID int64, date time.Time) error
	InvalidateWorkshop(ctx context.Context, workshopID int64) error
}

// eventPublisher общий интерфейс RabbitMQ и no-op издателя
type eventPublisher interface {
	Publish(ctx context.Context, eventType string, appointment *domain.Appointment) error
	Close() error
}

func serve(configPath string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-WorkshopScheduling...")
	log.Info("Configuration loaded from %s", configPath)

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

	if cfg.Database.MigrateOnStart {
		migrator, err := migrations.NewMigrator(db, log)
		if err != nil {
			log.Fatal("Failed to init migrator: %v", err)
		}
		if err := migrator.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Без метрик обёртка только проксирует запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш слотов
	var cache slotCache = slots.NewNoopCache()
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("Redis unavailable at %s, slot cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cache = slots.NewRedisCache(redisClient, time.Duration(cfg.Scheduling.SlotCacheTTL)*time.Second, metricsCollector)
			log.Info("Slot cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Scheduling.SlotCacheTTL)
		}
	}

	// Публикация событий жизненного цикла записей
	var publisher eventPublisher = events.NewNoopPublisher(log)
	if cfg.RabbitMQ.Enabled {
		rabbit, err := events.NewRabbitMQPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, log, metricsCollector)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbit
		log.Info("Event publishing enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
	}
	defer publisher.Close()

	// Инициализируем интеграционных клиентов
	reparationClient := reparationorders.NewClient(
		cfg.ReparationService.URL,
		time.Duration(cfg.ReparationService.Timeout)*time.Second,
		reparationorders.BreakerSettings{
			MaxFailures:  cfg.ReparationService.MaxFailures,
			OpenInterval: time.Duration(cfg.ReparationService.OpenInterval) * time.Second,
		},
		log,
	)
	log.Info("Integration clients initialized (ReparationService=%s timeout=%ds)",
		cfg.ReparationService.URL, cfg.ReparationService.Timeout)

	// Инициализируем репозитории
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(scheduleRepository, appointmentRepository, cache, log)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		availabilitySvc,
		reparationClient,
		cache,
		publisher,
		log,
	)
	calendarSvc := calendarService.NewService(availabilitySvc, appointmentRepository, cfg.Scheduling.AggregationParallelism, log)
	schedulesSvc := schedulesService.NewService(scheduleRepository, txMgr, cache, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		txMgr,
		cache,
		publisher,
		metricsCollector,
		log,
	)
	rescheduleAppointmentUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilitySvc,
		cache,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	confirmAppointment := confirmAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	startAppointment := startAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	markNoShow := markNoShowHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleAppointmentUseCase, log)
	deactivateAppointment := deactivateAppointmentHandler.NewHandler(appointmentsSvc, log)
	restoreAppointment := restoreAppointmentHandler.NewHandler(appointmentsSvc, log)
	createReparationOrder := createReparationOrderHandler.NewHandler(appointmentsSvc, log)

	getWorkshopAppointments := getWorkshopAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(availabilitySvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(appointmentsSvc, log)
	getOperatingHours := getOperatingHoursHandler.NewHandler(availabilitySvc, log)
	getMonthlyAvailability := getMonthlyAvailabilityHandler.NewHandler(calendarSvc, log)
	checkMultipleDates := checkMultipleDatesHandler.NewHandler(calendarSvc, log)
	getBusyDates := getBusyDatesHandler.NewHandler(calendarSvc, log)

	getSchedule := getScheduleHandler.NewHandler(schedulesSvc, log)
	setSchedule := setScheduleHandler.NewHandler(schedulesSvc, log)
	createScheduleDay := createScheduleDayHandler.NewHandler(schedulesSvc, log)
	updateScheduleDay := updateScheduleDayHandler.NewHandler(schedulesSvc, log)
	deactivateScheduleDay := deactivateScheduleDayHandler.NewHandler(schedulesSvc, log)
	restoreScheduleDay := restoreScheduleDayHandler.NewHandler(schedulesSvc, log)
	listExceptions := listExceptionsHandler.NewHandler(schedulesSvc, log)
	createException := createExceptionHandler.NewHandler(schedulesSvc, log)
	deleteException := deleteExceptionHandler.NewHandler(schedulesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
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

	// --- Доступность ---
	api.HandleFunc("/workshops/{workshopId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/workshops/{workshopId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/workshops/{workshopId}/availability/monthly", getMonthlyAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/workshops/{workshopId}/availability/dates", checkMultipleDates.Handle).Methods(http.MethodPost)
	api.HandleFunc("/workshops/{workshopId}/busy-dates", getBusyDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/workshops/{workshopId}/hours", getOperatingHours.Handle).Methods(http.MethodGet)

	// --- Расписание (чтение) ---
	api.HandleFunc("/workshops/{workshopId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/workshops/{workshopId}/schedule/exceptions", listExceptions.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}", deactivateAppointment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/appointments/{appointmentId}/confirm", confirmAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/start", startAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/restore", restoreAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reparation-order", createReparationOrder.Handle).Methods(http.MethodPost)

	// --- Управление мастерской ---
	protected.HandleFunc("/workshops/{workshopId}/appointments", getWorkshopAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/workshops/{workshopId}/schedule", setSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/workshops/{workshopId}/schedule/days", createScheduleDay.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/workshops/{workshopId}/schedule/exceptions", createException.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/workshops/{workshopId}/schedule/exceptions/{exceptionId}", deleteException.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/workshops/{workshopId}/schedule/{day}", updateScheduleDay.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/workshops/{workshopId}/schedule/{day}", deactivateScheduleDay.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/workshops/{workshopId}/schedule/{day}/restore", restoreScheduleDay.Handle).Methods(http.MethodPatch)

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	return nil
}
