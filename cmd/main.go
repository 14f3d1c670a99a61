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

	chatHandler "github.com/m04kA/PetSpa-BookingService/internal/api/handlers/chat"
	createAppointmentHandler "github.com/m04kA/PetSpa-BookingService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/PetSpa-BookingService/internal/api/handlers/get_appointment"
	getScheduleHandler "github.com/m04kA/PetSpa-BookingService/internal/api/handlers/get_schedule"
	getUserAppointmentsHandler "github.com/m04kA/PetSpa-BookingService/internal/api/handlers/get_user_appointments"
	listAppointmentsHandler "github.com/m04kA/PetSpa-BookingService/internal/api/handlers/list_appointments"
	updateAppointmentHandler "github.com/m04kA/PetSpa-BookingService/internal/api/handlers/update_appointment"
	updateStatusHandler "github.com/m04kA/PetSpa-BookingService/internal/api/handlers/update_status"
	"github.com/m04kA/PetSpa-BookingService/internal/api/middleware"
	"github.com/m04kA/PetSpa-BookingService/internal/config"
	"github.com/m04kA/PetSpa-BookingService/internal/domain"
	"github.com/m04kA/PetSpa-BookingService/internal/flow"
	appointmentRepo "github.com/m04kA/PetSpa-BookingService/internal/infra/storage/appointment"
	catalogServiceClient "github.com/m04kA/PetSpa-BookingService/internal/integrations/catalogservice"
	petServiceClient "github.com/m04kA/PetSpa-BookingService/internal/integrations/petservice"
	appointmentsService "github.com/m04kA/PetSpa-BookingService/internal/service/appointments"
	createAppointmentUC "github.com/m04kA/PetSpa-BookingService/internal/usecase/create_appointment"
	getScheduleUC "github.com/m04kA/PetSpa-BookingService/internal/usecase/get_schedule"
	updateAppointmentUC "github.com/m04kA/PetSpa-BookingService/internal/usecase/update_appointment"
	updateStatusUC "github.com/m04kA/PetSpa-BookingService/internal/usecase/update_status"
	"github.com/m04kA/PetSpa-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetSpa-BookingService/pkg/logger"
	"github.com/m04kA/PetSpa-BookingService/pkg/metrics"
	"github.com/m04kA/PetSpa-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/PetSpa-BookingService/pkg/txmanager"
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

	log.Info("Starting PetSpa-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopCh := make(chan struct{})

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

	// Календарь салона
	calendar, err := domain.NewCalendar(cfg.Calendar.Days, cfg.Calendar.OpenTime, cfg.Calendar.CloseTime)
	if err != nil {
		log.Fatal("Invalid calendar configuration: %v", err)
	}
	log.Info("Salon calendar: %d days window, %s - %s", cfg.Calendar.Days, cfg.Calendar.OpenTime, cfg.Calendar.CloseTime)

	// Инициализируем интеграционных клиентов
	petClient := petServiceClient.NewClient(
		cfg.PetService.URL,
		time.Duration(cfg.PetService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (PetService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.PetService.URL, cfg.PetService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозиторий и транзакционный менеджер (с метриками или без)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		appointmentRepository *appointmentRepo.Repository
		txMgr                 TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, log)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		petClient,
		catalogClient,
		txMgr,
		calendar,
		log,
	)
	getScheduleUseCase := getScheduleUC.NewUseCase(appointmentRepository, calendar, log)
	updateStatusUseCase := updateStatusUC.NewUseCase(appointmentRepository, log)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		catalogClient,
		txMgr,
		log,
	)

	// Движок диалогового бронирования
	flowSessions := flow.NewSessionManager(
		time.Duration(cfg.Flow.SessionTTLMinutes)*time.Minute,
		stopCh,
	)
	flowEngine := flow.NewEngine(flowSessions, petClient, catalogClient, createAppointmentUseCase, log)
	log.Info("Chat flow engine initialized (session TTL: %d minutes)", cfg.Flow.SessionTTLMinutes)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, false, log)
	getAdminSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, true, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	chat := chatHandler.NewHandler(flowEngine, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Публичная сетка занятости: только busy/free, без владельцев
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// --- Диалоговое бронирование ---
	protected.HandleFunc("/chat/sessions", chat.HandleStart).Methods(http.MethodPost)
	protected.HandleFunc("/chat/sessions/{sessionId}/messages", chat.HandleMessage).Methods(http.MethodPost)
	protected.HandleFunc("/chat/sessions/{sessionId}", chat.HandleAbandon).Methods(http.MethodDelete)

	// ============================================================
	// STAFF ROUTES (требуют роль admin или employee)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.Staff)

	// Админская сетка с именами питомцев и клиентами
	staff.HandleFunc("/admin/schedule", getAdminSchedule.Handle).Methods(http.MethodGet)

	// Список записей и сводка для kanban-доски
	staff.HandleFunc("/admin/appointments", listAppointments.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/admin/appointments/summary", listAppointments.HandleSummary).Methods(http.MethodGet)

	// Переходы статуса и пересмотр записи
	staff.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)
	staff.HandleFunc("/appointments/{appointmentId}", updateAppointment.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновые горутины: сбор метрик пула и зачистку сессий
	close(stopCh)

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
