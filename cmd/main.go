package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	archiveAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/archive_appointments"
	bookingSessionsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/booking_sessions"
	cancelAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/cancel_appointment"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	exportCalendarHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/export_calendar"
	getAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getCatalogHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_catalog"
	getCategoriesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_categories"
	getClientsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_clients"
	getHistoryHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_history"
	getZoneOptionsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_zone_options"
	listAppointmentsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_appointments"
	quoteHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/quote"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/reschedule_appointment"
	updateAppointmentHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_appointment_status"
	updateCatalogHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_catalog"
	updateClientsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_clients"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/app"
	"github.com/m04kA/SMC-SalonBooking/internal/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/calendar"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/client"
	historyRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/history"
	appointmentsService "github.com/m04kA/SMC-SalonBooking/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	clientsService "github.com/m04kA/SMC-SalonBooking/internal/service/clients"
	archiveAppointmentsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/archive_appointments"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/migrations"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
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

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from config.toml")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := app.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	if cfg.Database.MigrateOnStart {
		migrator, err := app.NewMigrator(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(ctx); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка с метриками запросов; без метрик работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	clientRepository := clientRepo.NewRepository(wrappedDB)
	historyRepository := historyRepo.NewRepository(wrappedDB)

	settings := cfg.SlotSettings()
	log.Info("Slot settings: step=%d min, buffer=%d min, revalidate=%t",
		settings.StepMinutes, settings.BufferMinutes, cfg.Booking.RevalidateOnCommit)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		catalogRepository,
		settings,
		metricsCollector,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		appointmentRepository,
		clientRepository,
		catalogRepository,
		txMgr,
		settings,
		cfg.Booking.RevalidateOnCommit,
		metricsCollector,
		log,
	)
	archiveAppointmentsUseCase := archiveAppointmentsUC.NewUseCase(
		appointmentRepository,
		historyRepository,
		txMgr,
		log,
	)

	// Инициализируем сервисы
	encoder := calendar.NewEncoder(time.Now)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		clientRepository,
		historyRepository,
		encoder,
		cfg.Booking.AgendaDays,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, txMgr, log)
	clientsSvc := clientsService.NewService(clientRepository, txMgr, log)

	// Мастер записи: сессии в памяти с фоновой очисткой
	sessions := booking.NewStore(cfg.Sessions.SessionTTL())
	go sessions.RunPurger(ctx, cfg.Sessions.PurgeInterval(), log)

	flow := booking.NewFlow(
		sessions,
		booking.NewCatalogQuoter(catalogSvc),
		booking.NewSlotsUseCase(getAvailableSlotsUseCase),
		booking.NewBookingUseCase(createBookingUseCase),
		&appointmentsService.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getCategories := getCategoriesHandler.NewHandler(catalogSvc, log)
	getZoneOptions := getZoneOptionsHandler.NewHandler(catalogSvc, log)
	quote := quoteHandler.NewHandler(catalogSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	bookingSessions := bookingSessionsHandler.NewHandler(flow, log)

	listAppointments := listAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointment := updateAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(appointmentsSvc, log)
	archiveAppointments := archiveAppointmentsHandler.NewHandler(archiveAppointmentsUseCase, log)
	getHistory := getHistoryHandler.NewHandler(appointmentsSvc, log)
	exportCalendar := exportCalendarHandler.NewHandler(appointmentsSvc, log)
	getCatalog := getCatalogHandler.NewHandler(catalogSvc, log)
	updateCatalog := updateCatalogHandler.NewHandler(catalogSvc, log)
	getClients := getClientsHandler.NewHandler(clientsSvc, log)
	updateClients := updateClientsHandler.NewHandler(clientsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// --- Каталог ---
	api.HandleFunc("/catalog/categories", getCategories.Handle).Methods(http.MethodGet)
	api.HandleFunc("/catalog/options", getZoneOptions.Handle).Methods(http.MethodGet)
	api.HandleFunc("/quote", quote.Handle).Methods(http.MethodPost)

	// --- Запись ---
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments", createBooking.Handle).Methods(http.MethodPost)

	// --- Мастер записи ---
	api.HandleFunc("/booking/sessions", bookingSessions.Create).Methods(http.MethodPost)
	api.HandleFunc("/booking/sessions/{id}", bookingSessions.Get).Methods(http.MethodGet)
	api.HandleFunc("/booking/sessions/{id}/events", bookingSessions.Apply).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (HTTP Basic)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(middleware.AdminCredentials{
		Username:     cfg.Admin.Username,
		Password:     cfg.Admin.Password,
		PasswordHash: cfg.Admin.PasswordHash,
	}, log))

	// --- Агенда ---
	admin.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)
	// archive регистрируется раньше {id}
	admin.HandleFunc("/appointments/archive", archiveAppointments.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}", updateAppointment.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/appointments/{id}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/appointments/{id}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/history", getHistory.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/calendar.ics", exportCalendar.Handle).Methods(http.MethodGet)

	// --- Справочники ---
	admin.HandleFunc("/catalog", getCatalog.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/catalog", updateCatalog.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/clients", getClients.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/clients", updateClients.Handle).Methods(http.MethodPut)

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
	<-ctx.Done()

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

	log.Info("Server stopped gracefully (%d wizard sessions dropped)", sessions.Len())
}
