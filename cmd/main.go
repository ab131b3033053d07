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

	approveReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/approve_reservation"
	cancelReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/cancel_reservation"
	checkInHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_out"
	checkoutByActorHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/checkout_by_actor"
	createPoolHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_pool"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_availability"
	getPoolHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_pool"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_user_reservations"
	listOpenCheckinsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_open_checkins"
	listPoolsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_pools"
	previewApprovalHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/preview_approval"
	rejectReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/reject_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	checkinRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/checkin"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	resourceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/resource"
	accountServiceClient "github.com/m04kA/SMC-ReservationService/internal/integrations/accountservice"
	catalogService "github.com/m04kA/SMC-ReservationService/internal/service/catalog"
	checkinsService "github.com/m04kA/SMC-ReservationService/internal/service/checkins"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	approveReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/approve_reservation"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
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

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционного клиента
	accountClient := accountServiceClient.NewClient(
		cfg.AccountService.URL,
		time.Duration(cfg.AccountService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (AccountService=%s timeout=%ds)",
		cfg.AccountService.URL, cfg.AccountService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		resourceRepository    *resourceRepo.Repository
		checkinRepository     *checkinRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		resourceRepository = resourceRepo.NewRepository(wrappedDB)
		checkinRepository = checkinRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		resourceRepository = resourceRepo.NewRepository(db)
		checkinRepository = checkinRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Бизнес-политика площадки
	openTime, _ := types.NewTimeStringFromString(cfg.Booking.OpenTime)
	closeTime, _ := types.NewTimeStringFromString(cfg.Booking.CloseTime)
	policy := createReservationUC.BusinessHoursPolicy{
		Location: cfg.Location(),
		Open:     openTime,
		Close:    closeTime,
	}
	tolerance := time.Duration(cfg.Booking.CheckInToleranceMinutes) * time.Minute
	log.Info("Business policy: timezone=%s, hours=%s-%s, checkin_tolerance=%s",
		cfg.Booking.Timezone, cfg.Booking.OpenTime, cfg.Booking.CloseTime, tolerance)

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(reservationRepository, accountClient, txMgr, log)
	catalogSvc := catalogService.NewService(resourceRepository, accountClient, txMgr, log)
	checkinsSvc := checkinsService.NewService(
		checkinRepository,
		reservationRepository,
		accountClient,
		txMgr,
		&createReservationUC.RealTimeProvider{},
		tolerance,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		resourceRepository,
		accountClient,
		txMgr,
		policy,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		resourceRepository,
		txMgr,
		log,
	)
	approveReservationUseCase := approveReservationUC.NewUseCase(
		reservationRepository,
		accountClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	previewApproval := previewApprovalHandler.NewHandler(approveReservationUseCase, log)
	approveReservation := approveReservationHandler.NewHandler(approveReservationUseCase, log)
	rejectReservation := rejectReservationHandler.NewHandler(reservationsSvc, log)
	checkIn := checkInHandler.NewHandler(checkinsSvc, log)
	checkOut := checkOutHandler.NewHandler(checkinsSvc, log)
	checkoutByActor := checkoutByActorHandler.NewHandler(checkinsSvc, log)
	listOpenCheckins := listOpenCheckinsHandler.NewHandler(checkinsSvc, log)
	createPool := createPoolHandler.NewHandler(catalogSvc, log)
	getPool := getPoolHandler.NewHandler(catalogSvc, log)
	listPools := listPoolsHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог пулов ресурсов
	api.HandleFunc("/pools", listPools.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pools/{poolId}", getPool.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Доступность ---
	protected.HandleFunc("/pools/{poolId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// --- Подтверждение (для администраторов) ---
	protected.HandleFunc("/reservations/{reservationId}/approval-preview", previewApproval.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/approve", approveReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/reject", rejectReservation.Handle).Methods(http.MethodPost)

	// --- Присутствие ---
	protected.HandleFunc("/checkins", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/checkins/open", listOpenCheckins.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/checkins/{checkInId}/checkout", checkOut.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/checkout", checkoutByActor.Handle).Methods(http.MethodPost)

	// --- Управление каталогом (для администраторов) ---
	protected.HandleFunc("/pools", createPool.Handle).Methods(http.MethodPost)

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
