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
	"github.com/rs/cors"

	canPayHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/can_pay"
	cancelBookingHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/cancel_booking"
	checkEmployeeSwapHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/check_employee_swap"
	createBookingHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/create_booking"
	createWorkWindowHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/create_work_window"
	getActivityBookingsHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/get_activity_bookings"
	getAvailableDatesHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/get_booking"
	getMyBookingsHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/get_my_bookings"
	getSwapOptionsHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/get_swap_options"
	getWorkWindowsHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/get_work_windows"
	reassignEmployeeHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/reassign_employee"
	swapEmployeesHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/swap_employees"
	updateBookingStatusHandler "github.com/m04kA/SMC-ActivityBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-ActivityBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ActivityBookingService/internal/config"
	"github.com/m04kA/SMC-ActivityBookingService/internal/domain"
	activityRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/user"
	workWindowRepo "github.com/m04kA/SMC-ActivityBookingService/internal/infra/storage/workwindow"
	"github.com/m04kA/SMC-ActivityBookingService/internal/integrations/eventbus"
	"github.com/m04kA/SMC-ActivityBookingService/internal/integrations/notificationservice"
	bookingsService "github.com/m04kA/SMC-ActivityBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-ActivityBookingService/internal/service/scheduling"
	workWindowsService "github.com/m04kA/SMC-ActivityBookingService/internal/service/workwindows"
	checkEmployeeSwapUC "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/check_employee_swap"
	createBookingUC "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_available_slots"
	getSwapOptionsUC "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/get_swap_options"
	reassignEmployeeUC "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/reassign_employee"
	swapEmployeesUC "github.com/m04kA/SMC-ActivityBookingService/internal/usecase/swap_employees"
	"github.com/m04kA/SMC-ActivityBookingService/internal/worker/paymentexpiry"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/logger"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/metrics"
	"github.com/m04kA/SMC-ActivityBookingService/pkg/txmanager"
)

const kafkaWriteTimeout = 5 * time.Second

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

	log.Info("Starting SMC-ActivityBookingService...")

	// Все даты и время бронирований живут в часовом поясе площадки
	location, err := time.LoadLocation(cfg.Scheduling.Timezone)
	if err != nil {
		log.Fatal("Unknown timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	time.Local = location
	log.Info("Timezone set to %s", location)

	// Метрики (nil, если выключены: все методы Metrics безопасны для nil)
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(
		wrappedDB,
		txmanager.WithMaxAttempts(cfg.Scheduling.TxMaxAttempts),
		txmanager.WithRetryObserver(metricsCollector),
	)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	activityRepository := activityRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	workWindowRepository := workWindowRepo.NewRepository(wrappedDB)

	// Интеграции
	var publisher eventbus.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = eventbus.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, kafkaWriteTimeout, log)
		log.Info("Booking events published to Kafka topic %s (brokers=%v)", cfg.Kafka.Topic, cfg.Kafka.Brokers)
	} else {
		publisher = eventbus.NewNoopPublisher(log)
		log.Warn("Kafka brokers not configured, booking events are dropped")
	}
	defer publisher.Close()

	notificationClient := notificationservice.NewClient(
		cfg.NotificationService.URL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (NotificationService=%s timeout=%ds)",
		cfg.NotificationService.URL, cfg.NotificationService.Timeout)

	// Сервисы и use cases
	engine := scheduling.NewEngine(bookingRepository, activityRepository, userRepository, metricsCollector, log)

	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, publisher, metricsCollector, log)
	workWindowSvc := workWindowsService.NewService(workWindowRepository, userRepository, txMgr, log)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		activityRepository,
		workWindowRepository,
		engine,
		txMgr,
		metricsCollector,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		activityRepository,
		workWindowRepository,
		bookingRepository,
		txMgr,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		activityRepository,
		engine,
		txMgr,
		publisher,
		notificationClient,
		log,
	)
	checkEmployeeSwapUseCase := checkEmployeeSwapUC.NewUseCase(
		bookingRepository,
		activityRepository,
		userRepository,
		engine,
		txMgr,
		metricsCollector,
		log,
	)
	getSwapOptionsUseCase := getSwapOptionsUC.NewUseCase(
		bookingRepository,
		activityRepository,
		userRepository,
		engine,
		txMgr,
		log,
	)
	swapEmployeesUseCase := swapEmployeesUC.NewUseCase(
		bookingRepository,
		activityRepository,
		txMgr,
		publisher,
		log,
	)
	reassignEmployeeUseCase := reassignEmployeeUC.NewUseCase(
		bookingRepository,
		activityRepository,
		userRepository,
		engine,
		txMgr,
		publisher,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	canPay := canPayHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getActivityBookings := getActivityBookingsHandler.NewHandler(bookingSvc, log)
	reassignEmployee := reassignEmployeeHandler.NewHandler(reassignEmployeeUseCase, log)
	checkEmployeeSwap := checkEmployeeSwapHandler.NewHandler(checkEmployeeSwapUseCase, log)
	getSwapOptions := getSwapOptionsHandler.NewHandler(getSwapOptionsUseCase, log)
	swapEmployees := swapEmployeesHandler.NewHandler(swapEmployeesUseCase, log)
	createWorkWindow := createWorkWindowHandler.NewHandler(workWindowSvc, log)
	getWorkWindows := getWorkWindowsHandler.NewHandler(workWindowSvc, log)

	authenticator := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector, log))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с rate limit)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter, closeLimiter := newLimiter(cfg, log)
		defer closeLimiter()
		public.Use(middleware.RateLimit(limiter, cfg.RateLimit.FailOpen, log))
	}

	public.HandleFunc("/activities/{activityId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/activities/{activityId}/available-dates", getAvailableDates.Handle).Methods(http.MethodGet)
	public.HandleFunc("/bookings/guest", createBooking.HandleGuest).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (ROLE_ADMIN)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(authenticator.Authenticate, middleware.RequireRole(domain.RoleAdmin))

	admin.HandleFunc("/bookings/swap", swapEmployees.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}/employee", reassignEmployee.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}/swap-check/{employeeId}", checkEmployeeSwap.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/swap-options/{employeeId}", getSwapOptions.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/activities/{activityId}/bookings", getActivityBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/work-windows", createWorkWindow.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/employees/{employeeId}/work-windows", getWorkWindows.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (JWT Bearer)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authenticator.Authenticate)

	// /bookings/me регистрируется раньше /bookings/{bookingId}
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/me", getMyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/can-pay", canPay.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	// Фоновая отмена неоплаченных бронирований
	workerCtx, stopWorker := context.WithCancel(context.Background())
	expiryWorker := paymentexpiry.NewWorker(bookingSvc, log, paymentexpiry.Config{
		Interval:   time.Duration(cfg.Scheduling.ExpirySweepIntervalSeconds) * time.Second,
		RunOnStart: true,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		expiryWorker.Run(workerCtx)
	}()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	stopWorker()
	<-workerDone

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

// newLimiter выбирает Redis limiter, общий для всех реплик,
// и откатывается на локальный, если Redis выключен или недоступен
func newLimiter(cfg *config.Config, log *logger.Logger) (middleware.Limiter, func()) {
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := client.Ping(ctx).Err()
		if err == nil {
			log.Info("Rate limit: redis %s, %d requests per %s", cfg.Redis.Addr, cfg.RateLimit.Requests, window)
			return middleware.NewRedisLimiter(client, cfg.RateLimit.Requests, window, cfg.RateLimit.KeyPrefix), func() {
				_ = client.Close()
			}
		}

		log.Warn("Rate limit: redis %s unavailable (%v), using in-process limiter", cfg.Redis.Addr, err)
		_ = client.Close()
	}

	log.Info("Rate limit: in-process, %d requests per %s", cfg.RateLimit.Requests, window)
	return middleware.NewLocalLimiter(cfg.RateLimit.Requests, window), func() {}
}
