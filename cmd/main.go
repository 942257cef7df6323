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

	cancelBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_booking"
	createServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_service"
	deleteServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_service"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_booking"
	getServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_service"
	getStaffBookingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_staff_bookings"
	getUserBookingsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_user_bookings"
	listServicesHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_services"
	listStaffHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/list_staff"
	setStaffAvailabilityHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/set_staff_availability"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_booking_status"
	updateServiceHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_service"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/customer"
	serviceRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/service"
	staffRepo "github.com/m04kA/SMC-SalonService/internal/infra/storage/staff"
	"github.com/m04kA/SMC-SalonService/internal/integrations/alerts"
	"github.com/m04kA/SMC-SalonService/internal/integrations/mailer"
	"github.com/m04kA/SMC-SalonService/internal/integrations/smsgateway"
	"github.com/m04kA/SMC-SalonService/internal/notifications"
	"github.com/m04kA/SMC-SalonService/internal/scheduling"
	bookingsService "github.com/m04kA/SMC-SalonService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-SalonService/internal/service/catalog"
	staffService "github.com/m04kA/SMC-SalonService/internal/service/staff"
	createBookingUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonService/pkg/keylock"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
	"github.com/m04kA/SMC-SalonService/pkg/txmanager"
)

// database источник запросов и транзакций для репозиториев и txmanager
type database interface {
	dbmetrics.DBExecutor
	txmanager.TxBeginner
}

// alertSink канал оповещения администратора, закрывается при остановке
type alertSink interface {
	notifications.AlertPublisher
	Close() error
}

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

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Salon.Location()
	if err != nil {
		log.Fatal("Failed to load salon timezone %q: %v", cfg.Salon.Timezone, err)
	}

	generator, err := scheduling.NewGenerator(cfg.Salon.BusinessHours(), cfg.Salon.SlotStep())
	if err != nil {
		log.Fatal("Invalid salon schedule: %v", err)
	}
	log.Info("Salon schedule: %s-%s, step=%s, timezone=%s",
		cfg.Salon.OpenTime, cfg.Salon.CloseTime, cfg.Salon.SlotStep(), location)

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

	var conn database
	if cfg.Metrics.Enabled {
		conn = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		conn = dbmetrics.PlainDB{DB: db}
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(conn)
	serviceRepository := serviceRepo.NewRepository(conn)
	staffRepository := staffRepo.NewRepository(conn)
	customerRepository := customerRepo.NewRepository(conn)
	txMgr := txmanager.NewTransactionManager(conn)

	// Каналы уведомлений: выключенный канал остается nil и пропускается диспетчером
	var emailSender notifications.EmailSender
	if cfg.Notifications.Email.Enabled {
		emailCfg := cfg.Notifications.Email
		emailSender = mailer.NewSMTPSender(emailCfg.Host, emailCfg.Port, emailCfg.Username, emailCfg.Password, emailCfg.From)
		log.Info("Email notifications enabled (smtp=%s:%d)", emailCfg.Host, emailCfg.Port)
	}

	var smsSender notifications.SMSSender
	if cfg.Notifications.SMS.Enabled {
		smsCfg := cfg.Notifications.SMS
		smsSender = smsgateway.NewClient(smsCfg.URL, smsCfg.APIToken, smsCfg.SenderID,
			time.Duration(smsCfg.Timeout)*time.Second, log)
		log.Info("SMS notifications enabled (gateway=%s)", smsCfg.URL)
	}

	var alertPublisher alertSink
	if brokers := cfg.Notifications.Alert.Brokers; len(brokers) > 0 {
		alertPublisher = alerts.NewKafkaPublisher(brokers, cfg.Notifications.Alert.Topic, log)
		log.Info("Admin alerts published to kafka topic=%s", cfg.Notifications.Alert.Topic)
	} else {
		alertPublisher = alerts.NewLogPublisher(log)
		log.Info("Admin alerts written to log")
	}
	defer alertPublisher.Close()

	dispatcher := notifications.NewDispatcher(
		notifications.Config{
			Workers:       cfg.Notifications.Workers,
			QueueSize:     cfg.Notifications.QueueSize,
			RatePerSecond: cfg.Notifications.RatePerSecond,
			Burst:         cfg.Notifications.Burst,
			SendTimeout:   time.Duration(cfg.Notifications.SendTimeout) * time.Second,
			MaxAttempts:   cfg.Notifications.MaxAttempts,
			RetryDelay:    time.Duration(cfg.Notifications.RetryDelay) * time.Second,
			SalonName:     cfg.Salon.Name,
			AdminContact:  cfg.Notifications.Alert.AdminContact,
			Location:      location,
		},
		emailSender,
		smsSender,
		alertPublisher,
		log,
		metricsCollector,
	)
	dispatcher.Start()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		customerRepository,
		staffRepository,
		txMgr,
		log,
	)
	catalogSvc := catalogService.NewService(serviceRepository, log)
	staffSvc := staffService.NewService(staffRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		serviceRepository,
		staffRepository,
		customerRepository,
		txMgr,
		generator,
		keylock.New[int64](),
		dispatcher,
		metricsCollector,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		staffRepository,
		bookingRepository,
		generator,
		location,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getStaffBookings := getStaffBookingsHandler.NewHandler(bookingSvc, location, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	getService := getServiceHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	updateService := updateServiceHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)
	listStaff := listStaffHandler.NewHandler(staffSvc, log)
	setStaffAvailability := setStaffAvailabilityHandler.NewHandler(staffSvc, log)

	// Ограничение частоты создания записей (если подключен Redis)
	var redisClient *redis.Client
	limitBookings := func(h http.Handler) http.Handler { return h }

	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s: %v", cfg.Redis.Address, err)
		}
		cancelPing()

		rateLimiter := middleware.NewRateLimiter(
			redisClient,
			cfg.RateLimit.Requests,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			"salon:bookings",
			cfg.RateLimit.FailOpen,
			log,
		)
		limitBookings = rateLimiter.Middleware
		log.Info("Booking rate limit enabled: %d requests per %ds", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	}

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId:[0-9]+}", getService.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	customerOnly := middleware.RequireRole(domain.RoleCustomer)
	staffOrAdmin := middleware.RequireRole(domain.RoleStaff, domain.RoleAdmin, domain.RoleManager)
	staffOnly := middleware.RequireRole(domain.RoleStaff)
	adminOnly := middleware.RequireRole(domain.RoleAdmin, domain.RoleManager)

	// --- Бронирования клиента ---
	protected.Handle("/bookings", customerOnly(limitBookings(http.HandlerFunc(createBooking.Handle)))).
		Methods(http.MethodPost)
	// /bookings/my регистрируется раньше /bookings/{bookingId}
	protected.Handle("/bookings/my", customerOnly(http.HandlerFunc(getUserBookings.Handle))).
		Methods(http.MethodGet)
	protected.Handle("/bookings/{bookingId:[0-9]+}/cancel", customerOnly(http.HandlerFunc(cancelBooking.Handle))).
		Methods(http.MethodPatch)

	// Запись доступна клиенту-владельцу, мастеру и администратору
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)

	// --- Мастер и администратор ---
	protected.Handle("/bookings/{bookingId:[0-9]+}/status", staffOrAdmin(http.HandlerFunc(updateBookingStatus.Handle))).
		Methods(http.MethodPatch)
	protected.Handle("/staff/{staffId:[0-9]+}/bookings", staffOrAdmin(http.HandlerFunc(getStaffBookings.Handle))).
		Methods(http.MethodGet)
	protected.Handle("/staff/me/availability", staffOnly(http.HandlerFunc(setStaffAvailability.Handle))).
		Methods(http.MethodPatch)

	// --- Каталог услуг (администратор) ---
	protected.Handle("/services", adminOnly(http.HandlerFunc(createService.Handle))).Methods(http.MethodPost)
	protected.Handle("/services/{serviceId:[0-9]+}", adminOnly(http.HandlerFunc(updateService.Handle))).
		Methods(http.MethodPut)
	protected.Handle("/services/{serviceId:[0-9]+}", adminOnly(http.HandlerFunc(deleteService.Handle))).
		Methods(http.MethodDelete)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Новых записей больше не будет: доотправляем очередь уведомлений
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warn("Notification queue was not fully drained: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
