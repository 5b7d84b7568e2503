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

	createBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_booking"
	getAvailableDatesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_dates"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_booking"
	getBookingByCodeHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_booking_by_code"
	getBookingQRHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_booking_qr"
	getBusinessBookingsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_business_bookings"
	getWaitingListHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_waiting_list"
	joinWaitingListHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/join_waiting_list"
	quoteDiscountHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/quote_discount"
	updateBookingStatusHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_booking_status"
	updateWaitingListStatusHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_waiting_list_status"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	discountCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/discount"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	discountRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/discount"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	waitingListRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/waitinglist"
	membershipClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/membership"
	bookingsService "github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-AvailabilityService/internal/service/catalog"
	pricingService "github.com/m04kA/SMC-AvailabilityService/internal/service/pricing"
	waitingListService "github.com/m04kA/SMC-AvailabilityService/internal/service/waitinglist"
	createBookingUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_booking"
	getAvailableDatesUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_dates"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	quoteDiscountUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/quote_discount"
	"github.com/m04kA/SMC-AvailabilityService/pkg/bookingcode"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// discountStore источник скидок: репозиторий или кэш поверх него
type discountStore interface {
	ListActive(ctx context.Context, businessID int64) ([]*domain.Discount, error)
	IncrementUsage(ctx context.Context, businessID, discountID int64) error
}

func main() {
	configPath := "config.toml"
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		configPath = path
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

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone: %v", err)
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

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	waitingListRepository := waitingListRepo.NewRepository(wrappedDB)

	var discounts discountStore = discountRepo.NewRepository(wrappedDB)
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, discount cache will fall back to database: %v", cfg.Redis.Addr, err)
		}
		cancelPing()

		discounts = discountCache.NewCache(
			discounts,
			redisClient,
			time.Duration(cfg.Redis.DiscountCacheTTL)*time.Second,
			metricsCollector,
			log,
		)
		log.Info("Discount cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.DiscountCacheTTL)
	}

	// Сервис членств опционален: без него скидки по уровням не применяются
	var membership pricingService.MembershipClient
	if cfg.MembershipService.URL != "" {
		membership = membershipClient.NewClient(
			cfg.MembershipService.URL,
			time.Duration(cfg.MembershipService.Timeout)*time.Second,
			log,
		)
		log.Info("Membership client initialized (url=%s, timeout=%ds)",
			cfg.MembershipService.URL, cfg.MembershipService.Timeout)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(catalogRepository, log)
	pricingSvc := pricingService.NewService(discounts, membership, log)
	bookingSvc := bookingsService.NewService(bookingRepository, txMgr, location, log)
	waitingListSvc := waitingListService.NewService(waitingListRepository, catalogSvc, location, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		catalogSvc,
		scheduleRepository,
		bookingRepository,
		metricsCollector,
		location,
		log,
	)
	getAvailableDatesUseCase := getAvailableDatesUC.NewUseCase(
		scheduleRepository,
		cfg.Business.AvailableDatesDefault,
		cfg.Business.AvailableDatesMax,
		location,
		log,
	)
	quoteDiscountUseCase := quoteDiscountUC.NewUseCase(catalogSvc, pricingSvc, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		discounts,
		catalogSvc,
		pricingSvc,
		bookingcode.New(cfg.Business.BookingCodePrefix),
		txMgr,
		metricsCollector,
		location,
		cfg.Business.CheckinBaseURL,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailableDates := getAvailableDatesHandler.NewHandler(getAvailableDatesUseCase, log)
	quoteDiscount := quoteDiscountHandler.NewHandler(quoteDiscountUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getBookingByCode := getBookingByCodeHandler.NewHandler(bookingSvc, log)
	getBookingQR := getBookingQRHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getBusinessBookings := getBusinessBookingsHandler.NewHandler(bookingSvc, location, log)
	joinWaitingList := joinWaitingListHandler.NewHandler(waitingListSvc, log)
	getWaitingList := getWaitingListHandler.NewHandler(waitingListSvc, log)
	updateWaitingListStatus := updateWaitingListStatusHandler.NewHandler(waitingListSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		var limiterOpts []middleware.RateLimitOption
		if cfg.RateLimit.TrustForwardedFor {
			limiterOpts = append(limiterOpts, middleware.WithTrustedProxy())
		}
		api.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, limiterOpts...).Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// --- Доступность ---
	api.HandleFunc("/businesses/{businessId}/services/{serviceId}/slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/available-dates",
		getAvailableDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/businesses/{businessId}/discounts/quote",
		quoteDiscount.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/code/{code}", getBookingByCode.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/qr", getBookingQR.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/businesses/{businessId}/bookings", getBusinessBookings.Handle).Methods(http.MethodGet)

	// --- Лист ожидания ---
	api.HandleFunc("/waiting-list", joinWaitingList.Handle).Methods(http.MethodPost)
	api.HandleFunc("/waiting-list/{entryId}/status", updateWaitingListStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/businesses/{businessId}/waiting-list", getWaitingList.Handle).Methods(http.MethodGet)

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
