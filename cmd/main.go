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
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	createBookingHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/create_booking"
	createSlotsHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/create_slots"
	deleteCustomerHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/delete_customer"
	getAvailableSlotsHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/get_booking"
	getCustomerHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/get_customer"
	getScheduleHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/get_schedule"
	listBookingsHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/list_bookings"
	updateBookingHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/update_booking"
	updateSlotHandler "github.com/gleamnails/GN-BookingService/internal/api/handlers/update_slot"
	"github.com/gleamnails/GN-BookingService/internal/api/middleware"
	"github.com/gleamnails/GN-BookingService/internal/config"
	"github.com/gleamnails/GN-BookingService/internal/domain"
	"github.com/gleamnails/GN-BookingService/internal/events"
	bookingRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/booking"
	customerRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/customer"
	nailtechRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/nailtech"
	notificationlogRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/notificationlog"
	quotationRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/quotation"
	ratelimitRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/ratelimit"
	slotRepo "github.com/gleamnails/GN-BookingService/internal/infra/storage/slot"
	mailerClient "github.com/gleamnails/GN-BookingService/internal/integrations/mailer"
	sheetsyncClient "github.com/gleamnails/GN-BookingService/internal/integrations/sheetsync"
	bookingsService "github.com/gleamnails/GN-BookingService/internal/service/bookings"
	customersService "github.com/gleamnails/GN-BookingService/internal/service/customers"
	slotsService "github.com/gleamnails/GN-BookingService/internal/service/slots"
	createBookingUC "github.com/gleamnails/GN-BookingService/internal/usecase/create_booking"
	notificationSweepUC "github.com/gleamnails/GN-BookingService/internal/usecase/notification_sweep"
	rescheduleBookingUC "github.com/gleamnails/GN-BookingService/internal/usecase/reschedule_booking"
	"github.com/gleamnails/GN-BookingService/pkg/dbmetrics"
	"github.com/gleamnails/GN-BookingService/pkg/logger"
	"github.com/gleamnails/GN-BookingService/pkg/metrics"
	"github.com/gleamnails/GN-BookingService/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GN-BookingService...")

	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

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

	// Repositories and the transaction manager share one handle so statements
	// are instrumented uniformly when metrics are on.
	var (
		bookingRepository         *bookingRepo.Repository
		slotRepository            *slotRepo.Repository
		nailTechRepository        *nailtechRepo.Repository
		customerRepository        *customerRepo.Repository
		quotationRepository       *quotationRepo.Repository
		notificationLogRepository *notificationlogRepo.Repository
		rateLimitRepository       *ratelimitRepo.Repository
		txMgr                     *txmanager.TransactionManager
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		nailTechRepository = nailtechRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		quotationRepository = quotationRepo.NewRepository(wrappedDB)
		notificationLogRepository = notificationlogRepo.NewRepository(wrappedDB)
		rateLimitRepository = ratelimitRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		nailTechRepository = nailtechRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		quotationRepository = quotationRepo.NewRepository(db)
		notificationLogRepository = notificationlogRepo.NewRepository(db)
		rateLimitRepository = ratelimitRepo.NewRepository(db)
		txMgr = txmanager.NewFromSQL(db)
	}

	// Integration clients.
	mailClient := mailerClient.NewClient(
		cfg.Mailer.BaseURL,
		cfg.Mailer.APIKey,
		fmt.Sprintf("%s <%s>", cfg.Mailer.FromName, cfg.Mailer.FromEmail),
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	sheetClient := sheetsyncClient.NewClient(
		cfg.SheetSync.BaseURL,
		cfg.SheetSync.Token,
		cfg.SheetSync.SheetID,
		time.Duration(cfg.SheetSync.Timeout)*time.Second,
		log,
	)

	// Event dispatcher with the configured side channels.
	var sinks []events.Sink
	if cfg.Mailer.Enabled {
		sinks = append(sinks, events.NewMailSink(mailClient, log))
	}
	if cfg.SheetSync.Enabled {
		sinks = append(sinks, events.NewSheetSink(sheetClient, log))
	}
	dispatcher := events.NewDispatcher(0, sinks, log, metricsCollector)
	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher.Run(dispatcherCtx)
	log.Info("Event dispatcher started with %d sinks", len(sinks))

	// Services.
	customerSvc := customersService.NewService(customerRepository, bookingRepository, log)
	slotSvc := slotsService.NewService(slotRepository, nailTechRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		quotationRepository,
		customerSvc,
		customerSvc,
		txMgr,
		dispatcher,
		&bookingsService.RealTimeProvider{},
		log,
	)

	// Use cases.
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		nailTechRepository,
		customerSvc,
		customerSvc,
		dispatcher,
		txMgr,
		decimal.Zero,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		customerRepository,
		dispatcher,
		txMgr,
		log,
	)

	// Handlers.
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, rescheduleBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotSvc, log)
	getSchedule := getScheduleHandler.NewHandler(slotSvc, log)
	createSlots := createSlotsHandler.NewHandler(slotSvc, log)
	updateSlot := updateSlotHandler.NewHandler(slotSvc, log)
	getCustomer := getCustomerHandler.NewHandler(customerSvc, log)
	deleteCustomer := deleteCustomerHandler.NewHandler(customerSvc, log)

	// Router.
	r := mux.NewRouter()
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes. Booking creation is rate limited per client address;
	// the limiter state lives in Postgres so all instances share it.
	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		public.Use(middleware.RateLimit(
			rateLimitRepository,
			"booking_create",
			cfg.RateLimit.BookingLimit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			log,
		))
	}
	public.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	api.HandleFunc("/nail-techs/{techId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Booking lookup serves two audiences: a GN- booking code works without a
	// token, a raw id requires staff auth.
	lookup := api.PathPrefix("").Subrouter()
	lookup.Use(middleware.OptionalAuth(cfg.Auth.JWTSecret))
	lookup.HandleFunc("/bookings/{idOrCode}", getBooking.Handle).Methods(http.MethodGet)

	// Staff routes.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/nail-techs/{techId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// Slot and customer management requires ADMIN or higher.
	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.Auth(cfg.Auth.JWTSecret))
	admin.Use(middleware.RequireRole(domain.RoleAdmin))
	admin.HandleFunc("/slots", createSlots.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/slots/{slotId}", updateSlot.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/customers/{customerId}", getCustomer.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{customerId}", deleteCustomer.Handle).Methods(http.MethodDelete)

	// Reminder sweep on the cron schedule.
	var sweeper *cron.Cron
	if cfg.Sweep.Enabled && cfg.Mailer.Enabled {
		sweepUseCase := notificationSweepUC.NewUseCase(
			bookingRepository,
			slotRepository,
			customerRepository,
			notificationLogRepository,
			rateLimitRepository,
			mailClient,
			time.Duration(cfg.Sweep.ToleranceMinutes)*time.Minute,
			metricsCollector,
			log,
		)
		sweeper = cron.New(cron.WithLocation(domain.ManilaLocation()))
		_, err := sweeper.AddFunc(cfg.Sweep.Schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if res, err := sweepUseCase.Execute(ctx); err != nil {
				log.Error("Notification sweep failed: %v", err)
			} else {
				log.Info("Notification sweep: scanned=%d sent=%d failed=%d skipped=%d",
					res.Scanned, res.Sent, res.Failed, res.Skipped)
			}
		})
		if err != nil {
			log.Fatal("Failed to schedule notification sweep: %v", err)
		}
		sweeper.Start()
		log.Info("Notification sweep scheduled: %s", cfg.Sweep.Schedule)
	} else if cfg.Sweep.Enabled {
		log.Warn("Notification sweep disabled: mailer is not enabled")
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if sweeper != nil {
		sweepCtx := sweeper.Stop()
		<-sweepCtx.Done()
		log.Info("Notification sweep stopped")
	}

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

	// Drain queued events before exit.
	dispatcher.Stop()
	stopDispatcher()

	log.Info("Server stopped gracefully")
}
