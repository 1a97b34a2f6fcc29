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
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	analyticsReportHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/analytics_report"
	assetsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/assets"
	bookingBlocksHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/booking_blocks"
	campaignsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/campaigns"
	cancelBookingHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/confirm_booking"
	contentVariantsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/content_variants"
	createBookingHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/get_booking"
	getNextAvailableDateHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/get_next_available_date"
	getSettingsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/get_settings"
	healthHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/health"
	linkGatewayGroupsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/link_gateway_groups"
	listBookingsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/list_bookings"
	loginHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/login"
	rescheduleBookingHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/reschedule_booking"
	runScheduledJobsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/run_scheduled_jobs"
	sendCampaignHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/send_campaign"
	syncCampaignHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/sync_campaign"
	updateSettingsHandler "github.com/whalechillz/mas-win-sub025/internal/api/handlers/update_settings"
	"github.com/whalechillz/mas-win-sub025/internal/api/middleware"
	jwtauth "github.com/whalechillz/mas-win-sub025/internal/auth"
	"github.com/whalechillz/mas-win-sub025/internal/config"
	"github.com/whalechillz/mas-win-sub025/internal/infra/events"
	adminUserRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/adminuser"
	bookingRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/booking"
	campaignRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/campaign"
	customerRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/customer"
	messageLogRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/messagelog"
	settingsRepo "github.com/whalechillz/mas-win-sub025/internal/infra/storage/settings"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/analytics"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/objectstorage"
	"github.com/whalechillz/mas-win-sub025/internal/integrations/solapi"
	twilioClient "github.com/whalechillz/mas-win-sub025/internal/integrations/twilio"
	"github.com/whalechillz/mas-win-sub025/internal/scheduler"
	authService "github.com/whalechillz/mas-win-sub025/internal/service/auth"
	bookingsService "github.com/whalechillz/mas-win-sub025/internal/service/bookings"
	campaignsService "github.com/whalechillz/mas-win-sub025/internal/service/campaigns"
	notificationsService "github.com/whalechillz/mas-win-sub025/internal/service/notifications"
	"github.com/whalechillz/mas-win-sub025/internal/service/schedule"
	settingsService "github.com/whalechillz/mas-win-sub025/internal/service/settings"
	createBookingUC "github.com/whalechillz/mas-win-sub025/internal/usecase/create_booking"
	dispatchCampaignUC "github.com/whalechillz/mas-win-sub025/internal/usecase/dispatch_campaign"
	getAvailableSlotsUC "github.com/whalechillz/mas-win-sub025/internal/usecase/get_available_slots"
	getNextAvailableDateUC "github.com/whalechillz/mas-win-sub025/internal/usecase/get_next_available_date"
	linkGatewayGroupsUC "github.com/whalechillz/mas-win-sub025/internal/usecase/link_gateway_groups"
	reconcileCampaignUC "github.com/whalechillz/mas-win-sub025/internal/usecase/reconcile_campaign"
	rescheduleBookingUC "github.com/whalechillz/mas-win-sub025/internal/usecase/reschedule_booking"
	runScheduledJobsUC "github.com/whalechillz/mas-win-sub025/internal/usecase/run_scheduled_jobs"
	"github.com/whalechillz/mas-win-sub025/pkg/dbmetrics"
	"github.com/whalechillz/mas-win-sub025/pkg/logger"
	"github.com/whalechillz/mas-win-sub025/pkg/metrics"
	"github.com/whalechillz/mas-win-sub025/pkg/tracing"
	"github.com/whalechillz/mas-win-sub025/pkg/txmanager"
)

const schedulerRunTimeout = 5 * time.Minute

type eventPublisher interface {
	Publish(ctx context.Context, key string, v any) error
	Close() error
}

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

	log.Info("Starting %s booking & messaging service...", cfg.Business.Name)
	log.Info("Configuration loaded from config.toml")

	location, err := cfg.Business.Location()
	if err != nil {
		log.Fatal("Failed to load business timezone %q: %v", cfg.Business.Timezone, err)
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Metrics.ServiceName,
		Environment: cfg.Tracing.Environment,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		log.Fatal("Failed to initialize tracing: %v", err)
	}
	if cfg.Tracing.Enabled {
		log.Info("Tracing enabled (endpoint=%s, ratio=%.2f)", cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
	}

	// Nil collector keeps every observation a no-op
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

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Bulk message-log writes go through pgx CopyFrom
	bulkPool, err := pgxpool.New(ctx, cfg.Database.URL())
	if err != nil {
		log.Fatal("Failed to create bulk pool: %v", err)
	}
	defer bulkPool.Close()

	// Repositories
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	campaignRepository := campaignRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	adminUserRepository := adminUserRepo.NewRepository(wrappedDB)
	messageLogRepository := messageLogRepo.NewRepository(bulkPool)

	// Integration clients
	gateway := solapi.NewClient(
		cfg.Solapi.BaseURL,
		cfg.Secrets.SolapiAPIKey,
		cfg.Secrets.SolapiAPISecret,
		cfg.Solapi.Sender,
		time.Duration(cfg.Solapi.Timeout)*time.Second,
		log,
	)
	storage := objectstorage.NewClient(
		cfg.Storage.URL,
		cfg.Storage.Bucket,
		cfg.Secrets.StorageServiceKey,
		time.Duration(cfg.Storage.Timeout)*time.Second,
	)
	log.Info("Integration clients initialized (Solapi=%s timeout=%ds, Storage=%s bucket=%s)",
		cfg.Solapi.BaseURL, cfg.Solapi.Timeout, cfg.Storage.URL, cfg.Storage.Bucket)
	if !gateway.Configured() {
		log.Warn("Solapi credentials or sender missing; campaign dispatch and SMS notifications will fail")
	} else {
		log.Info("Solapi sender number: %s", gateway.Sender())
	}

	var reportRunner analyticsReportHandler.ReportRunner = analytics.Disabled{}
	if cfg.Analytics.Enabled {
		client, err := analytics.NewClient(ctx,
			cfg.Analytics.BaseURL,
			cfg.Analytics.PropertyID,
			cfg.Analytics.CredentialsFile,
			time.Duration(cfg.Analytics.Timeout)*time.Second,
		)
		if err != nil {
			log.Fatal("Failed to initialize analytics client: %v", err)
		}
		reportRunner = client
		log.Info("Analytics enabled (property=%s)", cfg.Analytics.PropertyID)
	}

	var sender notificationsService.Sender = gateway
	if cfg.Notifications.Provider == "twilio" {
		sender = twilioClient.NewClient(cfg.Secrets.TwilioAccountSID, cfg.Secrets.TwilioAuthToken, cfg.Twilio.From)
	}
	log.Info("Booking notifications enabled=%t provider=%s", cfg.Notifications.Enabled, cfg.Notifications.Provider)

	var publisher eventPublisher = events.Noop{}
	if cfg.Events.Enabled {
		p, err := events.NewPublisher(cfg.Secrets.AMQPURL, cfg.Events.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to event broker: %v", err)
		}
		publisher = p
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	}

	// Services
	notifier := notificationsService.NewService(
		sender,
		cfg.Notifications.Enabled,
		cfg.Business.Name,
		time.Duration(cfg.Solapi.Timeout)*time.Second,
		log,
	)
	scheduleLoader := schedule.NewLoader(settingsRepository, bookingRepository, location)
	clock := &schedule.RealTimeProvider{}

	bookingSvc := bookingsService.NewService(bookingRepository, txManager, notifier, publisher, metricsCollector, log)
	settingsSvc := settingsService.NewService(settingsRepository, txManager, log)
	campaignSvc := campaignsService.NewService(campaignRepository, txManager, log)

	tokens := jwtauth.NewTokenManager(
		cfg.Secrets.JWTSecret,
		cfg.Auth.Issuer,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
	)
	authSvc := authService.NewService(adminUserRepository, tokens, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(scheduleLoader, log)
	getNextAvailableDateUseCase := getNextAvailableDateUC.NewUseCase(scheduleLoader, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleLoader,
		txManager,
		notifier,
		publisher,
		metricsCollector,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		scheduleLoader,
		txManager,
		notifier,
		publisher,
		metricsCollector,
		log,
	)
	dispatchCampaignUseCase := dispatchCampaignUC.NewUseCase(
		campaignRepository,
		customerRepository,
		messageLogRepository,
		gateway,
		storage,
		publisher,
		metricsCollector,
		clock,
		log,
	)
	reconcileCampaignUseCase := reconcileCampaignUC.NewUseCase(
		campaignRepository,
		gateway,
		publisher,
		metricsCollector,
		log,
	)
	linkGatewayGroupsUseCase := linkGatewayGroupsUC.NewUseCase(
		campaignRepository,
		gateway,
		clock,
		cfg.Booking.LinkLookbackHours,
		cfg.Booking.LinkWindowMinutes,
		log,
	)
	runScheduledJobsUseCase := runScheduledJobsUC.NewUseCase(
		campaignRepository,
		dispatchCampaignUseCase,
		reconcileCampaignUseCase,
		clock,
		cfg.Booking.ReconcileLookbackDays,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getNextAvailableDate := getNextAvailableDateHandler.NewHandler(getNextAvailableDateUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	login := loginHandler.NewHandler(authSvc, log)

	listBookings := listBookingsHandler.NewHandler(bookingSvc, location, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	bookingBlocks := bookingBlocksHandler.NewHandler(settingsSvc, location, log)

	campaigns := campaignsHandler.NewHandler(campaignSvc, log)
	sendCampaign := sendCampaignHandler.NewHandler(dispatchCampaignUseCase, log)
	syncCampaign := syncCampaignHandler.NewHandler(reconcileCampaignUseCase, log)
	linkGatewayGroups := linkGatewayGroupsHandler.NewHandler(linkGatewayGroupsUseCase, log)

	assets := assetsHandler.NewHandler(storage, log)
	analyticsReport := analyticsReportHandler.NewHandler(reportRunner, log)
	contentVariants := contentVariantsHandler.NewHandler(cfg.Business.Name, log)

	runScheduledJobs := runScheduledJobsHandler.NewHandler(runScheduledJobsUseCase, log)
	health := healthHandler.NewHandler(db, log)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/bookings/available", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/next-available", getNextAvailableDate.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", login.Handle).Methods(http.MethodPost)

	// ============================================================
	// CRON ROUTES (platform header or shared secret)
	// ============================================================

	cron := api.PathPrefix("/cron").Subrouter()
	cron.Use(middleware.CronAuth(cfg.Secrets.CronSecret, cfg.Scheduler.TrustPlatformHeader))
	cron.HandleFunc("/scheduled-jobs", runScheduledJobs.Handle).Methods(http.MethodGet, http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (JWT)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Auth(tokens))

	// --- Bookings ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}", rescheduleBooking.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Settings & blocks ---
	admin.HandleFunc("/booking-settings", getSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/booking-settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/booking-blocks", bookingBlocks.List).Methods(http.MethodGet)
	admin.HandleFunc("/booking-blocks", bookingBlocks.Create).Methods(http.MethodPost)
	admin.HandleFunc("/booking-blocks/{blockId:[0-9]+}", bookingBlocks.Delete).Methods(http.MethodDelete)

	// --- Campaigns ---
	admin.HandleFunc("/campaigns/link-groups", linkGatewayGroups.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/campaigns", campaigns.List).Methods(http.MethodGet)
	admin.HandleFunc("/campaigns", campaigns.Create).Methods(http.MethodPost)
	admin.HandleFunc("/campaigns/{campaignId:[0-9]+}", campaigns.Get).Methods(http.MethodGet)
	admin.HandleFunc("/campaigns/{campaignId:[0-9]+}", campaigns.Update).Methods(http.MethodPut)
	admin.HandleFunc("/campaigns/{campaignId:[0-9]+}/send", sendCampaign.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/campaigns/{campaignId:[0-9]+}/sync", syncCampaign.Handle).Methods(http.MethodPost)

	// --- Assets, analytics, content ---
	admin.HandleFunc("/assets", assets.List).Methods(http.MethodGet)
	admin.HandleFunc("/assets", assets.Upload).Methods(http.MethodPost)
	admin.HandleFunc("/assets", assets.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/assets/move", assets.Move).Methods(http.MethodPost)
	admin.HandleFunc("/analytics/report", analyticsReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/content/variants", contentVariants.Handle).Methods(http.MethodPost)

	var jobScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		jobScheduler, err = scheduler.New(cfg.Scheduler.Spec, location, runScheduledJobsUseCase, schedulerRunTimeout, log)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		jobScheduler.Start()
		log.Info("In-process scheduler started (spec=%q, tz=%s)", cfg.Scheduler.Spec, cfg.Business.Timezone)
	}

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      tracing.WrapHandler(r, cfg.Metrics.ServiceName),
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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if jobScheduler != nil {
		jobScheduler.Stop(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	close(stopMetricsCh)

	if err := publisher.Close(); err != nil {
		log.Warn("Failed to close event publisher: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
