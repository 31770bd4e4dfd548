package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/lingua-center-api/api/swagger"
	"github.com/noah-isme/lingua-center-api/internal/handler"
	"github.com/noah-isme/lingua-center-api/internal/middleware"
	"github.com/noah-isme/lingua-center-api/internal/models"
	"github.com/noah-isme/lingua-center-api/internal/repository"
	"github.com/noah-isme/lingua-center-api/internal/router"
	"github.com/noah-isme/lingua-center-api/internal/service"
	"github.com/noah-isme/lingua-center-api/pkg/cache"
	"github.com/noah-isme/lingua-center-api/pkg/config"
	"github.com/noah-isme/lingua-center-api/pkg/database"
	"github.com/noah-isme/lingua-center-api/pkg/jobs"
	"github.com/noah-isme/lingua-center-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lingua-center-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lingua-center-api/pkg/middleware/requestid"
	"github.com/noah-isme/lingua-center-api/pkg/notify"
	"github.com/noah-isme/lingua-center-api/pkg/storage"
	"github.com/noah-isme/lingua-center-api/pkg/validation"
	"github.com/noah-isme/lingua-center-api/pkg/webhook"
)

// @title Lingua Center API
// @version 1.0.0
// @description Administration backend for an English training center.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(context.Background(), cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()

	files, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
	if err != nil {
		logr.Fatal("failed to prepare report storage", zap.Error(err))
	}

	app := build(cfg, logr, db, redisClient, files)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, q := range app.queues {
		q.Start(ctx)
	}
	app.reports.RecoverPendingJobs(ctx)
	if cfg.Scheduler.Enabled {
		app.scheduler.Start(ctx)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("server shutdown", zap.Error(err))
	}
	app.scheduler.Stop()
	for _, q := range app.queues {
		q.Stop()
	}
}

type application struct {
	engine    *gin.Engine
	scheduler *jobs.Scheduler
	queues    []*jobs.Queue
	reports   *service.ReportService
}

func build(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client, files *storage.LocalStorage) *application {
	validator := validation.New()
	metrics := service.NewMetricsService()

	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	gradeRepo := repository.NewGradeRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	webhookRepo := repository.NewWebhookRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cache.Keyspace(cfg.Redis.KeyPrefix), cfg.Dashboard.CacheTTL, logr)

	queueCfg := func(workers, retries int) jobs.QueueConfig {
		return jobs.QueueConfig{
			Workers:    workers,
			MaxRetries: retries,
			RetryDelay: 2 * time.Second,
			Logger:     logr,
			Observer:   metrics.ObserveJob,
		}
	}

	webhookWorker := service.NewWebhookWorker(webhook.NewClient(cfg.Webhooks.Timeout), logr)
	webhookQueue := jobs.NewQueue("webhooks", webhookWorker.Handle, queueCfg(cfg.Webhooks.WorkerConcurrency, cfg.Webhooks.WorkerRetries))
	webhooks := service.NewWebhookService(webhookRepo, webhookQueue, validator, logr)

	var emailSender notify.Sender = notify.NewLogSender(string(models.ChannelEmail), logr)
	if cfg.Notifications.SendGridAPIKey != "" {
		emailSender = notify.NewSendGridSender(cfg.Notifications.SendGridAPIKey, cfg.Notifications.FromName, cfg.Notifications.FromAddress)
	}
	notificationWorker := service.NewNotificationWorker(notificationRepo, map[models.NotificationChannel]notify.Sender{
		models.ChannelEmail: emailSender,
		models.ChannelSMS:   notify.NewLogSender(string(models.ChannelSMS), logr),
	}, logr)
	notificationQueue := jobs.NewQueue("notifications", notificationWorker.Handle,
		queueCfg(cfg.Notifications.WorkerConcurrency, cfg.Notifications.WorkerRetries))
	notifications := service.NewNotificationService(service.NotificationServiceParams{
		Repo:        notificationRepo,
		Queue:       notificationQueue,
		Cache:       cacheSvc,
		TemplateTTL: cfg.Notifications.TemplateCacheTTL,
		Validator:   validator,
		Logger:      logr,
	})

	signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
	exports := service.NewExportService(reportRepo, files, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		Retention: cfg.Reports.Retention,
	}, logr)
	reportWorker := service.NewReportWorker(reportRepo, exports, cfg.Reports.WorkerRetries, logr)
	reportQueue := jobs.NewQueue("reports", reportWorker.Handle, queueCfg(cfg.Reports.WorkerConcurrency, cfg.Reports.WorkerRetries))
	reports := service.NewReportService(reportRepo, reportQueue, exports, validator, logr)

	students := service.NewStudentService(service.StudentServiceParams{
		Repo:        studentRepo,
		Enrollments: enrollmentRepo,
		Grades:      gradeRepo,
		Payments:    paymentRepo,
		Events:      webhooks,
		Validator:   validator,
		Logger:      logr,
	})
	payments := service.NewPaymentService(service.PaymentServiceParams{
		Repo:      paymentRepo,
		Students:  studentRepo,
		Gateway:   service.NewSandboxGateway(cfg.Integrations.PaymentsBaseURL, cfg.Integrations.CheckoutTTL),
		Events:    webhooks,
		Validator: validator,
		Logger:    logr,
	})
	leads := service.NewLeadService(leadRepo, studentRepo, webhooks, validator, logr)
	integrations := service.NewIntegrationService(
		service.NewSandboxCalendar(cfg.Integrations.CalendarBaseURL),
		service.NewSandboxMeetings(cfg.Integrations.MeetingsBaseURL),
		validator, logr)
	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Repo:    dashboardRepo,
		Cache:   cacheSvc,
		Metrics: metrics,
		Logger:  logr,
		Config:  service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	auth := service.NewAuthService(userRepo, validator, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "lingua-center-api",
	})

	scheduler := jobs.NewScheduler(cfg.Scheduler.Interval, logr,
		jobs.Task{Name: "notifications.promote", Run: notifications.PromoteDue},
		jobs.Task{Name: "reports.promote", Run: reports.PromoteDue},
		jobs.Task{Name: "reports.cleanup", Run: exports.Cleanup},
	)

	engine := gin.New()
	engine.Use(middleware.Recovery(logr))
	engine.Use(reqidmiddleware.Middleware())
	engine.Use(logger.GinMiddleware(logr, logger.RequestLogOptions{
		SkipPaths: []string{"/health", "/ready", "/metrics"},
		Fields:    middleware.LogFields,
	}))
	engine.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	engine.Use(middleware.Metrics(metrics))
	engine.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(metrics, map[string]handler.ReadinessCheck{
		"database": db.PingContext,
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})
	engine.GET("/health", metricsHandler.Health)
	engine.GET("/ready", metricsHandler.Ready)
	engine.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.Register(engine.Group(cfg.APIPrefix), router.Handlers{
		Auth:          handler.NewAuthHandler(auth),
		Users:         handler.NewUserHandler(service.NewUserService(userRepo, validator, logr)),
		Students:      handler.NewStudentHandler(students),
		Courses:       handler.NewCourseHandler(service.NewCourseService(courseRepo, validator, logr)),
		Instructors:   handler.NewInstructorHandler(service.NewInstructorService(instructorRepo, courseRepo, validator, logr)),
		Grades:        handler.NewGradeHandler(service.NewGradeService(gradeRepo, studentRepo, courseRepo, validator, logr)),
		Payments:      handler.NewPaymentHandler(payments),
		Leads:         handler.NewLeadHandler(leads),
		Opportunities: handler.NewOpportunityHandler(service.NewOpportunityService(opportunityRepo, leadRepo, validator, logr)),
		Dashboard:     handler.NewDashboardHandler(dashboard),
		Notifications: handler.NewNotificationHandler(notifications),
		Reports:       handler.NewReportHandler(exports, reports),
		Integrations:  handler.NewIntegrationHandler(integrations, webhooks),
		Metrics:       metricsHandler,
	}, router.Deps{Tokens: auth, Audit: userRepo, Logger: logr})

	return &application{
		engine:    engine,
		scheduler: scheduler,
		queues:    []*jobs.Queue{notificationQueue, reportQueue, webhookQueue},
		reports:   reports,
	}
}
