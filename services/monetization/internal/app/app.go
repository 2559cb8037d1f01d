package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lick-scroll-monetization/pkg/cache"
	"lick-scroll-monetization/pkg/config"
	"lick-scroll-monetization/pkg/database"
	"lick-scroll-monetization/pkg/jwt"
	"lick-scroll-monetization/pkg/logger"
	"lick-scroll-monetization/pkg/middleware"
	"lick-scroll-monetization/pkg/money"
	"lick-scroll-monetization/pkg/queue"
	"lick-scroll-monetization/pkg/s3"
	monetizationHTTP "lick-scroll-monetization/services/monetization/internal/controller/http"
	"lick-scroll-monetization/services/monetization/internal/jobs"
	contentCache "lick-scroll-monetization/services/monetization/internal/repo/cache"
	"lick-scroll-monetization/services/monetization/internal/repo/persistent"
	"lick-scroll-monetization/services/monetization/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "lick-scroll-monetization/services/monetization/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	scheduler   *jobs.Scheduler
	httpServer  *http.Server
	cancel      context.CancelFunc
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithLevel(cfg.LogLevel)

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v (continuing without cache and rate limiting)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v (statement export disabled)", err)
		s3Client = nil
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	if cfg.VerificationWebhookSecret == "" {
		log.Warn("VERIFICATION_WEBHOOK_SECRET is not set, verification webhooks will be rejected")
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	uow := persistent.NewUnitOfWork(a.db)
	contents := contentCache.NewContentCache(a.redisClient, a.cfg.ContentCacheTTL)

	var publisher usecase.Publisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}
	notifier := usecase.NewQueueNotifier(publisher, a.log)

	var uploader usecase.Uploader
	if a.s3Client != nil {
		uploader = a.s3Client
	}

	// Initialize use cases
	ledgerUseCase := usecase.NewLedgerUseCase(uow, a.log)
	earningsUseCase := usecase.NewEarningsUseCase(uow, a.log)
	entitlementUseCase := usecase.NewEntitlementUseCase(uow, contents, a.log)
	recorderUseCase := usecase.NewRecorderUseCase(uow, notifier, usecase.RecorderConfig{
		PaymentProvider:    a.cfg.PaymentProvider,
		SubscriptionPeriod: a.cfg.SubscriptionPeriod,
	}, a.log)
	payoutUseCase := usecase.NewPayoutUseCase(uow, notifier, money.Cents(a.cfg.PayoutMinCents), a.log)
	verificationUseCase := usecase.NewVerificationUseCase(uow, a.cfg.VerificationWebhookSecret, a.log)
	statementUseCase := usecase.NewStatementUseCase(uow, uploader, a.log)

	// Initialize HTTP handlers
	accessHandler := monetizationHTTP.NewAccessHandler(entitlementUseCase, a.log)
	purchaseHandler := monetizationHTTP.NewPurchaseHandler(recorderUseCase, a.log)
	earningsHandler := monetizationHTTP.NewEarningsHandler(earningsUseCase, ledgerUseCase, statementUseCase, a.log)
	payoutHandler := monetizationHTTP.NewPayoutHandler(payoutUseCase, a.log)
	adminHandler := monetizationHTTP.NewAdminHandler(payoutUseCase, recorderUseCase, entitlementUseCase, ledgerUseCase, a.log)
	webhookHandler := monetizationHTTP.NewWebhookHandler(verificationUseCase, a.log)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.scheduler = jobs.NewScheduler(a.cfg.SubscriptionSweepSchedule, entitlementUseCase, a.log)
	if err := a.scheduler.Start(ctx); err != nil {
		cancel()
		return err
	}

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", monetizationHTTP.SignatureHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		api.POST("/webhooks/verification", webhookHandler.VerificationWebhook)

		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware(a.jwtService))
		public.Use(middleware.RateLimitMiddleware(a.redisClient, 300, time.Minute))
		{
			public.GET("/content/:id/access", accessHandler.CheckAccess)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		protected.Use(middleware.RateLimitMiddleware(a.redisClient, 100, time.Minute))
		{
			protected.POST("/content/:id/purchase", purchaseHandler.PurchaseContent)
			protected.POST("/creators/:id/subscribe", purchaseHandler.Subscribe)
			protected.DELETE("/creators/:id/subscribe", purchaseHandler.Unsubscribe)
			protected.POST("/creators/:id/tip", purchaseHandler.SendTip)
			protected.GET("/transactions", purchaseHandler.ListTransactions)
			protected.GET("/entitlements", accessHandler.ListEntitlements)

			protected.GET("/earnings", earningsHandler.GetEarnings)
			protected.GET("/earnings/ledger", earningsHandler.GetLedger)
			protected.POST("/earnings/statement", earningsHandler.ExportStatement)

			protected.POST("/payouts", payoutHandler.RequestPayout)
			protected.GET("/payouts", payoutHandler.ListPayouts)
			protected.POST("/payouts/:id/cancel", payoutHandler.CancelPayout)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole("moderator", "admin"))
		{
			admin.GET("/payouts", adminHandler.ListPayouts)
			admin.POST("/payouts/:id/process", adminHandler.ProcessPayout)
			admin.POST("/transactions/:id/refund", adminHandler.RefundTransaction)
			admin.POST("/entitlements", adminHandler.GrantGift)
			admin.POST("/adjustments", adminHandler.Adjust)
		}
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Monetization service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down monetization service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop accepting requests before the stores go away
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
	}

	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	if a.cancel != nil {
		a.cancel()
	}

	// Close RabbitMQ connection
	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("Monetization service exited")
	return nil
}
