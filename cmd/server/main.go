package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/faycalhabibahmatalbachar/gba-sub001/docs"

	catalogapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/catalog"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/checkout"
	deliveryapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/delivery"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/fulfillment"
	messagingapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/messaging"
	monitoringapp "github.com/faycalhabibahmatalbachar/gba-sub001/internal/application/monitoring"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/identity"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/domain/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/auth"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/cache"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/config"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/event"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/logger"
	paymentinfra "github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/payment"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/persistence"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/scheduler"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/storage"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/infrastructure/telemetry"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/handler"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/middleware"
	"github.com/faycalhabibahmatalbachar/gba-sub001/internal/interfaces/http/router"
)

const (
	serviceVersion  = "1.0.0"
	eventProducer   = "gba-backend"
	shutdownTimeout = 30 * time.Second
)

//	@title			GBA Backend API
//	@version		1.0
//	@description	Payment functions, admin API and storefront API of the GBA store

//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	baseLog, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}, cfg.App.Name)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry providers; each is a no-op when disabled
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, baseLog)
	if err != nil {
		baseLog.Fatal("Failed to initialize logs exporter", zap.Error(err))
	}
	log := logProvider.Bridge(baseLog)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting GBA backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    serviceVersion,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	meter := meterProvider.Meter("gba-backend")
	paymentMetrics, err := telemetry.NewPaymentMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create payment metrics", zap.Error(err))
	}
	storeMetrics, err := telemetry.NewStoreMetrics(meter, log)
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}

	// Database with zap-backed GORM logger and query tracing
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:        cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:         "postgres",
		TracerProvider: tracerProvider.Provider(),
	}, log)

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithLogger(gormLog),
		persistence.WithTracing(dbTracing.Register),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	orderRepo, err := persistence.NewGormOrderRepository(db.DB)
	if err != nil {
		log.Fatal("Failed to inspect orders table", zap.Error(err))
	}
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	productReader := persistence.NewGormProductReader(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	statsRepo := persistence.NewGormStatsRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	signalRepo := persistence.NewGormSignalRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)

	// Webhook de-duplication; Redis outages fall back outside production
	idempotency, err := cache.NewIdempotencyStore(ctx, cfg.Redis, cfg.App.Env != "production", log)
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		_ = idempotency.Close()
	}()

	publisher := event.NewPublisher(cfg.Kafka, eventProducer, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Error closing event publisher", zap.Error(err))
		}
	}()

	verifier := newTokenVerifier(cfg.Auth, log)
	intents, links := newPaymentGateways(cfg.Payment, log)
	var stripeEvents checkout.EventVerifier
	if cfg.Payment.Stripe.WebhookSecret != "" {
		stripeEvents = paymentinfra.StripeSignatureVerifier{Secret: cfg.Payment.Stripe.WebhookSecret}
	}

	// Initialize services
	stripeCheckout := checkout.NewStripeCheckoutService(checkout.StripeCheckoutServiceConfig{
		Intents:  intents,
		Verifier: verifier,
		Orders:   orderRepo,
		Payments: paymentRepo,
		Events:   publisher,
		Metrics:  paymentMetrics,
		Logger:   log,
	})
	flutterwaveCheckout := checkout.NewFlutterwaveCheckoutService(checkout.FlutterwaveCheckoutServiceConfig{
		Links:     links,
		Verifier:  verifier,
		Orders:    orderRepo,
		Events:    publisher,
		Metrics:   paymentMetrics,
		SiteURL:   cfg.App.SiteURL,
		XAFPerUSD: cfg.Payment.Flutterwave.XAFPerUSD,
		Logger:    log,
	})
	stripeWebhook := checkout.NewStripeWebhookService(checkout.StripeWebhookServiceConfig{
		Verifier:   stripeEvents,
		Orders:     orderRepo,
		Payments:   paymentRepo,
		Deliveries: idempotency,
		TTL:        cfg.Payment.IdempotencyTTL,
		Events:     publisher,
		Metrics:    paymentMetrics,
		Logger:     log,
	})
	flutterwaveWebhook := checkout.NewFlutterwaveWebhookService(checkout.FlutterwaveWebhookServiceConfig{
		SecretHash: cfg.Payment.Flutterwave.SecretHash,
		Links:      links,
		Orders:     orderRepo,
		Deliveries: idempotency,
		TTL:        cfg.Payment.IdempotencyTTL,
		Events:     publisher,
		Metrics:    paymentMetrics,
		Logger:     log,
	})

	snapshotService := monitoringapp.NewSnapshotService(statsRepo, publisher, log, monitoringapp.SnapshotServiceConfig{
		LowStockThreshold: cfg.Monitor.LowStockThreshold,
		Recorder:          storeMetrics,
	})
	deliveryService := deliveryapp.NewService(deliveryRepo, log)
	imageService := catalogapp.NewImageService(productReader, newImageStorage(cfg, log), log)
	productService := catalogapp.NewProductService(productRepo, signalRepo, log)
	fulfillmentService := fulfillment.NewService(orderRepo, publisher, log)
	messagingService := messagingapp.NewService(messageRepo, log)

	monitor := scheduler.NewMonitorScheduler(snapshotService, log, scheduler.MonitorSchedulerConfig{
		Enabled:    cfg.Monitor.Enabled,
		Interval:   cfg.Monitor.Interval,
		RunTimeout: time.Minute,
		RunOnStart: true,
	})
	if err := monitor.Start(ctx); err != nil {
		log.Fatal("Failed to start monitor scheduler", zap.Error(err))
	}

	// Initialize handlers
	functionHandler := handler.NewFunctionHandler(handler.FunctionHandlerConfig{
		StripeCheckout:      stripeCheckout,
		FlutterwaveCheckout: flutterwaveCheckout,
		StripeWebhook:       stripeWebhook,
		FlutterwaveWebhook:  flutterwaveWebhook,
		Logger:              log,
	})
	monitoringHandler := handler.NewMonitoringHandler(snapshotService)
	deliveryHandler := handler.NewDeliveryHandler(deliveryService)
	imageHandler := handler.NewProductImageHandler(imageService)
	orderHandler := handler.NewOrderHandler(fulfillmentService)
	conversationHandler := handler.NewConversationHandler(messagingService)
	storefrontHandler := handler.NewStorefrontHandler(productService)
	healthHandler := handler.NewHealthHandler(db)

	// Setup Gin
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		Enabled:        cfg.Telemetry.Enabled,
		TracerProvider: tracerProvider.Provider(),
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.Secure())

	engine.GET("/health", healthHandler.Check)

	// Payment functions: plain-text errors, 64KB bodies
	checkoutRoutes := router.NewDomainGroup("checkout", "")
	checkoutRoutes.Use(middleware.FunctionCORS())
	checkoutRoutes.POST("/create-payment-intent", functionHandler.CreatePaymentIntent).
		OPTIONS("/create-payment-intent", preflight).
		POST("/create-flutterwave-payment", functionHandler.CreateFlutterwavePayment).
		OPTIONS("/create-flutterwave-payment", preflight)

	webhookRoutes := router.NewDomainGroup("webhooks", "")
	webhookRoutes.POST("/stripe-webhook", functionHandler.StripeWebhook).
		POST("/flutterwave-webhook", functionHandler.FlutterwaveWebhook)

	router.NewRouter(engine,
		router.WithPrefix("/functions"),
		router.WithMiddleware(middleware.TextBodyLimit(middleware.FunctionBodyLimit)),
	).
		Register(checkoutRoutes).
		Register(webhookRoutes).
		Setup()

	// Admin API: JSON envelopes, admin role required
	adminAuth := middleware.AdminAuth(middleware.AdminAuthConfig{
		Verifier:  verifier,
		Profiles:  profileRepo,
		AdminRole: cfg.Auth.AdminRole,
		Logger:    log,
	})
	adminRoutes := router.NewDomainGroup("admin", "/admin")
	adminRoutes.Use(adminAuth)
	adminRoutes.OPTIONS("/*path", preflight)
	adminRoutes.GET("/monitoring/snapshot", monitoringHandler.Snapshot)
	adminRoutes.GET("/deliveries", deliveryHandler.ListAssignments).
		PUT("/deliveries/:order_id", deliveryHandler.AssignDriver)
	adminRoutes.GET("/drivers/:driver_id/location", deliveryHandler.DriverLocation)
	adminRoutes.POST("/products/:product_id/images/upload-url", imageHandler.RequestUpload).
		DELETE("/products/:product_id/images", imageHandler.DeleteImage)
	adminRoutes.PUT("/orders/:order_id/status", orderHandler.UpdateStatus)
	adminRoutes.POST("/conversations/:conversation_id/messages", conversationHandler.SendMessage).
		PUT("/conversations/:conversation_id/read", conversationHandler.MarkRead).
		PUT("/conversations/:conversation_id/status", conversationHandler.SetStatus)

	cors := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(cors, middleware.BodyLimit(cfg.HTTP.MaxBodySize)),
	).
		Register(adminRoutes).
		Setup()

	// Storefront API of the mobile app, mounted at /v1
	productRoutes := router.NewDomainGroup("products", "/products")
	productRoutes.GET("/top", storefrontHandler.TopProducts).
		OPTIONS("/top", preflight)

	customerRoutes := router.NewDomainGroup("customer", "")
	customerRoutes.OPTIONS("/me", preflight).
		OPTIONS("/recommendations", preflight)
	customerRoutes.Use(middleware.UserAuth(middleware.UserAuthConfig{Verifier: verifier, Logger: log}))
	customerRoutes.GET("/me", storefrontHandler.Me).
		GET("/recommendations", storefrontHandler.Recommendations)

	router.NewRouter(engine,
		router.WithPrefix(""),
		router.WithAPIVersion("v1"),
		router.WithMiddleware(cors, middleware.BodyLimit(cfg.HTTP.MaxBodySize)),
	).
		Register(productRoutes).
		Register(customerRoutes).
		Setup()

	// API documentation
	engine.GET("/swagger/*any",
		middleware.DocsProtection(middleware.DocsConfig{
			Enabled:    cfg.Swagger.Enabled,
			AllowedIPs: cfg.Swagger.AllowedIPs,
			Auth:       docsAuth(cfg.Swagger.RequireAuth, adminAuth),
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := monitor.Stop(shutdownCtx); err != nil {
		log.Error("Monitor scheduler did not stop cleanly", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	if err := logProvider.Shutdown(shutdownCtx); err != nil {
		baseLog.Error("Logger provider shutdown failed", zap.Error(err))
	}
}

// docsAuth returns the middleware guarding the API documentation, nil when
// it is public
func docsAuth(required bool, adminAuth gin.HandlerFunc) gin.HandlerFunc {
	if !required {
		return nil
	}
	return adminAuth
}

// preflight is the terminal handler of OPTIONS routes; the CORS middleware answers first
func preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// newTokenVerifier returns nil when no auth backend is configured. The
// interface stays untyped nil so services report the missing configuration.
func newTokenVerifier(cfg config.AuthConfig, log *zap.Logger) identity.TokenVerifier {
	verifier, err := auth.NewTokenVerifier(cfg)
	if err != nil {
		log.Warn("Token verification not configured; checkout and admin routes will refuse requests", zap.Error(err))
		return nil
	}
	return verifier
}

// newPaymentGateways builds the provider adapters whose credentials are present
func newPaymentGateways(cfg config.PaymentConfig, log *zap.Logger) (payment.IntentGateway, payment.LinkGateway) {
	var (
		intents payment.IntentGateway
		links   payment.LinkGateway
	)

	stripeGateway, err := paymentinfra.NewStripeGateway(&paymentinfra.StripeConfig{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
	})
	if err != nil {
		log.Warn("Stripe checkout disabled", zap.Error(err))
	} else {
		intents = stripeGateway
	}

	flutterwaveGateway, err := paymentinfra.NewFlutterwaveGateway(&paymentinfra.FlutterwaveConfig{
		SecretKey:  cfg.Flutterwave.SecretKey,
		SecretHash: cfg.Flutterwave.SecretHash,
		BaseURL:    cfg.Flutterwave.BaseURL,
		Timeout:    cfg.Flutterwave.Timeout,
	}, paymentinfra.WithFlutterwaveLogger(log.Named("flutterwave")))
	if err != nil {
		log.Warn("Flutterwave checkout disabled", zap.Error(err))
	} else {
		links = flutterwaveGateway
	}

	return intents, links
}

// newImageStorage returns the S3 bucket for product images, or a storage
// that refuses every call when none is configured
func newImageStorage(cfg *config.Config, log *zap.Logger) catalogapp.ImageStorage {
	if !cfg.Storage.Enabled {
		log.Info("Object storage disabled; product image uploads unavailable")
		return storage.DisabledStorage{}
	}

	s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage,
		storage.WithLogger(log),
		storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
	)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	return s3Storage
}
