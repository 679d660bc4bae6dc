package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	customerapp "github.com/storefront/backend/internal/application/customer"
	orderapp "github.com/storefront/backend/internal/application/order"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/customer"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"go.uber.org/zap"
)

//	@title			Storefront Backend API
//	@version		1.0
//	@description	Customer details, product categories, shopping carts and product orders.

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry comes first so the logger can be rebuilt with the OTLP log bridge
	providers, err := setupTelemetry(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	if providers.logs.IsEnabled() {
		log, err = logger.New(logCfg, logger.WithCore(providers.logs.ZapCore(logger.ParseLevel(cfg.Log.Level))))
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", cfg.App.Version),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.Open(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	if cfg.Database.Driver == config.DriverSQLite {
		// postgres schemas are owned by cmd/migrate
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	storeMetrics, err := telemetry.NewStoreMetrics(providers.meter.Meter("storefront.store"), log)
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}

	cacheFactory := cache.NewFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(logger.ForComponent(log, "cache")),
		cache.WithRecorder(storeMetrics),
	)
	cacheFactory.Connect(ctx)
	cacheFactory.Start(ctx)

	bus, kafkaPublisher := setupEventBus(cfg, log, storeMetrics)
	if err := bus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	categoryRepo := persistence.NewGormProductCategoryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerDetailsRepository(db.DB)
	cartRepo := persistence.NewGormShoppingCartRepository(db.DB)
	orderRepo := persistence.NewGormProductOrderRepository(db.DB)

	categoryCache := cache.For[catalog.ProductCategory](cacheFactory, cache.RegionProductCategory)
	customerCache := cache.For[customer.CustomerDetails](cacheFactory, cache.RegionCustomerDetails)
	cartCache := cache.For[cart.ShoppingCart](cacheFactory, cache.RegionShoppingCart)
	orderCache := cache.For[order.ProductOrder](cacheFactory, cache.RegionProductOrder)

	handlers := apiHandlers{
		categories: handler.NewProductCategoryHandler(catalogapp.NewProductCategoryService(
			categoryRepo, categoryCache, bus, log)),
		customers: handler.NewCustomerDetailsHandler(customerapp.NewCustomerDetailsService(
			customerRepo, cartRepo, customerCache, cartCache, bus, log)),
		carts: handler.NewShoppingCartHandler(cartapp.NewShoppingCartService(
			cartRepo, customerRepo, orderRepo, cartCache, orderCache, bus, log)),
		orders: handler.NewProductOrderHandler(orderapp.NewProductOrderService(
			orderRepo, cartRepo, categoryRepo, orderCache, bus, log)),
	}

	var cachePinger handler.CachePinger
	if cacheFactory.Shared() {
		cachePinger = cacheFactory
	}
	handlers.system = handler.NewSystemHandler(cfg.App.Name, cfg.App.Version, db, cachePinger)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        newEngine(cfg, log, providers.meter, handlers),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error("Error closing Kafka writer", zap.Error(err))
		}
	}
	if err := cacheFactory.Close(); err != nil {
		log.Error("Error closing cache", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	providers.shutdown(shutdownCtx, log)

	log.Info("Server exited gracefully")
}

// setupEventBus subscribes the logging and metrics handlers, plus the Kafka
// publisher when enabled. The returned publisher is nil when Kafka is off.
func setupEventBus(cfg *config.Config, log *zap.Logger, metrics *telemetry.StoreMetrics) (*event.InMemoryEventBus, *event.KafkaPublisher) {
	bus := event.NewInMemoryEventBus(logger.ForComponent(log, "event_bus"))
	bus.Subscribe(event.NewLoggingHandler(log))
	bus.Subscribe(metrics)

	if !cfg.Event.KafkaEnabled {
		return bus, nil
	}

	serializer := event.NewEventSerializer()
	event.RegisterAllEvents(serializer)
	publisher := event.NewKafkaPublisher(event.NewKafkaWriter(cfg.Event), serializer, logger.ForComponent(log, "kafka"),
		event.WithQueueSize(cfg.Event.KafkaQueueSize),
		event.WithWriteTimeout(cfg.Event.KafkaWriteTimeout),
	)
	bus.Subscribe(publisher)
	log.Info("Kafka event publishing enabled",
		zap.Strings("brokers", cfg.Event.KafkaBrokers),
		zap.String("topic", cfg.Event.KafkaTopic),
	)
	return bus, publisher
}
