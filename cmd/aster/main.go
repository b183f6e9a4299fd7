package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/formweave/aster/config"
	"github.com/formweave/aster/internal/database"
	"github.com/formweave/aster/internal/middleware"
	"github.com/formweave/aster/internal/repositories/report"
	"github.com/formweave/aster/internal/startup"
	"github.com/formweave/aster/internal/tracing"
	"github.com/formweave/aster/internal/tracing/exporters"
	"github.com/formweave/aster/pkg/events"
	"github.com/formweave/aster/pkg/kafka"
	mappingsvc "github.com/formweave/aster/pkg/mapping"
	"github.com/formweave/aster/pkg/processor"
	healthroutes "github.com/formweave/aster/pkg/routes/health"
	mappingroutes "github.com/formweave/aster/pkg/routes/mapping"
	registryroutes "github.com/formweave/aster/pkg/routes/registry"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	logger := newLogger(cfg)
	ctx := context.Background()

	shutdownTracing := initTracing(ctx, cfg, logger)
	defer shutdownTracing()

	// Database + migrations
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName,
		cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)
	sqlxDB, err := sqlx.Connect(cfg.DatabaseDriver, dsn)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to database")
		os.Exit(1)
	}
	sqlxDB.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
	sqlxDB.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	db := database.NewDatabaseInstance(sqlxDB, logger)

	migrationDriver, err := migratepg.WithInstance(sqlxDB.DB, &migratepg.Config{})
	if err != nil {
		logger.WithError(err).Error("Failed to create migration driver")
		os.Exit(1)
	}
	migrations := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
	})
	if err := migrations.Migrate(cfg.DatabaseName, migrationDriver); err != nil {
		logger.WithError(err).Error("Failed to run migrations")
		os.Exit(1)
	}

	// Services
	var producer *kafka.Producer
	if cfg.KafkaProducerEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
	}
	emitter := events.NewEmitter(producer, logger)
	reports := report.NewRepository(db, logger)
	service := mappingsvc.NewService(logger, reports, emitter)

	var scans *processor.ScanProcessor
	if cfg.KafkaConsumerEnabled {
		scans = processor.NewScanProcessor(kafka.ConsumerConfig{
			Brokers:       cfg.KafkaBrokers,
			Topic:         cfg.KafkaScanTopic,
			ConsumerGroup: cfg.KafkaConsumerGroup,
		}, service, logger)
	}

	// Dependency injection
	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		logger.WithError(err).Error("Failed to create DI container")
		os.Exit(1)
	}
	mustRegister(logger, ectoinject.RegisterInstance[ectologger.Logger](container, logger))
	mustRegister(logger, ectoinject.RegisterInstance[database.DB](container, db))
	mustRegister(logger, ectoinject.RegisterInstance[*report.Repository](container, reports))
	mustRegister(logger, ectoinject.RegisterInstance[*events.Emitter](container, emitter))
	mustRegister(logger, ectoinject.RegisterInstance[*mappingsvc.Service](container, service))

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(middleware.DI(container.GetContainerID()))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))

	var consumerHealth interface{ Health() bool }
	if scans != nil {
		consumerHealth = scans
	}
	checker := healthroutes.NewChecker(db, consumerHealth, version)
	checker.RegisterRoutes(e)

	v1 := e.Group("/api/v1")
	mappingroutes.Register(v1.Group("/mappings"))
	registryroutes.Register(v1.Group("/registry"))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           e,
		ReadTimeout:       time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	boot := startup.New(logger, cfg.StartupMaxAttempts)
	boot.AddDependency(&startup.Func{
		Name:      "database",
		StartFunc: db.PingContext,
		StopFunc: func(ctx context.Context) error {
			return db.Close()
		},
	})
	if scans != nil {
		boot.AddDependency(&startup.Func{
			Name:      "scan-consumer",
			Needs:     []string{"database"},
			StartFunc: scans.Start,
			StopFunc: func(ctx context.Context) error {
				return scans.Stop()
			},
		})
	}
	pruneCtx, pruneCancel := context.WithCancel(ctx)
	boot.AddDependency(&startup.Func{
		Name:  "retention-pruner",
		Needs: []string{"database"},
		StartFunc: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Hour)
				defer ticker.Stop()
				for {
					select {
					case <-pruneCtx.Done():
						return
					case <-ticker.C:
						cutoff := time.Now().Add(-cfg.ReportRetention)
						n, err := reports.DeleteOlderThan(pruneCtx, cutoff)
						if err != nil {
							logger.WithError(err).Warn("Failed to prune expired reports")
						} else if n > 0 {
							logger.WithField("deleted", n).Info("Pruned expired mapping reports")
						}
					}
				}
			}()
			return nil
		},
		StopFunc: func(ctx context.Context) error {
			pruneCancel()
			return nil
		},
	})
	boot.AddDependency(&startup.Func{
		Name:  "http-server",
		Needs: []string{"database"},
		StartFunc: func(ctx context.Context) error {
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.WithError(err).Error("HTTP server stopped")
				}
			}()
			return nil
		},
		StopFunc: server.Shutdown,
	})

	if err := boot.Start(ctx); err != nil {
		logger.WithError(err).Error("Startup failed")
		os.Exit(1)
	}
	checker.SetReady(true)
	logger.WithField("port", cfg.Port).Infof("%s listening on port %d", cfg.AppName, cfg.Port)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	checker.SetReady(false)
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := boot.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Shutdown failed")
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.WithError(err).Error("Failed to close producer")
		}
	}
}

func newLogger(cfg config.Config) ectologger.Logger {
	var zapLogger *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		panic(fmt.Sprintf("failed to create logger: %v", err))
	}
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func initTracing(ctx context.Context, cfg config.Config, logger ectologger.Logger) func() {
	if !cfg.TracingEnabled {
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(&exporters.ConsoleExporter{}))
		tracing.SetTracer(tp.Tracer(cfg.AppName))
		return func() {}
	}

	exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
		Endpoint: cfg.TracingOTLPEndpoint,
		Protocol: cfg.TracingOTLPProtocol,
		Insecure: cfg.TracingInsecure,
		Timeout:  10 * time.Second,
	})
	if err != nil {
		logger.WithError(err).Warn("Failed to create OTLP exporter, tracing disabled")
		return func() {}
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)
	tracing.SetTracer(tp.Tracer(cfg.AppName))

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Failed to shut down tracer provider")
		}
	}
}

func mustRegister(logger ectologger.Logger, err error) {
	if err != nil {
		logger.WithError(err).Error("Failed to register dependency")
		os.Exit(1)
	}
}
