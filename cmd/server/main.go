// Package main initializes and starts the LOG-SGB dashboard server,
// setting up configuration, logging, the database connection, repositories,
// the snapshot store, services and handlers.
package main

import (
	"cmp"
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/serragrande/logsgb/internal/config"
	"github.com/serragrande/logsgb/internal/db"
	"github.com/serragrande/logsgb/internal/logger"
	"github.com/serragrande/logsgb/internal/repository"
	"github.com/serragrande/logsgb/internal/server/handler/http"
	"github.com/serragrande/logsgb/internal/service"
	"github.com/serragrande/logsgb/internal/session"
	"github.com/serragrande/logsgb/internal/snapshot"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge stale rejected registrations in the background.
	db.StartRejectedAccountCleaner(context.Background(), postgresDB,
		time.Hour,       // interval
		30*24*time.Hour, // retention: 30 days
		zapLogger,
	)

	// Initialize repositories over the shared connection pool.
	productRepo := repository.NewPostgresProductRepository(postgresDB)
	driverRepo := repository.NewPostgresDriverRepository(postgresDB)
	truckRepo := repository.NewPostgresTruckRepository(postgresDB)
	trailerRepo := repository.NewPostgresTrailerRepository(postgresDB)
	shipmentRepo := repository.NewPostgresShipmentRepository(postgresDB)
	userRepo := repository.NewPostgresUserRepository(postgresDB)

	// Load the initial snapshot; an unreachable store at boot is fatal.
	snap := snapshot.New(productRepo, driverRepo, truckRepo, trailerRepo, shipmentRepo, zapLogger)
	if err := snap.Reload(context.Background()); err != nil {
		zapLogger.Fatal("cannot load initial snapshot", zap.Error(err))
	}

	// Initialize business-logic services.
	superAdmin := service.SuperAdmin{
		Username: options.SuperAdminUser,
		Password: options.SuperAdminPass,
	}
	authService := service.NewAuthService(userRepo, superAdmin)
	catalogService := service.NewCatalogService(productRepo, driverRepo, truckRepo, trailerRepo, snap)
	shipmentService := service.NewShipmentService(shipmentRepo, snap)

	sessions := session.NewManager(time.Duration(options.SessionTTLMinutes) * time.Minute)

	// Create HTTP handlers and build the router.
	handlers := http.Handlers{
		Auth:      &http.AuthHandler{AuthService: authService, Sessions: sessions},
		Entities:  &http.EntityHandler{Catalog: catalogService, Snapshot: snap, Log: zapLogger},
		Shipments: &http.ShipmentHandler{Shipments: shipmentService, Snapshot: snap, Log: zapLogger},
		Wizard:    http.NewWizardHandler(snap, shipmentService),
		Stats:     &http.StatsHandler{Snapshot: snap},
		Export:    &http.ExportHandler{Snapshot: snap},
		Images:    &http.ImagesHandler{Log: zapLogger},
	}
	router := http.NewRouter(handlers, sessions, superAdmin.Username, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
