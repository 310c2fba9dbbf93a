package main

import (
	"context"
	"log"

	"fleet-tracker/internal/core/cache"
	"fleet-tracker/internal/core/config"
	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/core/server"
	etaadapter "fleet-tracker/internal/features/eta/adapters"
	etahandler "fleet-tracker/internal/features/eta/handler"
	etaservice "fleet-tracker/internal/features/eta/service"
	fleethandler "fleet-tracker/internal/features/fleet/handler"
	"fleet-tracker/internal/features/fleet/registry"
	fleetservice "fleet-tracker/internal/features/fleet/service"
	trackingadapter "fleet-tracker/internal/features/tracking/adapters"
	trackinghandler "fleet-tracker/internal/features/tracking/handler"
	"fleet-tracker/internal/features/tracking/transport"

	"go.uber.org/zap"
)

// @title Fleet Tracker API
// @version 1.0
// @description This API exposes live driver positions and arrival estimates for delivery dispatching.
// @contact.name API Support
// @contact.email support@fleettracker.fr
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Verify the preference store is reachable before serving.
	redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	prefStore := trackingadapter.NewRedisPreferenceStore(redisCache)
	prefHdl := trackinghandler.NewPreferenceHandler(prefStore)

	// Verify the routing server answers before serving estimates.
	routerAdapter := etaadapter.NewOSRMAdapter(cfg.ETA.RouterURL)
	if err := routerAdapter.HealthCheck(ctx); err != nil {
		l.Fatal("Routing Health Check Failed", zap.Error(err))
	}
	l.Info("Routing server connection verified")

	geocoderAdapter := etaadapter.NewNominatimAdapter(cfg.ETA.GeocoderURL, cfg.ETA.GeocoderCountry)
	etaSvc := etaservice.NewService(geocoderAdapter, routerAdapter)
	etaHdl := etahandler.NewETAHandler(etaSvc)

	// The registry is fed by the location channel and swept for staleness.
	reg := registry.New(cfg.Fleet.StaleAfter)
	go reg.RunSweeper(ctx, cfg.Fleet.SweepEvery)

	channel := transport.NewChannel(cfg.Tracking.WSURL)
	channel.SetDownHandler(func(err error) {
		l.Error("Location channel is down, driver positions will go stale", zap.Error(err))
	})
	if err := channel.Connect(ctx, cfg.Tracking.WSToken); err != nil {
		// The channel reconnects on its own; the registry simply stays
		// empty until it does.
		l.Warn("Initial channel connect failed, retrying in background", zap.Error(err))
	}
	defer channel.Disconnect()

	bridge := fleetservice.NewBridge(reg, channel)
	bridge.Start()
	defer bridge.Stop()

	fleetHdl := fleethandler.NewFleetHandler(reg)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/fleet/drivers", fleetHdl.GetDrivers)
	srv.App.Get("/eta", etaHdl.GetETA)
	srv.App.Get("/tracking/autotrack/:driverID", prefHdl.GetPreference)
	srv.App.Put("/tracking/autotrack/:driverID", prefHdl.SetPreference)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
