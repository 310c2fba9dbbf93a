package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet-tracker/internal/core/cache"
	"fleet-tracker/internal/core/logger"
	adapter "fleet-tracker/internal/features/tracking/adapters"
	"fleet-tracker/internal/features/tracking/autotrack"
	"fleet-tracker/internal/features/tracking/domain"
	"fleet-tracker/internal/features/tracking/session"
	"fleet-tracker/internal/features/tracking/transport"

	"go.uber.org/zap"
)

// alwaysConfirm stands in for the driver's confirmation prompt; the
// simulator has no interactive terminal.
type alwaysConfirm struct{}

func (alwaysConfirm) Confirm(string) bool { return true }

// driversim broadcasts a simulated driver walking a straight line between
// two coordinates, for exercising the fleet API without a real mobile
// client.
func main() {
	wsURL := flag.String("ws-url", "ws://localhost:8081/ws", "location channel endpoint")
	token := flag.String("token", "", "bearer token for the channel")
	driverID := flag.String("driver-id", "sim-driver-1", "driver identifier")
	driverName := flag.String("driver-name", "", "driver display name")
	deliveryID := flag.String("delivery-id", "sim-delivery-1", "delivery identifier")
	address := flag.String("address", "10 Rue de Rivoli, 75004 Paris", "destination address")
	fromLat := flag.Float64("from-lat", 48.8566, "start latitude")
	fromLon := flag.Float64("from-lon", 2.3522, "start longitude")
	toLat := flag.Float64("to-lat", 48.8558, "end latitude")
	toLon := flag.Float64("to-lon", 2.3605, "end longitude")
	steps := flag.Int("steps", 60, "number of samples between start and end")
	interval := flag.Duration("interval", 2*time.Second, "time between samples")
	redisURL := flag.String("redis-url", "", "when set, go through the auto-tracking policy backed by this Redis")
	flag.Parse()

	if err := logger.Init("development", "debug"); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	l := logger.Get()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := adapter.NewSimulatedSource(
		domain.Position{Latitude: *fromLat, Longitude: *fromLon},
		domain.Position{Latitude: *toLat, Longitude: *toLon},
		*steps,
		*interval,
	)

	channel := transport.NewChannel(*wsURL)
	channel.SetDownHandler(func(err error) {
		l.Fatal("Location channel gave up reconnecting", zap.Error(err))
	})

	sessions := session.NewManager(source, channel)
	sessions.SetErrorHandler(func(err error) {
		l.Warn("Simulated position error", zap.Error(err))
	})

	cfg := domain.SessionConfig{
		DriverID:           *driverID,
		DriverName:         *driverName,
		DeliveryID:         *deliveryID,
		DeliveryStatus:     domain.DeliveryStatusInProgress,
		DestinationAddress: *address,
		AuthToken:          *token,
	}

	if *redisURL != "" {
		// Follow the real activation path: enable the preference and let
		// the policy start the session.
		redisCache, err := cache.NewRedisAdapter(*redisURL)
		if err != nil {
			l.Fatal("Failed to create Redis adapter", zap.Error(err))
		}
		defer redisCache.Close()

		policy := autotrack.NewPolicy(sessions, adapter.NewRedisPreferenceStore(redisCache), alwaysConfirm{})
		if err := policy.ToggleOn(ctx, cfg); err != nil {
			l.Fatal("Failed to enable tracking", zap.Error(err))
		}
	} else if err := sessions.Start(ctx, cfg); err != nil {
		l.Fatal("Failed to start tracking session", zap.Error(err))
	}

	l.Info("Simulated driver broadcasting",
		zap.String("driver_id", *driverID),
		zap.String("delivery_id", *deliveryID),
		zap.Duration("interval", *interval),
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	sessions.Stop()
	l.Info("Simulated driver stopped")
}
