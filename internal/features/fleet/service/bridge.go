package service

import (
	"fleet-tracker/internal/core/logger"
	fleetdomain "fleet-tracker/internal/features/fleet/domain"
	"fleet-tracker/internal/features/fleet/registry"
	trackingdomain "fleet-tracker/internal/features/tracking/domain"
	"fleet-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// Bridge subscribes to the location channel and feeds inbound driver
// broadcasts into the registry. It is the only writer besides the sweep.
type Bridge struct {
	registry *registry.Registry
	channel  ports.LocationChannel
	sub      ports.Subscription
	logger   *zap.Logger
}

// NewBridge creates a bridge between the channel and the registry.
func NewBridge(reg *registry.Registry, channel ports.LocationChannel) *Bridge {
	return &Bridge{
		registry: reg,
		channel:  channel,
		logger:   logger.Named("fleet.bridge"),
	}
}

// Start registers the bridge as a channel subscriber.
func (b *Bridge) Start() {
	b.sub = b.channel.Subscribe(b.handle)
	b.logger.Info("Fleet bridge subscribed to location channel")
}

// Stop removes the subscription; inbound broadcasts no longer reach the
// registry.
func (b *Bridge) Stop() {
	b.channel.Unsubscribe(b.sub)
}

// handle maps one inbound broadcast into a registry upsert.
func (b *Bridge) handle(u trackingdomain.LocationUpdate) {
	b.registry.Upsert(fleetdomain.DriverLocation{
		DriverID:           u.DriverID,
		DriverName:         u.DriverName,
		Latitude:           u.Latitude,
		Longitude:          u.Longitude,
		DeliveryID:         u.DeliveryID,
		DeliveryStatus:     string(u.DeliveryStatus),
		DestinationAddress: u.DestinationAddress,
	})
}
