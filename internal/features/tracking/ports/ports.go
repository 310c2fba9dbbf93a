package ports

import (
	"context"

	"fleet-tracker/internal/features/tracking/domain"
)

// WatchHandle cancels a running position watch.
type WatchHandle interface {
	// Cancel stops the watch. No callback fires after Cancel returns.
	Cancel()
}

// PositionSource provides a continuous stream of geolocation samples.
// The production implementation binds to the platform location API; tests
// and the simulator inject their own.
type PositionSource interface {
	// Watch starts continuous position watching. Samples go to onSample,
	// acquisition failures to onError. The watch keeps running after an
	// error; the platform retries internally.
	Watch(onSample func(domain.Position), onError func(error)) (WatchHandle, error)
}

// Subscription identifies a registered inbound-message handler.
type Subscription int

// LocationChannel is the long-lived, authenticated, bidirectional message
// channel carrying location updates to and from the tracking server.
type LocationChannel interface {
	// Connect establishes the channel with the given bearer token.
	// On dial failure the channel schedules reconnection on its own and
	// returns the dial error; sends stay no-ops until connected.
	Connect(ctx context.Context, token string) error

	// SendLocation transmits a location update, fire-and-forget.
	// A send while disconnected is a no-op, logged and not queued.
	SendLocation(update domain.LocationUpdate) error

	// Subscribe registers a handler for inbound driver-location broadcasts.
	Subscribe(handler func(domain.LocationUpdate)) Subscription

	// Unsubscribe removes a previously registered handler.
	Unsubscribe(sub Subscription)

	// Connected reports whether the channel is currently established.
	Connected() bool

	// Disconnect tears the channel down and disables reconnection.
	Disconnect()
}

// PreferenceStore persists the per-driver auto-tracking preference.
type PreferenceStore interface {
	// AutoTrackingEnabled reads the preference; absent means false.
	AutoTrackingEnabled(ctx context.Context, driverID string) (bool, error)

	// SetAutoTracking writes the preference.
	SetAutoTracking(ctx context.Context, driverID string, enabled bool) error
}

// Confirmer asks the driver to confirm an action before it proceeds.
type Confirmer interface {
	// Confirm blocks for a yes/no answer to the given prompt.
	Confirm(prompt string) bool
}
