package autotrack

import (
	"context"
	"fmt"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/tracking/domain"
	"fleet-tracker/internal/features/tracking/ports"
	"fleet-tracker/internal/features/tracking/session"

	"go.uber.org/zap"
)

// Policy decides when tracking auto-resumes for a driver so the driver does
// not have to re-enable it on every navigation, and guarantees tracking
// never silently continues past delivery completion.
type Policy struct {
	sessions  *session.Manager
	prefs     ports.PreferenceStore
	confirmer ports.Confirmer
	logger    *zap.Logger
}

// NewPolicy creates the auto-tracking activation policy.
func NewPolicy(sessions *session.Manager, prefs ports.PreferenceStore, confirmer ports.Confirmer) *Policy {
	return &Policy{
		sessions:  sessions,
		prefs:     prefs,
		confirmer: confirmer,
		logger:    logger.Named("tracking.autotrack"),
	}
}

// Evaluate is invoked whenever a delivery view loads or the delivery status
// changes. It auto-starts tracking for an in-progress delivery when the
// driver's preference is enabled, and force-stops it (resetting the
// preference) once the delivery reaches a terminal state.
func (p *Policy) Evaluate(ctx context.Context, cfg domain.SessionConfig) error {
	if cfg.DeliveryStatus.Terminal() {
		if cur, ok := p.sessions.Config(); ok && cur.DeliveryID == cfg.DeliveryID {
			p.logger.Info("Delivery finished, forcing tracking stop",
				zap.String("delivery_id", cfg.DeliveryID),
				zap.String("status", string(cfg.DeliveryStatus)),
			)
			p.sessions.Stop()
		}
		if err := p.prefs.SetAutoTracking(ctx, cfg.DriverID, false); err != nil {
			return fmt.Errorf("resetting auto-tracking preference: %w", err)
		}
		return nil
	}

	if !cfg.DeliveryStatus.InProgress() {
		return nil
	}

	enabled, err := p.prefs.AutoTrackingEnabled(ctx, cfg.DriverID)
	if err != nil {
		return fmt.Errorf("reading auto-tracking preference: %w", err)
	}
	if !enabled {
		return nil
	}

	return p.sessions.Start(ctx, cfg)
}

// ToggleOn enables the preference and starts tracking immediately when the
// delivery qualifies. No confirmation is required to turn tracking on.
func (p *Policy) ToggleOn(ctx context.Context, cfg domain.SessionConfig) error {
	if err := p.prefs.SetAutoTracking(ctx, cfg.DriverID, true); err != nil {
		return fmt.Errorf("saving auto-tracking preference: %w", err)
	}

	if cfg.DeliveryStatus.InProgress() {
		return p.sessions.Start(ctx, cfg)
	}
	return nil
}

// ToggleOff disables tracking for the driver. While a session is active the
// driver must confirm first; a declined prompt leaves everything untouched.
// Returns whether the toggle was applied.
func (p *Policy) ToggleOff(ctx context.Context, driverID string) (bool, error) {
	if p.sessions.IsTracking() {
		if !p.confirmer.Confirm("Stop sharing your location for this delivery?") {
			p.logger.Debug("Tracking stop declined", zap.String("driver_id", driverID))
			return false, nil
		}
		p.sessions.Stop()
	}

	if err := p.prefs.SetAutoTracking(ctx, driverID, false); err != nil {
		return false, fmt.Errorf("saving auto-tracking preference: %w", err)
	}
	return true, nil
}
