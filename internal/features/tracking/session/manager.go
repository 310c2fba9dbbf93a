package session

import (
	"context"
	"fmt"
	"sync"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/tracking/domain"
	"fleet-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// Manager owns at most one active {position watch, transport channel} pair
// per process, tied to one driver+delivery context. All UI surfaces share
// the same instance; mutation is serialized behind a mutex so the singleton
// discipline holds on a multi-goroutine runtime.
type Manager struct {
	mu      sync.Mutex
	source  ports.PositionSource
	channel ports.LocationChannel
	logger  *zap.Logger

	state domain.SessionState
	cfg   domain.SessionConfig
	watch ports.WatchHandle

	// generation invalidates callbacks from watches that were cancelled
	// while a sample was already in flight.
	generation uint64

	onError func(error)
}

// NewManager creates the process-wide tracking session manager.
func NewManager(source ports.PositionSource, channel ports.LocationChannel) *Manager {
	return &Manager{
		source:  source,
		channel: channel,
		logger:  logger.Named("tracking.session"),
	}
}

// SetErrorHandler registers the side channel for geolocation failures.
// Failures never stop the session; the caller decides whether to retry.
func (m *Manager) SetErrorHandler(fn func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}

// Start begins tracking for the given driver+delivery context.
// Starting again with the same delivery is a no-op; a different delivery
// fully stops the previous session first, sequentially.
func (m *Manager) Start(ctx context.Context, cfg domain.SessionConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != domain.SessionStopped && m.cfg.DeliveryID == cfg.DeliveryID {
		m.logger.Debug("Session already active for delivery",
			zap.String("delivery_id", cfg.DeliveryID),
		)
		return nil
	}

	if m.state != domain.SessionStopped {
		m.stopLocked()
	}

	m.state = domain.SessionStarting
	m.cfg = cfg
	gen := m.generation

	if !m.channel.Connected() {
		if err := m.channel.Connect(ctx, cfg.AuthToken); err != nil {
			// The channel keeps retrying on its own; samples produced
			// while disconnected are dropped.
			m.logger.Warn("Transport connect failed, retrying in background", zap.Error(err))
		}
	}

	watch, err := m.source.Watch(
		func(p domain.Position) { m.handleSample(gen, p) },
		func(watchErr error) { m.handleWatchError(gen, watchErr) },
	)
	if err != nil {
		m.stopLocked()
		return fmt.Errorf("starting position watch: %w", err)
	}

	m.watch = watch
	m.state = domain.SessionActive
	m.logger.Info("Tracking session started",
		zap.String("driver_id", cfg.DriverID),
		zap.String("delivery_id", cfg.DeliveryID),
	)
	return nil
}

// Stop cancels the position watch, closes the channel and clears the
// config. Safe to call when already stopped.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// stopLocked tears the session down. Caller holds m.mu.
func (m *Manager) stopLocked() {
	if m.state == domain.SessionStopped {
		return
	}

	m.generation++

	if m.watch != nil {
		m.watch.Cancel()
		m.watch = nil
	}
	m.channel.Disconnect()

	m.logger.Info("Tracking session stopped",
		zap.String("driver_id", m.cfg.DriverID),
		zap.String("delivery_id", m.cfg.DeliveryID),
	)

	m.cfg = domain.SessionConfig{}
	m.state = domain.SessionStopped
}

// IsTracking reports whether a session is currently active.
func (m *Manager) IsTracking() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state != domain.SessionStopped
}

// Config returns the active session config, if any.
func (m *Manager) Config() (domain.SessionConfig, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == domain.SessionStopped {
		return domain.SessionConfig{}, false
	}
	return m.cfg, true
}

// handleSample broadcasts one position sample under the current config.
// Samples from a cancelled watch generation are dropped.
func (m *Manager) handleSample(gen uint64, p domain.Position) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != domain.SessionActive || gen != m.generation {
		return
	}

	update := domain.LocationUpdate{
		DriverID:           m.cfg.DriverID,
		DriverName:         m.cfg.DriverName,
		Latitude:           p.Latitude,
		Longitude:          p.Longitude,
		DeliveryID:         m.cfg.DeliveryID,
		DeliveryStatus:     m.cfg.DeliveryStatus,
		DestinationAddress: m.cfg.DestinationAddress,
	}

	if err := m.channel.SendLocation(update); err != nil {
		m.logger.Warn("Failed to send location update", zap.Error(err))
	}
}

// handleWatchError surfaces a geolocation failure without stopping the
// session; the platform keeps the watch alive and retries.
func (m *Manager) handleWatchError(gen uint64, err error) {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	fn := m.onError
	m.mu.Unlock()

	m.logger.Warn("Geolocation error", zap.Error(err))
	if fn != nil {
		fn(err)
	}
}
