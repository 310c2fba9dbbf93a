package registry

import (
	"context"
	"sync"
	"time"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/fleet/domain"

	"go.uber.org/zap"
)

// Registry holds the last-known location of every broadcasting driver,
// keyed by driver id. An inbound update replaces the entry wholesale; the
// newest sample is authoritative. Entries that go quiet longer than the
// staleness threshold are removed by the periodic sweep.
type Registry struct {
	mu         sync.RWMutex
	drivers    map[string]domain.DriverLocation
	staleAfter time.Duration
	logger     *zap.Logger

	// now is the receipt-time clock, injectable for tests.
	now func() time.Time
}

// New creates an empty registry with the given staleness threshold.
func New(staleAfter time.Duration) *Registry {
	return &Registry{
		drivers:    make(map[string]domain.DriverLocation),
		staleAfter: staleAfter,
		logger:     logger.Named("fleet.registry"),
		now:        time.Now,
	}
}

// Upsert stores a driver location, replacing any previous entry for the
// same driver. LastUpdate is stamped with the registry's own clock.
func (r *Registry) Upsert(loc domain.DriverLocation) {
	if loc.DriverID == "" {
		return
	}

	if loc.DriverName == "" {
		loc.DriverName = "Chauffeur " + shortID(loc.DriverID)
	}

	r.mu.Lock()
	loc.LastUpdate = r.now()
	r.drivers[loc.DriverID] = loc
	r.mu.Unlock()
}

// Sweep removes entries older than the staleness threshold and returns how
// many were dropped.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.staleAfter)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, loc := range r.drivers {
		if loc.LastUpdate.Before(cutoff) {
			delete(r.drivers, id)
			removed++
		}
	}

	if removed > 0 {
		r.logger.Debug("Swept stale driver positions", zap.Int("removed", removed))
	}
	return removed
}

// RunSweeper sweeps on the given interval until the context is cancelled.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// All returns a snapshot of the current entries. The slice is a copy;
// later registry mutations do not affect it.
func (r *Registry) All() []domain.DriverLocation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DriverLocation, 0, len(r.drivers))
	for _, loc := range r.drivers {
		out = append(out, loc)
	}
	return out
}

// ByDeliveryID returns the entries currently associated with one delivery.
func (r *Registry) ByDeliveryID(deliveryID string) []domain.DriverLocation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DriverLocation, 0, 1)
	for _, loc := range r.drivers {
		if loc.DeliveryID == deliveryID {
			out = append(out, loc)
		}
	}
	return out
}

// shortID truncates an id to a display-friendly prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
