package service

import (
	"context"
	"sync"
	"time"

	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/features/eta/domain"

	"go.uber.org/zap"
)

// Request describes one watched ETA computation.
type Request struct {
	// Origin is the current driver position.
	Origin domain.Coordinates
	// Destination is the explicit target, preferred over Address when set.
	Destination *domain.Coordinates
	// Address is the free-text destination, geocoded on every recompute.
	Address string
}

// Watcher recomputes an ETA immediately and then on a fixed interval for as
// long as the consumer keeps it enabled. Results and failures flow through
// the callback; every failure is retried on the next tick.
type Watcher struct {
	svc      *Service
	interval time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewWatcher creates a watcher recomputing on the given interval.
func NewWatcher(svc *Service, interval time.Duration) *Watcher {
	return &Watcher{
		svc:      svc,
		interval: interval,
		logger:   logger.Named("eta.watcher"),
	}
}

// Start begins the recompute loop for one request, replacing any previous
// loop. The callback receives either a result or an error on every cycle.
func (w *Watcher) Start(ctx context.Context, req Request, onResult func(*domain.ETAResult, error)) {
	w.Stop()

	ctx, cancel := context.WithCancel(ctx)

	w.mu.Lock()
	w.cancel = cancel
	w.mu.Unlock()

	go w.run(ctx, req, onResult)
}

// Stop cancels the recompute loop. Safe to call when not running.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

func (w *Watcher) run(ctx context.Context, req Request, onResult func(*domain.ETAResult, error)) {
	compute := func() {
		result, err := w.svc.ResolveETA(ctx, req.Origin, req.Destination, req.Address)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			w.logger.Debug("ETA recompute failed, retrying next tick", zap.Error(err))
		}
		onResult(result, err)
	}

	compute()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			compute()
		}
	}
}
