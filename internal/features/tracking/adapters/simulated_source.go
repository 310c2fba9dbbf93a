package adapter

import (
	"sync"
	"time"

	"fleet-tracker/internal/features/tracking/domain"
	"fleet-tracker/internal/features/tracking/ports"
)

// SimulatedSource is a PositionSource that walks a straight line between
// two coordinates, emitting one sample per interval. Used by the driver
// simulator binary and as a stand-in where no real platform source exists.
type SimulatedSource struct {
	from     domain.Position
	to       domain.Position
	steps    int
	interval time.Duration
}

// NewSimulatedSource creates a source moving from one point to another in
// the given number of steps, one sample per interval.
func NewSimulatedSource(from, to domain.Position, steps int, interval time.Duration) *SimulatedSource {
	if steps < 1 {
		steps = 1
	}
	return &SimulatedSource{
		from:     from,
		to:       to,
		steps:    steps,
		interval: interval,
	}
}

type simulatedWatch struct {
	once sync.Once
	stop chan struct{}
}

func (w *simulatedWatch) Cancel() {
	w.once.Do(func() { close(w.stop) })
}

// Watch starts emitting interpolated samples. The watch stays on the final
// position once the walk finishes, re-reporting it every interval.
func (s *SimulatedSource) Watch(onSample func(domain.Position), onError func(error)) (ports.WatchHandle, error) {
	w := &simulatedWatch{stop: make(chan struct{})}

	dLat := (s.to.Latitude - s.from.Latitude) / float64(s.steps)
	dLng := (s.to.Longitude - s.from.Longitude) / float64(s.steps)

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		current := s.from
		step := 0

		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				if step < s.steps {
					current.Latitude += dLat
					current.Longitude += dLng
					step++
				}
				select {
				case <-w.stop:
					return
				default:
					onSample(current)
				}
			}
		}
	}()

	return w, nil
}
