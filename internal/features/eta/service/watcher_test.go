package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"fleet-tracker/internal/features/eta/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWatcher_RecomputesOnInterval verifies the immediate compute plus
// periodic recomputes.
func TestWatcher_RecomputesOnInterval(t *testing.T) {
	router := &mockRouter{route: &domain.Route{DistanceMeters: 1000, DurationSeconds: 60}}
	svc := NewService(&mockGeocoder{}, router)

	w := NewWatcher(svc, 20*time.Millisecond)

	var mu sync.Mutex
	var results int
	w.Start(context.Background(), Request{
		Origin:      paris,
		Destination: &domain.Coordinates{Latitude: 48.86, Longitude: 2.36},
	}, func(r *domain.ETAResult, err error) {
		require.NoError(t, err)
		require.NotNil(t, r)
		mu.Lock()
		results++
		mu.Unlock()
	})
	defer w.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return results >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

// TestWatcher_Stop verifies no callback fires after Stop settles.
func TestWatcher_Stop(t *testing.T) {
	router := &mockRouter{route: &domain.Route{DistanceMeters: 1000, DurationSeconds: 60}}
	svc := NewService(&mockGeocoder{}, router)

	w := NewWatcher(svc, 10*time.Millisecond)

	var mu sync.Mutex
	var results int
	w.Start(context.Background(), Request{
		Origin:      paris,
		Destination: &domain.Coordinates{Latitude: 48.86, Longitude: 2.36},
	}, func(r *domain.ETAResult, err error) {
		mu.Lock()
		results++
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return results >= 1
	}, 2*time.Second, 5*time.Millisecond)

	w.Stop()
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	settled := results
	mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, settled, results)
}

// TestWatcher_ErrorsAreRetried verifies a failing cycle still schedules the
// next one.
func TestWatcher_ErrorsAreRetried(t *testing.T) {
	svc := NewService(&mockGeocoder{}, &mockRouter{}) // nil route: ErrRouteNotFound

	w := NewWatcher(svc, 15*time.Millisecond)

	var mu sync.Mutex
	var failures int
	w.Start(context.Background(), Request{
		Origin:      paris,
		Destination: &domain.Coordinates{},
	}, func(r *domain.ETAResult, err error) {
		assert.ErrorIs(t, err, ErrRouteNotFound)
		mu.Lock()
		failures++
		mu.Unlock()
	})
	defer w.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return failures >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

// TestWatcher_RestartReplacesLoop verifies Start supersedes a previous loop.
func TestWatcher_RestartReplacesLoop(t *testing.T) {
	router := &mockRouter{route: &domain.Route{DistanceMeters: 500, DurationSeconds: 60}}
	svc := NewService(&mockGeocoder{}, router)

	w := NewWatcher(svc, 10*time.Millisecond)
	defer w.Stop()

	var mu sync.Mutex
	var fromFirst, fromSecond int

	w.Start(context.Background(), Request{Origin: paris, Destination: &paris},
		func(*domain.ETAResult, error) {
			mu.Lock()
			fromFirst++
			mu.Unlock()
		})

	w.Start(context.Background(), Request{Origin: paris, Destination: &paris},
		func(*domain.ETAResult, error) {
			mu.Lock()
			fromSecond++
			mu.Unlock()
		})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fromSecond >= 2
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	first := fromFirst
	mu.Unlock()

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, first, fromFirst, "first loop must stay cancelled")
}
