package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/core/scheduler"
	"storefront-gateway/internal/features/tracking/domain"
	"storefront-gateway/internal/features/tracking/ports"

	"github.com/juju/clock"
	"go.uber.org/zap"
)

// ErrTrackingNotFound is returned when the tracking number is not found.
var ErrTrackingNotFound = errors.New("tracking not found")

// idleIntervals is how many refresh intervals a number stays watched without being read.
const idleIntervals = 10

// TrackingService serves tracking lookups and keeps recently requested numbers fresh
// with a background refresh per number.
type TrackingService struct {
	provider ports.TrackingProvider
	clock    clock.Clock
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	watches map[watchKey]*watch
}

// watchKey scopes a watch to the caller's bearer token so a snapshot fetched on behalf
// of one buyer is never served to another. Anonymous callers share the empty token.
type watchKey struct {
	token  string
	number string
}

type watch struct {
	key      watchKey
	task     *scheduler.Task
	snapshot domain.Snapshot
	lastRead time.Time
	stopped  bool
}

// NewTrackingService creates a TrackingService. Background refreshes run every interval
// until Close is called.
func NewTrackingService(provider ports.TrackingProvider, clk clock.Clock, interval time.Duration) *TrackingService {
	ctx, cancel := context.WithCancel(context.Background())
	return &TrackingService{
		provider: provider,
		clock:    clk,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		watches:  make(map[watchKey]*watch),
	}
}

// GetTrackingHistory returns the latest snapshot for trackingNumber. A number the same
// caller already watches is served from memory; otherwise it is fetched with the caller's
// token and a watch is started. Shipments in a final state are not watched.
func (s *TrackingService) GetTrackingHistory(ctx context.Context, trackingNumber string) (*domain.Snapshot, error) {
	key := keyFor(ctx, trackingNumber)

	s.mu.Lock()
	if w, ok := s.watches[key]; ok {
		w.lastRead = s.clock.Now()
		snapshot := w.snapshot
		s.mu.Unlock()
		return &snapshot, nil
	}
	s.mu.Unlock()

	history, err := s.provider.GetTrackingHistory(ctx, trackingNumber)
	if err != nil {
		if apiclient.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %v", ErrTrackingNotFound, err)
		}
		return nil, fmt.Errorf("failed to get tracking from provider: %w", err)
	}

	snapshot := domain.Snapshot{History: history, FetchedAt: s.clock.Now()}
	if !history.Status.Final() {
		s.watch(key, snapshot)
	}
	return &snapshot, nil
}

// Watching reports whether the caller in ctx has a live background refresh of trackingNumber.
func (s *TrackingService) Watching(ctx context.Context, trackingNumber string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.watches[keyFor(ctx, trackingNumber)]
	return ok
}

// Unwatch stops the caller's background refresh of trackingNumber. Results of a refresh
// that is in flight are discarded. Watches of other callers are untouched.
func (s *TrackingService) Unwatch(ctx context.Context, trackingNumber string) bool {
	key := keyFor(ctx, trackingNumber)

	s.mu.Lock()
	w, ok := s.watches[key]
	if ok {
		w.stopped = true
		delete(s.watches, key)
	}
	s.mu.Unlock()

	if ok {
		w.task.Stop()
	}
	return ok
}

// Close stops every background refresh and waits for them to exit.
func (s *TrackingService) Close() {
	s.cancel()

	s.mu.Lock()
	tasks := make([]*scheduler.Task, 0, len(s.watches))
	for key, w := range s.watches {
		w.stopped = true
		tasks = append(tasks, w.task)
		delete(s.watches, key)
	}
	s.mu.Unlock()

	for _, t := range tasks {
		t.Stop()
	}
}

func keyFor(ctx context.Context, trackingNumber string) watchKey {
	return watchKey{token: apiclient.TokenFromContext(ctx), number: trackingNumber}
}

func (s *TrackingService) watch(key watchKey, snapshot domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}
	if _, ok := s.watches[key]; ok {
		return
	}

	w := &watch{key: key, snapshot: snapshot, lastRead: s.clock.Now()}
	s.watches[key] = w
	w.task = scheduler.Start(s.ctx, s.clock, "tracking:"+key.number, s.interval, func(ctx context.Context) {
		s.refresh(ctx, w)
	})
}

func (s *TrackingService) refresh(ctx context.Context, w *watch) {
	now := s.clock.Now()
	trackingNumber := w.key.number

	s.mu.Lock()
	if w.stopped {
		s.mu.Unlock()
		return
	}
	if now.Sub(w.lastRead) > idleIntervals*s.interval {
		w.stopped = true
		delete(s.watches, w.key)
		s.mu.Unlock()
		// Stop waits for this run, so it cannot be called inline.
		go w.task.Stop()
		return
	}
	fresh := now.Sub(w.snapshot.FetchedAt) < s.interval
	s.mu.Unlock()

	if fresh {
		return
	}

	log := logger.Named("tracking")
	if w.key.token != "" {
		ctx = apiclient.WithToken(ctx, w.key.token)
	}
	history, err := s.provider.GetTrackingHistory(ctx, trackingNumber)
	if err != nil {
		if ctx.Err() == nil {
			log.Warn("Tracking refresh failed", zap.String("tracking_number", trackingNumber), zap.Error(err))
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if w.stopped || ctx.Err() != nil {
		log.Debug("Discarding stale tracking result", zap.String("tracking_number", trackingNumber))
		return
	}
	w.snapshot = domain.Snapshot{
		History:   history,
		FetchedAt: s.clock.Now(),
		Refreshes: w.snapshot.Refreshes + 1,
	}
	if history.Status.Final() {
		w.stopped = true
		delete(s.watches, w.key)
		go w.task.Stop()
	}
}
