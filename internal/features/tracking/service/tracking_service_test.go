package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-gateway/internal/core/apiclient"
	"storefront-gateway/internal/features/tracking/domain"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const interval = time.Minute

// stubProvider is a TrackingProvider whose answers are scripted by the test.
type stubProvider struct {
	calls  atomic.Int32
	mu     sync.Mutex
	status domain.TrackingStatus
	err    error
	tokens []string
	// block, when set, makes a call wait for its context to end before answering.
	block bool
}

func (p *stubProvider) GetTrackingHistory(ctx context.Context, number string) (*domain.TrackingHistory, error) {
	p.calls.Add(1)
	p.mu.Lock()
	p.tokens = append(p.tokens, apiclient.TokenFromContext(ctx))
	status, err, block := p.status, p.err, p.block
	p.mu.Unlock()

	if block {
		<-ctx.Done()
	}
	if err != nil {
		return nil, err
	}
	return &domain.TrackingHistory{TrackingNumber: number, Status: status, Events: []domain.TrackingEvent{}}, nil
}

func (p *stubProvider) set(fn func(p *stubProvider)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p)
}

func newService(t *testing.T, p *stubProvider) (*TrackingService, *testclock.Clock) {
	t.Helper()
	clk := testclock.NewClock(time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC))
	svc := NewTrackingService(p, clk, interval)
	t.Cleanup(svc.Close)
	return svc, clk
}

func TestTrackingService_ColdLookupStartsWatch(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusInTransit}
	svc, _ := newService(t, p)

	snapshot, err := svc.GetTrackingHistory(context.Background(), "1Z")

	require.NoError(t, err)
	assert.Equal(t, domain.TrackingStatusInTransit, snapshot.History.Status)
	assert.Equal(t, 0, snapshot.Refreshes)
	assert.True(t, svc.Watching(context.Background(), "1Z"))
	assert.Equal(t, int32(1), p.calls.Load(), "the immediate scheduled run must not refetch a fresh snapshot")
}

func TestTrackingService_WarmLookupServedFromMemory(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusInTransit}
	svc, _ := newService(t, p)

	_, err := svc.GetTrackingHistory(context.Background(), "1Z")
	require.NoError(t, err)
	_, err = svc.GetTrackingHistory(context.Background(), "1Z")
	require.NoError(t, err)

	assert.Equal(t, int32(1), p.calls.Load())
}

func TestTrackingService_RefreshesOnTick(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusInTransit}
	svc, clk := newService(t, p)
	ctx := apiclient.WithToken(context.Background(), "buyer-token")

	_, err := svc.GetTrackingHistory(ctx, "1Z")
	require.NoError(t, err)

	p.set(func(p *stubProvider) { p.status = domain.TrackingStatusOutForDelivery })
	require.NoError(t, clk.WaitAdvance(interval, time.Second, 1))

	require.Eventually(t, func() bool {
		snapshot, err := svc.GetTrackingHistory(ctx, "1Z")
		return err == nil && snapshot.Refreshes >= 1
	}, time.Second, 5*time.Millisecond)

	snapshot, err := svc.GetTrackingHistory(ctx, "1Z")
	require.NoError(t, err)
	assert.Equal(t, domain.TrackingStatusOutForDelivery, snapshot.History.Status)

	p.mu.Lock()
	defer p.mu.Unlock()
	require.GreaterOrEqual(t, len(p.tokens), 2)
	for _, token := range p.tokens {
		assert.Equal(t, "buyer-token", token, "background refreshes reuse the caller's token")
	}
}

func TestTrackingService_WatchesAreScopedToCallerToken(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusInTransit}
	svc, _ := newService(t, p)
	buyerA := apiclient.WithToken(context.Background(), "buyer-A")
	buyerB := apiclient.WithToken(context.Background(), "buyer-B")

	_, err := svc.GetTrackingHistory(buyerA, "1Z")
	require.NoError(t, err)

	// Neither another buyer nor an anonymous caller is served buyer A's snapshot.
	_, err = svc.GetTrackingHistory(buyerB, "1Z")
	require.NoError(t, err)
	_, err = svc.GetTrackingHistory(context.Background(), "1Z")
	require.NoError(t, err)

	assert.Equal(t, int32(3), p.calls.Load())
	p.mu.Lock()
	assert.Equal(t, []string{"buyer-A", "buyer-B", ""}, p.tokens)
	p.mu.Unlock()

	// Each caller is now served from its own watch.
	_, err = svc.GetTrackingHistory(buyerB, "1Z")
	require.NoError(t, err)
	assert.Equal(t, int32(3), p.calls.Load())

	// Unwatching only affects the caller's own watch.
	assert.True(t, svc.Unwatch(buyerB, "1Z"))
	assert.False(t, svc.Watching(buyerB, "1Z"))
	assert.True(t, svc.Watching(buyerA, "1Z"))
	assert.True(t, svc.Watching(context.Background(), "1Z"))
}

func TestTrackingService_FinalStatusNotWatched(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusDelivered}
	svc, _ := newService(t, p)

	_, err := svc.GetTrackingHistory(context.Background(), "1Z")

	require.NoError(t, err)
	assert.False(t, svc.Watching(context.Background(), "1Z"))
}

func TestTrackingService_StopsWatchingOnceDelivered(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusInTransit}
	svc, clk := newService(t, p)

	_, err := svc.GetTrackingHistory(context.Background(), "1Z")
	require.NoError(t, err)

	p.set(func(p *stubProvider) { p.status = domain.TrackingStatusDelivered })
	require.NoError(t, clk.WaitAdvance(interval, time.Second, 1))

	require.Eventually(t, func() bool { return !svc.Watching(context.Background(), "1Z") }, time.Second, 5*time.Millisecond)
}

func TestTrackingService_IdleWatchExpires(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusInTransit}
	svc, clk := newService(t, p)

	_, err := svc.GetTrackingHistory(context.Background(), "1Z")
	require.NoError(t, err)

	require.NoError(t, clk.WaitAdvance((idleIntervals+1)*interval, time.Second, 1))

	require.Eventually(t, func() bool { return !svc.Watching(context.Background(), "1Z") }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), p.calls.Load(), "an idle watch stops without fetching")
}

func TestTrackingService_UnwatchDiscardsInFlightResult(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusInTransit}
	svc, clk := newService(t, p)

	_, err := svc.GetTrackingHistory(context.Background(), "1Z")
	require.NoError(t, err)

	svc.mu.Lock()
	w := svc.watches[watchKey{number: "1Z"}]
	svc.mu.Unlock()

	p.set(func(p *stubProvider) { p.block = true })
	require.NoError(t, clk.WaitAdvance(interval, time.Second, 1))
	require.Eventually(t, func() bool { return p.calls.Load() == 2 }, time.Second, 5*time.Millisecond)

	assert.True(t, svc.Unwatch(context.Background(), "1Z"))
	assert.False(t, svc.Watching(context.Background(), "1Z"))

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Equal(t, 0, w.snapshot.Refreshes)
	assert.Equal(t, domain.TrackingStatusInTransit, w.snapshot.History.Status)
}

func TestTrackingService_Unwatch_Unknown(t *testing.T) {
	svc, _ := newService(t, &stubProvider{})

	assert.False(t, svc.Unwatch(context.Background(), "nothing"))
}

func TestTrackingService_NotFound(t *testing.T) {
	p := &stubProvider{err: &apiclient.APIError{StatusCode: 404}}
	svc, _ := newService(t, p)

	snapshot, err := svc.GetTrackingHistory(context.Background(), "nope")

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, ErrTrackingNotFound)
	assert.False(t, svc.Watching(context.Background(), "nope"))
}

func TestTrackingService_ProviderError(t *testing.T) {
	providerErr := errors.New("provider failure")
	svc, _ := newService(t, &stubProvider{err: providerErr})

	snapshot, err := svc.GetTrackingHistory(context.Background(), "1Z")

	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, providerErr)
}

func TestTrackingService_CloseStopsAllWatches(t *testing.T) {
	p := &stubProvider{status: domain.TrackingStatusInTransit}
	svc, _ := newService(t, p)

	_, err := svc.GetTrackingHistory(context.Background(), "A")
	require.NoError(t, err)
	_, err = svc.GetTrackingHistory(context.Background(), "B")
	require.NoError(t, err)

	svc.Close()

	assert.False(t, svc.Watching(context.Background(), "A"))
	assert.False(t, svc.Watching(context.Background(), "B"))

	_, err = svc.GetTrackingHistory(context.Background(), "C")
	require.NoError(t, err)
	assert.False(t, svc.Watching(context.Background(), "C"), "no watch starts after Close")
}
