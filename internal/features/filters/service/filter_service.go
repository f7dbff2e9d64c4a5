package service

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"storefront-gateway/internal/core/logger"
	"storefront-gateway/internal/features/filters/domain"
	"storefront-gateway/internal/features/filters/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FilterService owns the per-session filter and category selection.
// Dispatches for the same session are applied one at a time so that
// concurrent actions are never lost between load and save.
type FilterService struct {
	store ports.StateStore

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewFilterService creates a new FilterService.
func NewFilterService(store ports.StateStore) *FilterService {
	return &FilterService{
		store: store,
		locks: make(map[string]*sessionLock),
	}
}

// NewSession stores an empty selection under a fresh session id.
func (s *FilterService) NewSession(ctx context.Context) (string, domain.State, error) {
	sessionID := uuid.NewString()
	state := domain.NewState()
	if err := s.store.Save(ctx, sessionID, state); err != nil {
		return "", domain.State{}, fmt.Errorf("failed to create filter session: %w", err)
	}
	return sessionID, state, nil
}

// Get returns the session's selection. Unknown or expired sessions read as empty.
func (s *FilterService) Get(ctx context.Context, sessionID string) (domain.State, error) {
	state, _, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return domain.State{}, fmt.Errorf("failed to load filter state: %w", err)
	}
	return state, nil
}

// Dispatch applies action to the session's selection and stores the result.
// A rejected action leaves the stored state untouched.
func (s *FilterService) Dispatch(ctx context.Context, sessionID string, action domain.Action) (domain.State, error) {
	unlock := s.lock(sessionID)
	defer unlock()

	state, _, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return domain.State{}, fmt.Errorf("failed to load filter state: %w", err)
	}

	next, err := domain.Reduce(state, action)
	if err != nil {
		return state, err
	}

	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return domain.State{}, fmt.Errorf("failed to save filter state: %w", err)
	}

	logger.FromContext(ctx).Debug("Filter action applied",
		zap.String("session_id", sessionID),
		zap.String("action", string(action.Type)),
	)
	return next, nil
}

// Reset drops the session's selection. The next read returns the defaults.
func (s *FilterService) Reset(ctx context.Context, sessionID string) error {
	unlock := s.lock(sessionID)
	defer unlock()

	if err := s.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to reset filter state: %w", err)
	}
	return nil
}

// Query renders the session's selection as product search parameters.
func (s *FilterService) Query(ctx context.Context, sessionID string) (url.Values, error) {
	state, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state.QueryParams(), nil
}

func (s *FilterService) lock(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		s.locks[sessionID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, sessionID)
		}
		s.mu.Unlock()
	}
}
