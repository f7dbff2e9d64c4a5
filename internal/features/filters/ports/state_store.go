package ports

import (
	"context"

	"storefront-gateway/internal/features/filters/domain"
)

// StateStore persists filter selections per session.
type StateStore interface {
	// Load returns the stored state. ok is false when the session has no snapshot.
	Load(ctx context.Context, sessionID string) (state domain.State, ok bool, err error)

	// Save replaces the session snapshot.
	Save(ctx context.Context, sessionID string, state domain.State) error

	// Delete removes the session snapshot. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
