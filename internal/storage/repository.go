package storage

import (
	"context"
	"time"

	"bookingcal/internal/domain"
)

// Repository defines the interface for data storage operations.
type Repository interface {
	// SavePending stores an event awaiting the user's decision. It expires after ttl
	// (no expiry when ttl <= 0).
	SavePending(ctx context.Context, pending domain.PendingEvent, ttl time.Duration) error

	// GetPending returns domain.ErrPendingNotFound when the event was never stored,
	// was already resolved, or has expired.
	GetPending(ctx context.Context, userID int64, id string) (domain.PendingEvent, error)

	// DeletePending is idempotent.
	DeletePending(ctx context.Context, userID int64, id string) error

	// SaveEvent records an accepted event and the link issued for it.
	SaveEvent(ctx context.Context, event domain.SavedEvent) error

	// GetEventsByUser returns the user's accepted events, newest first.
	GetEventsByUser(ctx context.Context, userID int64) ([]domain.SavedEvent, error)

	// Close gracefully shuts down the repository connection.
	Close() error
}
