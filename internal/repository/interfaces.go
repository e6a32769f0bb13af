package repository

import (
	"context"
	"errors"

	"github.com/raj-prabhakar/webhook-repo/internal/domain"
)

// ErrDuplicateEvent is returned by InsertIfNew when a record with the same
// request_id already exists. Redelivered webhooks hit this path; callers
// treat it as an expected outcome, not a failure.
var ErrDuplicateEvent = errors.New("event with this request_id already exists")

// EventRepository defines the interface for event storage operations.
type EventRepository interface {
	// InsertIfNew persists the event and returns it with the store-assigned
	// identifier. Fails with ErrDuplicateEvent when the request_id is taken;
	// the uniqueness check is atomic at the store level, so concurrent
	// redeliveries are safe without application locking.
	InsertIfNew(ctx context.Context, event *domain.Event) (*domain.Event, error)

	// ListEvents returns all stored events ordered by created_at descending.
	// An empty slice is a valid result.
	ListEvents(ctx context.Context) ([]domain.Event, error)

	// InitSchema provisions the events table and its indexes. Safe to re-run.
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive.
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources.
	Close() error
}
