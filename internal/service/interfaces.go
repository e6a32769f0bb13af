package service

import (
	"context"

	"github.com/raj-prabhakar/webhook-repo/internal/domain"
)

// EventServicer defines the interface for event service operations
type EventServicer interface {
	ProcessWebhook(ctx context.Context, payload any) (*IngestResult, error)
	ListEvents(ctx context.Context) ([]domain.Event, error)
}
