package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/raj-prabhakar/webhook-repo/internal/classifier"
	"github.com/raj-prabhakar/webhook-repo/internal/domain"
	"github.com/raj-prabhakar/webhook-repo/internal/repository"
)

// IngestResult describes what ingestion did with a webhook payload.
// Exactly one of Stored, Duplicate, or Skipped is true.
type IngestResult struct {
	// Stored means a new record was written; Event carries it with the
	// store-assigned identifier.
	Stored bool
	// Duplicate means the same logical event was already persisted and the
	// redelivery was ignored.
	Duplicate bool
	// Skipped means the payload classified to no event.
	Skipped bool

	Event *domain.Event
}

// EventService orchestrates classification and idempotent persistence.
type EventService struct {
	repository repository.EventRepository
	log        *zap.Logger
}

// NewEventService creates a new event service.
func NewEventService(repo repository.EventRepository, log *zap.Logger) *EventService {
	return &EventService{
		repository: repo,
		log:        log,
	}
}

// ProcessWebhook classifies the parsed payload and writes the resulting
// record exactly once. A redelivered event surfaces as a duplicate result,
// not an error: the store's uniqueness constraint already guarantees the
// record exists, so there is nothing to fail about.
func (s *EventService) ProcessWebhook(ctx context.Context, payload any) (*IngestResult, error) {
	event, err := classifier.Classify(payload)
	if errors.Is(err, classifier.ErrNotApplicable) {
		s.log.Info("Webhook payload produced no event")
		return &IngestResult{Skipped: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to classify webhook payload: %w", err)
	}

	event.CreatedAt = time.Now().UTC()

	stored, err := s.repository.InsertIfNew(ctx, event)
	if errors.Is(err, repository.ErrDuplicateEvent) {
		s.log.Info("Duplicate webhook delivery ignored",
			zap.String("request_id", event.RequestID),
			zap.String("action", string(event.Action)))
		return &IngestResult{Duplicate: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to store event: %w", err)
	}

	s.log.Info("Event stored",
		zap.String("event_id", stored.ID),
		zap.String("request_id", stored.RequestID),
		zap.String("action", string(stored.Action)),
		zap.String("author", stored.Author))

	return &IngestResult{Stored: true, Event: stored}, nil
}

// ListEvents returns all stored events, newest first.
func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.repository.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return events, nil
}
