package postgres

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/raj-prabhakar/webhook-repo/internal/domain"
	"github.com/raj-prabhakar/webhook-repo/internal/repository"
)

// schemaSQL is embedded so the service can self-provision its table and
// indexes at startup.
//
//go:embed schema.sql
var schemaSQL string

// Repository implements repository.EventRepository backed by Postgres.
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new Postgres-backed event repository.
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema applies schema.sql. Safe to run multiple times.
func (r *Repository) InitSchema(ctx context.Context) error {
	if _, err := r.client.Pool().Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to initialize events schema: %w", err)
	}

	r.log.Info("Postgres schema initialized successfully")
	return nil
}

// InsertIfNew persists the event, relying on the unique index on request_id
// for atomic duplicate detection. ON CONFLICT DO NOTHING with RETURNING
// yields no rows for a duplicate, which is mapped to ErrDuplicateEvent.
func (r *Repository) InsertIfNew(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	id := uuid.New()

	var fromBranch *string
	if event.FromBranch != "" {
		fromBranch = &event.FromBranch
	}

	var insertedID uuid.UUID
	err := r.client.Pool().QueryRow(ctx, `
		INSERT INTO events (id, request_id, author, action, from_branch, to_branch, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (request_id) DO NOTHING
		RETURNING id
	`, id, event.RequestID, event.Author, string(event.Action), fromBranch,
		event.ToBranch, event.Timestamp, event.CreatedAt).Scan(&insertedID)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrDuplicateEvent
	}
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	stored := *event
	stored.ID = insertedID.String()
	return &stored, nil
}

// ListEvents returns all stored events, newest first.
func (r *Repository) ListEvents(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.client.Pool().Query(ctx, `
		SELECT id, request_id, author, action, from_branch, to_branch, occurred_at, created_at
		FROM events
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var (
			event      domain.Event
			id         uuid.UUID
			action     string
			fromBranch *string
		)

		if err := rows.Scan(&id, &event.RequestID, &event.Author, &action,
			&fromBranch, &event.ToBranch, &event.Timestamp, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}

		event.ID = id.String()
		event.Action = domain.Action(action)
		if fromBranch != nil {
			event.FromBranch = *fromBranch
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return events, nil
}

// Ping checks if the database connection is alive.
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Pool().Ping(ctx)
}

// Close closes the underlying connection pool.
func (r *Repository) Close() error {
	r.client.Close()
	return nil
}
