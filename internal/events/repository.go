package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passin/backend/internal/models"
	"github.com/passin/backend/pkg/database"
)

// ErrSlugTaken is returned by Create when another event already owns the slug.
var ErrSlugTaken = errors.New("event slug already taken")

// Repository handles event persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an events repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an event and fills in its generated ID.
func (r *Repository) Create(ctx context.Context, e *models.Event) error {
	const q = `INSERT INTO events (title, slug, details, maximum_attendees)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.pool.QueryRow(ctx, q, e.Title, e.Slug, e.Details, e.MaximumAttendees).Scan(&e.ID)
	if database.IsUniqueViolation(err) {
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// CreateWithID inserts an event with a fixed ID unless that ID or slug exists.
// Reports whether a row was written.
func (r *Repository) CreateWithID(ctx context.Context, e *models.Event) (bool, error) {
	const q = `INSERT INTO events (id, title, slug, details, maximum_attendees)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING`
	tag, err := r.pool.Exec(ctx, q, e.ID, e.Title, e.Slug, e.Details, e.MaximumAttendees)
	if err != nil {
		return false, fmt.Errorf("insert event %s: %w", e.ID, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetBySlug returns the event with slug, or nil if there is none.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Event, error) {
	const q = `SELECT id, title, slug, details, maximum_attendees FROM events WHERE slug = $1`
	return r.getOne(ctx, q, slug)
}

// GetByID returns the event with id, or nil if there is none.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	const q = `SELECT id, title, slug, details, maximum_attendees FROM events WHERE id = $1`
	return r.getOne(ctx, q, id)
}

// GetSummary returns the event with its attendee count, or nil if there is none.
func (r *Repository) GetSummary(ctx context.Context, id uuid.UUID) (*models.EventSummary, error) {
	const q = `SELECT e.id, e.title, e.slug, e.details, e.maximum_attendees,
			(SELECT COUNT(*) FROM attendees a WHERE a.event_id = e.id)
		FROM events e WHERE e.id = $1`
	var s models.EventSummary
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&s.ID, &s.Title, &s.Slug, &s.Details, &s.MaximumAttendees, &s.AttendeesAmount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event summary %s: %w", id, err)
	}
	return &s, nil
}

func (r *Repository) getOne(ctx context.Context, q string, arg any) (*models.Event, error) {
	var e models.Event
	err := r.pool.QueryRow(ctx, q, arg).Scan(&e.ID, &e.Title, &e.Slug, &e.Details, &e.MaximumAttendees)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}
