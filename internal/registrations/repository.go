package registrations

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

// PageSize is the number of attendees per page of ListByEvent.
const PageSize = 10

var (
	// ErrAlreadyRegistered is returned by Create when (event, email) already exists.
	ErrAlreadyRegistered = errors.New("email already registered for event")
	// ErrEventNotFound is returned by Create when the referenced event does not exist.
	ErrEventNotFound = errors.New("event not found")
)

// ListFilter narrows ListByEvent.
type ListFilter struct {
	Query     string // case-insensitive substring of the attendee name
	PageIndex int
}

// Repository handles attendee persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an attendees repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts an attendee (unique per event+email) and fills in ID and CreatedAt.
func (r *Repository) Create(ctx context.Context, a *models.Attendee) error {
	const q = `INSERT INTO attendees (name, email, event_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, a.Name, a.Email, a.EventID).Scan(&a.ID, &a.CreatedAt)
	switch {
	case database.IsUniqueViolation(err):
		return ErrAlreadyRegistered
	case database.IsForeignKeyViolation(err):
		return ErrEventNotFound
	case err != nil:
		return fmt.Errorf("insert attendee: %w", err)
	}
	return nil
}

// GetByEventAndEmail returns the attendee for event+email, or nil if there is none.
func (r *Repository) GetByEventAndEmail(ctx context.Context, eventID uuid.UUID, email string) (*models.Attendee, error) {
	const q = `SELECT id, name, email, event_id, created_at FROM attendees WHERE event_id = $1 AND email = $2`
	var a models.Attendee
	err := r.pool.QueryRow(ctx, q, eventID, email).Scan(&a.ID, &a.Name, &a.Email, &a.EventID, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get attendee by email: %w", err)
	}
	return &a, nil
}

// CountByEvent returns the number of attendees registered for an event.
func (r *Repository) CountByEvent(ctx context.Context, eventID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM attendees WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	return n, nil
}

// GetBadge returns the badge data for an attendee, or nil if there is none.
// CheckInURL is left empty.
func (r *Repository) GetBadge(ctx context.Context, attendeeID int64) (*models.Badge, error) {
	const q = `SELECT a.name, a.email, e.title
		FROM attendees a JOIN events e ON e.id = a.event_id
		WHERE a.id = $1`
	var b models.Badge
	err := r.pool.QueryRow(ctx, q, attendeeID).Scan(&b.Name, &b.Email, &b.EventTitle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get badge: %w", err)
	}
	return &b, nil
}

// ListByEvent returns one page of an event's attendees, newest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID, f ListFilter) ([]models.AttendeeListItem, error) {
	const q = `SELECT a.id, a.name, a.email, a.created_at, c.created_at
		FROM attendees a
		LEFT JOIN check_ins c ON c.attendee_id = a.id
		WHERE a.event_id = $1 AND ($2 = '' OR strpos(lower(a.name), lower($2)) > 0)
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.pool.Query(ctx, q, eventID, f.Query, PageSize, f.PageIndex*PageSize)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()
	list := make([]models.AttendeeListItem, 0, PageSize)
	for rows.Next() {
		var it models.AttendeeListItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Email, &it.CreatedAt, &it.CheckedInAt); err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}
