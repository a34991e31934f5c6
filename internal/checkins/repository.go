package checkins

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/passin/backend/internal/models"
	"github.com/passin/backend/pkg/database"
)

var (
	// ErrAlreadyCheckedIn is returned by Create when the attendee has a check-in.
	ErrAlreadyCheckedIn = errors.New("attendee already checked in")
	// ErrAttendeeNotFound is returned by Create when the attendee does not exist.
	ErrAttendeeNotFound = errors.New("attendee not found")
)

// Repository handles check-in persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a check-ins repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByAttendee returns the attendee's check-in, or nil if there is none.
func (r *Repository) GetByAttendee(ctx context.Context, attendeeID int64) (*models.CheckIn, error) {
	const q = `SELECT id, attendee_id, created_at FROM check_ins WHERE attendee_id = $1`
	var ci models.CheckIn
	err := r.pool.QueryRow(ctx, q, attendeeID).Scan(&ci.ID, &ci.AttendeeID, &ci.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get check-in: %w", err)
	}
	return &ci, nil
}

// Create records a check-in for the attendee.
func (r *Repository) Create(ctx context.Context, attendeeID int64) (*models.CheckIn, error) {
	const q = `INSERT INTO check_ins (attendee_id) VALUES ($1) RETURNING id, attendee_id, created_at`
	var ci models.CheckIn
	err := r.pool.QueryRow(ctx, q, attendeeID).Scan(&ci.ID, &ci.AttendeeID, &ci.CreatedAt)
	switch {
	case database.IsUniqueViolation(err):
		return nil, ErrAlreadyCheckedIn
	case database.IsForeignKeyViolation(err):
		return nil, ErrAttendeeNotFound
	case err != nil:
		return nil, fmt.Errorf("insert check-in: %w", err)
	}
	return &ci, nil
}
