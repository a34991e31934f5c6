//go:build integration

package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passin/backend/internal/models"
	"github.com/passin/backend/pkg/testutil/containers"
)

func TestRepository(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	repo := NewRepository(pg.Pool)
	ctx := context.Background()

	t.Run("create and lookup", func(t *testing.T) {
		pg.Truncate(t)
		details := "Devs"
		capacity := 120
		e := &models.Event{Title: "Unite Summit", Slug: "unite-summit", Details: &details, MaximumAttendees: &capacity}
		require.NoError(t, repo.Create(ctx, e))
		assert.NotEqual(t, uuid.Nil, e.ID)

		bySlug, err := repo.GetBySlug(ctx, "unite-summit")
		require.NoError(t, err)
		require.NotNil(t, bySlug)
		assert.Equal(t, *e, *bySlug)

		byID, err := repo.GetByID(ctx, e.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, "Unite Summit", byID.Title)
	})

	t.Run("missing rows are nil", func(t *testing.T) {
		pg.Truncate(t)
		e, err := repo.GetBySlug(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, e)

		s, err := repo.GetSummary(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, s)
	})

	t.Run("duplicate slug leaves one row", func(t *testing.T) {
		pg.Truncate(t)
		require.NoError(t, repo.Create(ctx, &models.Event{Title: "Unite Summit", Slug: "unite-summit"}))
		err := repo.Create(ctx, &models.Event{Title: "Unite  Summit", Slug: "unite-summit"})
		assert.ErrorIs(t, err, ErrSlugTaken)

		var n int
		require.NoError(t, pg.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n))
		assert.Equal(t, 1, n)
	})

	t.Run("summary counts attendees", func(t *testing.T) {
		pg.Truncate(t)
		e := &models.Event{Title: "Unite Summit", Slug: "unite-summit"}
		require.NoError(t, repo.Create(ctx, e))
		_, err := pg.Pool.Exec(ctx,
			`INSERT INTO attendees (name, email, event_id) VALUES ('Jane Doe', 'jane@example.com', $1), ('John Doe', 'john@example.com', $1)`,
			e.ID)
		require.NoError(t, err)

		s, err := repo.GetSummary(ctx, e.ID)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, 2, s.AttendeesAmount)
		assert.Nil(t, s.MaximumAttendees)
	})

	t.Run("create with id is idempotent", func(t *testing.T) {
		pg.Truncate(t)
		e := &models.Event{ID: uuid.New(), Title: "Unite Summit", Slug: "unite-summit"}
		created, err := repo.CreateWithID(ctx, e)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = repo.CreateWithID(ctx, e)
		require.NoError(t, err)
		assert.False(t, created)
	})
}
